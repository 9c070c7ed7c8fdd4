package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/mazout/internal/customer/domain"
	"github.com/smallbiznis/mazout/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/mazout/internal/order/domain"
	"go.uber.org/zap"
)

type signupFormData struct {
	ProductID  string
	Quantity   string
	PostalCode string
	Name       string
	Email      string
	Phone      string
	Street     string
	Zip        string
	City       string
	Error      string
}

// SignupForm renders the combined signup-and-order form, prefilled from
// the query string so a failed submit keeps what the visitor typed.
func (s *Server) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup_form.html", signupFormData{
		ProductID:  c.Query("product_id"),
		Quantity:   c.Query("fuel_quantity"),
		PostalCode: c.Query("postal_code"),
		Name:       c.Query("name"),
		Email:      c.Query("email"),
		Phone:      c.Query("phone"),
		Street:     c.Query("street"),
		Zip:        c.Query("zip"),
		City:       c.Query("city"),
		Error:      c.Query("error"),
	})
}

// SignupAndOrder creates the account and the order in one submit. An
// already-registered email is not an error; the visitor is sent to the
// login page instead.
func (s *Server) SignupAndOrder(c *gin.Context) {
	form := signupFormData{
		ProductID:  strings.TrimSpace(c.PostForm("product_id")),
		Quantity:   strings.TrimSpace(c.PostForm("fuel_quantity")),
		PostalCode: strings.TrimSpace(c.PostForm("postal_code")),
		Name:       strings.TrimSpace(c.PostForm("name")),
		Email:      strings.TrimSpace(c.PostForm("email")),
		Phone:      strings.TrimSpace(c.PostForm("phone")),
		Street:     strings.TrimSpace(c.PostForm("street")),
		Zip:        strings.TrimSpace(c.PostForm("zip")),
		City:       strings.TrimSpace(c.PostForm("city")),
	}
	password := c.PostForm("password")

	if form.Email == "" || password == "" || form.Phone == "" {
		form.Error = "e-mail, mot de passe et téléphone sont obligatoires"
		c.HTML(http.StatusOK, "signup_form.html", form)
		return
	}

	// An anonymous signup still needs a contact record.
	name := form.Name
	if name == "" {
		name = "Client"
	}

	customer, account, err := s.customerSvc.Signup(c.Request.Context(), customerdomain.SignupRequest{
		Name:     name,
		Email:    form.Email,
		Password: password,
		Phone:    form.Phone,
		Street:   form.Street,
		Zip:      form.Zip,
		City:     form.City,
	})
	if errors.Is(err, customerdomain.ErrAccountExists) {
		c.Redirect(http.StatusFound, "/web/login?login="+url.QueryEscape(form.Email))
		return
	}
	if err != nil {
		s.log.Error("signup failed", zap.String("login", form.Email), zap.Error(err))
		form.Error = "une erreur technique est survenue, veuillez réessayer"
		c.HTML(http.StatusOK, "signup_form.html", form)
		return
	}

	// The commit happened above; the session is issued for the new
	// account before any order work so a later failure still leaves
	// the visitor logged in.
	sess, err := s.customerSvc.StartSession(c.Request.Context(), account.ID)
	if err != nil {
		s.log.Error("session start after signup failed",
			zap.String("account_id", account.ID.String()),
			zap.Error(err),
		)
		c.Redirect(http.StatusFound, "/web/login?login="+url.QueryEscape(form.Email))
		return
	}
	s.sessions.SetToken(c, sess.RawToken, sess.ExpiresAt)

	productID, perr := snowflake.ParseString(form.ProductID)
	quantity, qerr := strconv.ParseFloat(form.Quantity, 64)
	if perr != nil || qerr != nil {
		c.Redirect(http.StatusFound, "/commande-03")
		return
	}

	postalCode := form.PostalCode
	if postalCode == "" {
		postalCode = customer.Zip
	}

	order, err := s.orderSvc.CreateFuelOrder(c.Request.Context(), orderdomain.CreateFuelOrderRequest{
		CustomerID: customer.ID,
		ProductID:  productID,
		Quantity:   quantity,
		PostalCode: postalCode,
	})
	if err != nil {
		metrics.Fuel().IncOrder(metrics.OrderResultFailed)
		s.log.Error("order after signup failed",
			zap.String("customer_id", customer.ID.String()),
			zap.Error(err),
		)
		c.Redirect(http.StatusFound, "/shop/cart")
		return
	}

	metrics.Fuel().IncOrder(metrics.OrderResultCreated)
	s.sessions.SetOrder(c, order.ID)
	c.Redirect(http.StatusFound, "/shop/checkout")
}
