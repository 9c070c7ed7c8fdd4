package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/mazout/internal/observability/metrics"
	orderdomain "github.com/smallbiznis/mazout/internal/order/domain"
	"go.uber.org/zap"
)

// CreateOrder materializes a fuel order for the logged-in customer and
// sends them to checkout. The session token is resolved server-side
// before anything else; a cookie that does not map to a live session
// is treated as not logged in. Parse failures send the visitor back to
// the order form; creation failures land on the cart page.
func (s *Server) CreateOrder(c *gin.Context) {
	token, ok := s.sessions.Token(c)
	if !ok {
		c.Redirect(http.StatusFound, "/web/login")
		return
	}
	account, err := s.customerSvc.ResolveSession(c.Request.Context(), token)
	if err != nil {
		s.log.Warn("order rejected for invalid session", zap.Error(err))
		c.Redirect(http.StatusFound, "/web/login")
		return
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(c.PostForm("product_id")))
	if err != nil {
		c.Redirect(http.StatusFound, "/commande-03")
		return
	}
	quantity, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("fuel_quantity")), 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/commande-03")
		return
	}

	order, err := s.orderSvc.CreateFuelOrder(c.Request.Context(), orderdomain.CreateFuelOrderRequest{
		CustomerID: account.CustomerID,
		ProductID:  productID,
		Quantity:   quantity,
		PostalCode: strings.TrimSpace(c.PostForm("postal_code")),
	})
	if err != nil {
		metrics.Fuel().IncOrder(metrics.OrderResultFailed)
		s.log.Error("order creation failed",
			zap.String("account_id", account.ID.String()),
			zap.Error(err),
		)
		c.Redirect(http.StatusFound, "/shop/cart")
		return
	}

	metrics.Fuel().IncOrder(metrics.OrderResultCreated)
	s.sessions.SetOrder(c, order.ID)
	c.Redirect(http.StatusFound, "/shop/checkout")
}
