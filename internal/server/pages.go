package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/smallbiznis/mazout/internal/pricing/domain"
	"go.uber.org/zap"
)

const defaultPageQuantity = 1000

type orderPageData struct {
	ProductID      string
	ProductName    string
	Quantity       float64
	FormattedPrice string
	MinQuantity    float64
	MaxQuantity    float64
	PostalCodes    []string
}

// OrderPage renders the public order form for one SKU with the current
// price for the default quantity.
func (s *Server) OrderPage(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := s.catalogSvc.GetByCode(c.Request.Context(), code)
		if err != nil {
			c.HTML(http.StatusNotFound, "page.html", gin.H{
				"Title":   "Produit indisponible",
				"Message": "Ce produit n'est pas disponible pour le moment.",
			})
			return
		}

		quote, err := s.pricingSvc.Quote(c.Request.Context(), pricingdomain.QuoteRequest{
			Quantity:   defaultPageQuantity,
			PostalCode: s.cfg.Fuel.DefaultPostalCode,
			UL:         strings.HasSuffix(code, "_UL"),
		})
		if err != nil {
			s.log.Warn("order page quote failed", zap.String("code", code), zap.Error(err))
			quote = &pricingdomain.Quote{Quantity: defaultPageQuantity}
		}

		c.HTML(http.StatusOK, "order_form.html", orderPageData{
			ProductID:      product.ID.String(),
			ProductName:    product.Name,
			Quantity:       quote.Quantity,
			FormattedPrice: quote.FormattedPrice,
			MinQuantity:    s.cfg.Fuel.MinQuantity,
			MaxQuantity:    s.cfg.Fuel.MaxQuantity,
			PostalCodes:    s.cfg.Fuel.AllowedPostalCodes(),
		})
	}
}

// StaticPage renders a one-message placeholder page.
func (s *Server) StaticPage(title, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "page.html", gin.H{
			"Title":   title,
			"Message": message,
		})
	}
}
