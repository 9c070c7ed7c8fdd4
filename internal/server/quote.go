package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/mazout/internal/observability/metrics"
	pricingdomain "github.com/smallbiznis/mazout/internal/pricing/domain"
	"go.uber.org/zap"
)

// FuelPriceUpdateRequest tolerates numbers arriving as JSON numbers or
// strings; the storefront widget sends both.
type FuelPriceUpdateRequest struct {
	ProductID  json.RawMessage `json:"product_id"`
	Quantity   json.RawMessage `json:"quantity"`
	PostalCode string          `json:"postal_code"`
	UL         bool            `json:"ul"`
}

type fuelPriceResponse struct {
	ProductID      string  `json:"product_id,omitempty"`
	Quantity       float64 `json:"quantity,omitempty"`
	UnitPrice      float64 `json:"unit_price,omitempty"`
	TotalPrice     float64 `json:"total_price,omitempty"`
	FormattedPrice string  `json:"formatted_price,omitempty"`
	Currency       string  `json:"currency,omitempty"`
	Error          string  `json:"error,omitempty"`
	ErrorType      string  `json:"error_type"`
}

// FuelPriceUpdate is the public JSON quote endpoint. It always answers
// HTTP 200; failures are reported in the body with an error_type the
// widget dispatches on.
func (s *Server) FuelPriceUpdate(c *gin.Context) {
	var req FuelPriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.quoteError(c, pricingdomain.KindGeneric, "requête invalide")
		return
	}

	quantity, err := parseFlexibleFloat(req.Quantity)
	if err != nil {
		s.quoteError(c, pricingdomain.KindQuantity, s.quantityErrorMessage())
		return
	}

	quote, err := s.pricingSvc.QuoteChecked(c.Request.Context(), pricingdomain.QuoteRequest{
		Quantity:   quantity,
		PostalCode: req.PostalCode,
		UL:         req.UL,
	})
	if err != nil {
		kind := pricingdomain.Kind(err)
		switch kind {
		case pricingdomain.KindQuantity:
			s.quoteError(c, kind, s.quantityErrorMessage())
		case pricingdomain.KindPostalCode:
			s.quoteError(c, kind, "nous ne livrons pas ce code postal")
		default:
			s.log.Error("quote failed", zap.Error(err))
			s.quoteError(c, kind, "une erreur technique est survenue")
		}
		return
	}

	metrics.Fuel().IncQuoteRequest(metrics.QuoteErrorTypeNone)
	c.JSON(http.StatusOK, fuelPriceResponse{
		ProductID:      quote.ProductID.String(),
		Quantity:       quote.Quantity,
		UnitPrice:      quote.UnitPrice,
		TotalPrice:     quote.TotalPrice,
		FormattedPrice: quote.FormattedPrice,
		Currency:       quote.Currency,
		ErrorType:      pricingdomain.KindNone,
	})
}

func (s *Server) quoteError(c *gin.Context, kind, message string) {
	metrics.Fuel().IncQuoteRequest(kind)
	c.JSON(http.StatusOK, fuelPriceResponse{
		Error:     message,
		ErrorType: kind,
	})
}

func (s *Server) quantityErrorMessage() string {
	return fmt.Sprintf("la quantité doit être comprise entre %gL et %gL",
		s.cfg.Fuel.MinQuantity, s.cfg.Fuel.MaxQuantity)
}

// parseFlexibleFloat accepts 1000, "1000" and "1000.5".
func parseFlexibleFloat(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("empty value")
	}
	text := strings.TrimSpace(string(raw))
	text = strings.Trim(text, `"`)
	if text == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(text, 64)
}
