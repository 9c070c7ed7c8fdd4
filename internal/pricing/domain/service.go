package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type QuoteRequest struct {
	Quantity   float64
	PostalCode string
	UL         bool
	CustomerID snowflake.ID
}

type Quote struct {
	ProductID      snowflake.ID `json:"product_id"`
	ProductCode    string       `json:"product_code"`
	PricelistID    int64        `json:"pricelist_id"`
	Quantity       float64      `json:"quantity"`
	UnitPrice      float64      `json:"unit_price"`
	TotalPrice     float64      `json:"total_price"`
	FormattedPrice string       `json:"formatted_price"`
	Currency       string       `json:"currency"`
}

type Service interface {
	// ProductCodeForQuantity picks the SKU: degressive at or above the
	// threshold, standard below, UL variants when ul is set.
	ProductCodeForQuantity(quantity float64, ul bool) string
	// Quote computes the zone price for a quantity. Read-only.
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
	// QuoteChecked is Quote plus the async-path quantity domain check.
	QuoteChecked(ctx context.Context, req QuoteRequest) (*Quote, error)
	// PriceListForPostalCode resolves the zone's price list; ok is false
	// for unserved postal codes.
	PriceListForPostalCode(ctx context.Context, postalCode string) (*PriceList, bool, error)
}

var (
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrUnknownPostalCode = errors.New("unknown_postal_code")
	ErrProductNotFound   = errors.New("product_not_found")
	ErrPriceListNotFound = errors.New("pricelist_not_found")
)

// Error kinds surfaced by the JSON quote endpoint.
const (
	KindNone       = "none"
	KindQuantity   = "quantity"
	KindPostalCode = "postal_code"
	KindGeneric    = "generic"
)

// Kind classifies a quote error for the wire.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidQuantity):
		return KindQuantity
	case errors.Is(err, ErrUnknownPostalCode):
		return KindPostalCode
	default:
		return KindGeneric
	}
}
