package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateFuelOrderRequest struct {
	CustomerID snowflake.ID
	ProductID  snowflake.ID
	Quantity   float64
	PostalCode string
}

type Service interface {
	// CreateFuelOrder materializes one order with one line. The unit price
	// is always recomputed from the zone's price list; a price submitted by
	// the caller is never trusted.
	CreateFuelOrder(ctx context.Context, req CreateFuelOrderRequest) (*Order, error)
}

var (
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrNotFound        = errors.New("not_found")
)
