package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	CreateOrder(ctx context.Context, db *gorm.DB, order *Order) error
	CreateOrderLine(ctx context.Context, db *gorm.DB, line *OrderLine) error
	// RecomputeTotals sums line subtotals into the order's amount_total.
	RecomputeTotals(ctx context.Context, db *gorm.DB, orderID snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
}
