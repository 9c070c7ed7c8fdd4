package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindPriceList(ctx context.Context, db *gorm.DB, id int64) (*PriceList, error)
	// ResolveRule returns the best matching rule for (product, quantity,
	// customer) on a price list, or nil when no rule applies.
	ResolveRule(ctx context.Context, db *gorm.DB, pricelistID int64, productID snowflake.ID, quantity float64, customerID snowflake.ID) (*PriceRule, error)
}
