package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mazout/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindPriceList(ctx context.Context, db *gorm.DB, id int64) (*domain.PriceList, error) {
	var pl domain.PriceList
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, currency_code, currency_decimals, created_at, updated_at
		 FROM pricelists WHERE id = ?`,
		id,
	).Scan(&pl).Error
	if err != nil {
		return nil, err
	}
	if pl.ID == 0 {
		return nil, nil
	}
	return &pl, nil
}

// ResolveRule picks at most one rule: product-specific rows win over
// list-wide rows, then the highest min_quantity still at or below the
// requested quantity. customerID is accepted for parity with the quote
// lookup signature; rules carry no per-customer restriction yet.
func (r *repo) ResolveRule(ctx context.Context, db *gorm.DB, pricelistID int64, productID snowflake.ID, quantity float64, customerID snowflake.ID) (*domain.PriceRule, error) {
	_ = customerID

	var rule domain.PriceRule
	err := db.WithContext(ctx).Raw(
		`SELECT id, pricelist_id, product_id, min_quantity, compute_price, fixed_price, price_discount, price_surcharge, created_at, updated_at
		 FROM pricelist_items
		 WHERE pricelist_id = ?
		   AND (product_id = ? OR product_id IS NULL)
		   AND min_quantity <= ?
		 ORDER BY (product_id IS NULL), min_quantity DESC
		 LIMIT 1`,
		pricelistID,
		productID,
		quantity,
	).Scan(&rule).Error
	if err != nil {
		return nil, err
	}
	if rule.ID == 0 {
		return nil, nil
	}
	return &rule, nil
}
