package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mazout/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, list_price, spf_last_update, spf_source_url, spf_next_update, created_at, updated_at
		 FROM products WHERE code = ? LIMIT 1`,
		code,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, list_price, spf_last_update, spf_source_url, spf_next_update, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindVariants(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]domain.Variant, error) {
	var items []domain.Variant
	err := db.WithContext(ctx).Raw(
		`SELECT id, product_id, name, lst_price, created_at, updated_at
		 FROM product_variants WHERE product_id = ? ORDER BY id`,
		productID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateTariff runs in its own transaction: the product row and every
// variant row change together, and the commit happens here rather than at
// the end of the calling sync run.
func (r *repo) UpdateTariff(ctx context.Context, db *gorm.DB, update domain.TariffUpdate) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`UPDATE products
			 SET list_price = ?, spf_last_update = ?, spf_source_url = ?, spf_next_update = ?, updated_at = ?
			 WHERE id = ?`,
			update.ListPrice,
			update.SyncedAt,
			update.SourceURL,
			update.NextUpdate,
			update.SyncedAt,
			update.ProductID,
		).Error; err != nil {
			return err
		}
		return tx.Exec(
			`UPDATE product_variants SET lst_price = ?, updated_at = ? WHERE product_id = ?`,
			update.ListPrice,
			update.SyncedAt,
			update.ProductID,
		).Error
	})
}
