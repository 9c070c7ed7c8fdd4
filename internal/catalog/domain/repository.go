package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Product, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindVariants(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]Variant, error)
	UpdateTariff(ctx context.Context, db *gorm.DB, update TariffUpdate) error
}
