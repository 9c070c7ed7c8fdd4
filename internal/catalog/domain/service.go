package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// TariffUpdate writes a new list price and sync metadata to a product and
// all of its variants.
type TariffUpdate struct {
	ProductID  snowflake.ID
	ListPrice  float64
	SourceURL  string
	SyncedAt   time.Time
	NextUpdate *time.Time
}

type Service interface {
	GetByCode(ctx context.Context, code string) (*Product, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Product, error)
	// ApplyTariff updates the product identified by code. The write is
	// committed before ApplyTariff returns so that a later failure in the
	// same sync run does not roll it back.
	ApplyTariff(ctx context.Context, code string, price float64, sourceURL string, syncedAt time.Time, nextUpdate *time.Time) error
}

var (
	ErrNotFound    = errors.New("not_found")
	ErrInvalidCode = errors.New("invalid_code")
)
