package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Zones is the immutable postal code → price-list id table. It comes from
// configuration so tests can substitute it.
type Zones map[string]int64

type PriceList struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:text;not null" json:"name"`
	CurrencyCode     string    `gorm:"type:text;not null;default:'EUR'" json:"currency_code"`
	CurrencyDecimals int       `gorm:"not null;default:2" json:"currency_decimals"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PriceList) TableName() string { return "pricelists" }

// Rule compute modes.
const (
	ComputeFixed   = "fixed"
	ComputeFormula = "formula"
)

// PriceRule overrides a product's list price within one price list. A nil
// ProductID applies to the whole list. Formula rules compute
// list_price × (1 − discount) + surcharge.
type PriceRule struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	PricelistID    int64         `gorm:"not null;index" json:"pricelist_id"`
	ProductID      *snowflake.ID `gorm:"index" json:"product_id,omitempty"`
	MinQuantity    float64       `gorm:"not null;default:0" json:"min_quantity"`
	ComputePrice   string        `gorm:"type:text;not null" json:"compute_price"`
	FixedPrice     float64       `gorm:"not null;default:0" json:"fixed_price"`
	PriceDiscount  float64       `gorm:"not null;default:0" json:"price_discount"`
	PriceSurcharge float64       `gorm:"not null;default:0" json:"price_surcharge"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PriceRule) TableName() string { return "pricelist_items" }
