package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Product codes for the four fuel SKUs. UL variants carry a fixed markup
// over the official tariff.
const (
	CodeStandard     = "MAZOUT_STD"
	CodeDegressive   = "MAZOUT_DEG"
	CodeStandardUL   = "MAZOUT_STD_UL"
	CodeDegressiveUL = "MAZOUT_DEG_UL"
)

// Codes lists the four SKUs in tariff-sync order.
func Codes() []string {
	return []string{CodeStandard, CodeDegressive, CodeStandardUL, CodeDegressiveUL}
}

type Product struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Code          string       `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name          string       `gorm:"type:text;not null" json:"name"`
	ListPrice     float64      `gorm:"not null;default:0" json:"list_price"`
	SPFLastUpdate *time.Time   `gorm:"column:spf_last_update" json:"spf_last_update,omitempty"`
	SPFSourceURL  string       `gorm:"column:spf_source_url;type:text" json:"spf_source_url,omitempty"`
	SPFNextUpdate *time.Time   `gorm:"column:spf_next_update" json:"spf_next_update,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// Variant is a purchasable variant of a product. Tariff updates propagate
// to every variant of the product.
type Variant struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ProductID snowflake.ID `gorm:"not null;index" json:"product_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	LstPrice  float64      `gorm:"not null;default:0" json:"lst_price"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Variant) TableName() string { return "product_variants" }
