package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Order struct {
	ID                 snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID         snowflake.ID `gorm:"not null;index" json:"customer_id"`
	InvoiceCustomerID  snowflake.ID `gorm:"not null" json:"invoice_customer_id"`
	ShippingCustomerID snowflake.ID `gorm:"not null" json:"shipping_customer_id"`
	PricelistID        int64        `gorm:"not null" json:"pricelist_id"`
	Status             string       `gorm:"type:text;not null;default:'draft'" json:"status"`
	AmountTotal        float64      `gorm:"not null;default:0" json:"amount_total"`
	CreatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Order) TableName() string { return "sale_orders" }

type OrderLine struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID       snowflake.ID `gorm:"not null;index" json:"order_id"`
	ProductID     snowflake.ID `gorm:"not null" json:"product_id"`
	Quantity      float64      `gorm:"not null" json:"quantity"`
	PriceUnit     float64      `gorm:"not null" json:"price_unit"`
	PriceSubtotal float64      `gorm:"not null" json:"price_subtotal"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (OrderLine) TableName() string { return "sale_order_lines" }
