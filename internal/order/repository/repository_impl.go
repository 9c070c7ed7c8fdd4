package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mazout/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateOrder(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sale_orders (id, customer_id, invoice_customer_id, shipping_customer_id, pricelist_id, status, amount_total, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.CustomerID,
		order.InvoiceCustomerID,
		order.ShippingCustomerID,
		order.PricelistID,
		order.Status,
		order.AmountTotal,
		order.CreatedAt,
		order.UpdatedAt,
	).Error
}

func (r *repo) CreateOrderLine(ctx context.Context, db *gorm.DB, line *domain.OrderLine) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sale_order_lines (id, order_id, product_id, quantity, price_unit, price_subtotal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		line.ID,
		line.OrderID,
		line.ProductID,
		line.Quantity,
		line.PriceUnit,
		line.PriceSubtotal,
		line.CreatedAt,
		line.UpdatedAt,
	).Error
}

func (r *repo) RecomputeTotals(ctx context.Context, db *gorm.DB, orderID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sale_orders
		 SET amount_total = (
		   SELECT COALESCE(SUM(price_subtotal), 0)
		   FROM sale_order_lines WHERE order_id = ?
		 )
		 WHERE id = ?`,
		orderID,
		orderID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, invoice_customer_id, shipping_customer_id, pricelist_id, status, amount_total, created_at, updated_at
		 FROM sale_orders WHERE id = ?`,
		id,
	).Scan(&o).Error
	if err != nil {
		return nil, err
	}
	if o.ID == 0 {
		return nil, nil
	}
	return &o, nil
}
