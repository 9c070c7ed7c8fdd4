package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	"github.com/smallbiznis/mazout/internal/order/domain"
	pricingdomain "github.com/smallbiznis/mazout/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config carries the fallback zone for order creation.
type Config struct {
	DefaultPostalCode string
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Products catalogdomain.Repository
	Pricing  pricingdomain.Service
	Config   Config
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	products catalogdomain.Repository
	pricing  pricingdomain.Service
	cfg      Config
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		products: p.Products,
		pricing:  p.Pricing,
		cfg:      p.Config,
	}
}

func (s *Service) CreateFuelOrder(ctx context.Context, req domain.CreateFuelOrderRequest) (*domain.Order, error) {
	if req.CustomerID == 0 {
		return nil, domain.ErrInvalidCustomer
	}

	product, err := s.products.FindByID(ctx, s.db, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidProduct
	}

	// The unit price is never taken from the request: the quote is
	// recomputed here, falling back to the default zone when the postal
	// code is not served.
	ul := strings.HasSuffix(product.Code, "_UL")
	quote, err := s.pricing.Quote(ctx, pricingdomain.QuoteRequest{
		Quantity:   req.Quantity,
		PostalCode: req.PostalCode,
		UL:         ul,
		CustomerID: req.CustomerID,
	})
	if errors.Is(err, pricingdomain.ErrUnknownPostalCode) {
		quote, err = s.pricing.Quote(ctx, pricingdomain.QuoteRequest{
			Quantity:   req.Quantity,
			PostalCode: s.cfg.DefaultPostalCode,
			UL:         ul,
			CustomerID: req.CustomerID,
		})
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:                 s.genID.Generate(),
		CustomerID:         req.CustomerID,
		InvoiceCustomerID:  req.CustomerID,
		ShippingCustomerID: req.CustomerID,
		PricelistID:        quote.PricelistID,
		Status:             "draft",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	line := &domain.OrderLine{
		ID:            s.genID.Generate(),
		OrderID:       order.ID,
		ProductID:     quote.ProductID,
		Quantity:      req.Quantity,
		PriceUnit:     quote.UnitPrice,
		PriceSubtotal: quote.TotalPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateOrder(ctx, tx, order); err != nil {
			return err
		}
		return s.repo.CreateOrderLine(ctx, tx, line)
	})
	if err != nil {
		return nil, err
	}

	// Stale totals beat a failed order: the recomputation hook is
	// best-effort.
	if err := s.repo.RecomputeTotals(ctx, s.db, order.ID); err != nil {
		s.log.Error("order totals recomputation failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	} else {
		order.AmountTotal = quote.TotalPrice
	}

	s.log.Info("fuel order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("product_code", quote.ProductCode),
		zap.Float64("quantity", req.Quantity),
		zap.Float64("unit_price", quote.UnitPrice),
	)
	return order, nil
}
