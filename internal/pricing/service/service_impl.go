package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	"github.com/smallbiznis/mazout/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config carries the static fuel-sale parameters the quote path needs.
type Config struct {
	MinQuantity         float64
	MaxQuantity         float64
	DegressiveThreshold float64
	Zones               domain.Zones
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Repo     domain.Repository
	Products catalogdomain.Repository
	Config   Config
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	products catalogdomain.Repository
	cfg      Config
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("pricing.service"),
		repo:     p.Repo,
		products: p.Products,
		cfg:      p.Config,
	}
}

func (s *Service) ProductCodeForQuantity(quantity float64, ul bool) string {
	degressive := quantity >= s.cfg.DegressiveThreshold
	switch {
	case degressive && ul:
		return catalogdomain.CodeDegressiveUL
	case degressive:
		return catalogdomain.CodeDegressive
	case ul:
		return catalogdomain.CodeStandardUL
	default:
		return catalogdomain.CodeStandard
	}
}

func (s *Service) PriceListForPostalCode(ctx context.Context, postalCode string) (*domain.PriceList, bool, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return nil, false, nil
	}
	id, ok := s.cfg.Zones[postalCode]
	if !ok {
		return nil, false, nil
	}
	pl, err := s.repo.FindPriceList(ctx, s.db, id)
	if err != nil {
		return nil, false, err
	}
	if pl == nil {
		return nil, false, fmt.Errorf("%w: id %d", domain.ErrPriceListNotFound, id)
	}
	return pl, true, nil
}

func (s *Service) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	pl, ok, err := s.PriceListForPostalCode(ctx, req.PostalCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnknownPostalCode
	}

	code := s.ProductCodeForQuantity(req.Quantity, req.UL)
	product, err := s.products.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		s.log.Error("no product for derived code", zap.String("code", code))
		return nil, domain.ErrProductNotFound
	}

	rule, err := s.repo.ResolveRule(ctx, s.db, pl.ID, product.ID, req.Quantity, req.CustomerID)
	if err != nil {
		// The original treats a rule lookup failure as "no rule".
		s.log.Warn("price rule resolution failed", zap.Int64("pricelist_id", pl.ID), zap.Error(err))
		rule = nil
	}

	unitPrice := product.ListPrice
	switch {
	case rule != nil && rule.ComputePrice == domain.ComputeFixed && rule.FixedPrice != 0:
		unitPrice = rule.FixedPrice
	case rule != nil && rule.ComputePrice == domain.ComputeFormula:
		unitPrice = product.ListPrice*(1.0-rule.PriceDiscount) + rule.PriceSurcharge
	}

	total := roundTo(unitPrice*req.Quantity, pl.CurrencyDecimals)

	return &domain.Quote{
		ProductID:      product.ID,
		ProductCode:    product.Code,
		PricelistID:    pl.ID,
		Quantity:       req.Quantity,
		UnitPrice:      unitPrice,
		TotalPrice:     total,
		FormattedPrice: FormatAmount(total, pl.CurrencyCode, pl.CurrencyDecimals),
		Currency:       pl.CurrencyCode,
	}, nil
}

func (s *Service) QuoteChecked(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	if req.Quantity < s.cfg.MinQuantity || req.Quantity > s.cfg.MaxQuantity {
		return nil, fmt.Errorf("%w: quantity must be between %gL and %gL",
			domain.ErrInvalidQuantity, s.cfg.MinQuantity, s.cfg.MaxQuantity)
	}
	return s.Quote(ctx, req)
}

func roundTo(value float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(value*pow) / pow
}
