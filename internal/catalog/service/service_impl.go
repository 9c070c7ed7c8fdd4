package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mazout/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidCode
	}
	item, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) ApplyTariff(ctx context.Context, code string, price float64, sourceURL string, syncedAt time.Time, nextUpdate *time.Time) error {
	product, err := s.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	update := domain.TariffUpdate{
		ProductID:  product.ID,
		ListPrice:  price,
		SourceURL:  sourceURL,
		SyncedAt:   syncedAt.UTC(),
		NextUpdate: nextUpdate,
	}
	if err := s.repo.UpdateTariff(ctx, s.db, update); err != nil {
		return err
	}

	s.log.Info("tariff applied",
		zap.String("code", code),
		zap.String("product_id", product.ID.String()),
		zap.Float64("list_price", price),
	)
	return nil
}
