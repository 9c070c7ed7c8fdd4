package spf

import (
	"context"
	"errors"
	"time"

	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	"github.com/smallbiznis/mazout/internal/clock"
	"github.com/smallbiznis/mazout/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config controls the tariff sync job.
type Config struct {
	Enabled      bool
	URL          string
	FetchTimeout time.Duration
	RunInterval  time.Duration
	Markup       float64
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Catalog catalogdomain.Service
	Fetcher Fetcher
	Config  Config
}

// Service runs the official tariff sync: fetch the bulletin, parse the
// two published prices, derive the premium grades and write all four
// into the catalog.
type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	catalog catalogdomain.Service
	fetcher Fetcher
	extract func([]byte) (string, error)
	cfg     Config
}

func New(p Params) *Service {
	return &Service{
		log:     p.Log.Named("spf.sync"),
		clock:   p.Clock,
		catalog: p.Catalog,
		fetcher: p.Fetcher,
		extract: ExtractText,
		cfg:     p.Config,
	}
}

// Sync performs one sync run. Fetch, extract and parse failures abort
// the run with no writes. Per-product writes are committed one at a
// time; a missing product is skipped, not fatal.
func (s *Service) Sync(ctx context.Context) error {
	start := s.clock.Now()
	fuelMetrics := metrics.Fuel()

	data, err := s.fetcher.Fetch(ctx)
	if err != nil {
		fuelMetrics.IncSyncRun(metrics.SyncResultFailure)
		s.log.Warn("tariff bulletin fetch failed", zap.String("url", s.cfg.URL), zap.Error(err))
		return err
	}

	text, err := s.extract(data)
	if err != nil {
		fuelMetrics.IncSyncRun(metrics.SyncResultFailure)
		s.log.Warn("tariff bulletin extraction failed", zap.Error(err))
		return err
	}

	tariffs, err := ParseTariffs(text, s.cfg.Markup)
	if err != nil {
		fuelMetrics.IncSyncRun(metrics.SyncResultFailure)
		s.log.Warn("tariff bulletin did not match expected layout", zap.Error(err))
		return err
	}

	now := s.clock.Now().UTC()
	next := now.Add(s.cfg.RunInterval)
	prices := map[string]float64{
		catalogdomain.CodeStandard:     tariffs.Standard,
		catalogdomain.CodeDegressive:   tariffs.Degressive,
		catalogdomain.CodeStandardUL:   tariffs.StandardUL,
		catalogdomain.CodeDegressiveUL: tariffs.DegressiveUL,
	}

	var failed bool
	for _, code := range catalogdomain.Codes() {
		err := s.catalog.ApplyTariff(ctx, code, prices[code], s.cfg.URL, now, &next)
		if errors.Is(err, catalogdomain.ErrNotFound) {
			s.log.Warn("tariff sync skipped missing product", zap.String("code", code))
			continue
		}
		if err != nil {
			failed = true
			s.log.Error("tariff write failed", zap.String("code", code), zap.Error(err))
		}
	}

	fuelMetrics.ObserveSyncDuration(s.clock.Now().Sub(start))
	if failed {
		fuelMetrics.IncSyncRun(metrics.SyncResultFailure)
		return errors.New("tariff sync finished with write failures")
	}

	fuelMetrics.IncSyncRun(metrics.SyncResultSuccess)
	fuelMetrics.SetSyncLastSuccess(now)
	s.log.Info("tariff sync completed",
		zap.Float64("standard", tariffs.Standard),
		zap.Float64("degressive", tariffs.Degressive),
		zap.Float64("standard_ul", tariffs.StandardUL),
		zap.Float64("degressive_ul", tariffs.DegressiveUL),
	)
	return nil
}
