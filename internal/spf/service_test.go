package spf

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	"github.com/smallbiznis/mazout/internal/clock"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	data []byte
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]byte, error) {
	_ = ctx
	return f.data, f.err
}

type tariffWrite struct {
	code  string
	price float64
}

type fakeCatalog struct {
	missing map[string]bool
	failing map[string]error
	writes  []tariffWrite
}

func (f *fakeCatalog) GetByCode(ctx context.Context, code string) (*catalogdomain.Product, error) {
	_ = ctx
	_ = code
	return nil, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id snowflake.ID) (*catalogdomain.Product, error) {
	_ = ctx
	_ = id
	return nil, nil
}

func (f *fakeCatalog) ApplyTariff(ctx context.Context, code string, price float64, sourceURL string, syncedAt time.Time, nextUpdate *time.Time) error {
	_ = ctx
	_ = sourceURL
	_ = syncedAt
	_ = nextUpdate
	if f.missing[code] {
		return catalogdomain.ErrNotFound
	}
	if err := f.failing[code]; err != nil {
		return err
	}
	f.writes = append(f.writes, tariffWrite{code: code, price: price})
	return nil
}

func newSyncService(catalog catalogdomain.Service, fetcher Fetcher, extract func([]byte) (string, error)) *Service {
	return &Service{
		log:     zap.NewNop(),
		clock:   clock.NewFakeClock(time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)),
		catalog: catalog,
		fetcher: fetcher,
		extract: extract,
		cfg: Config{
			URL:         "https://example.test/tariffs.pdf",
			RunInterval: 24 * time.Hour,
			Markup:      0.02,
		},
	}
}

func passthroughText(text string) func([]byte) (string, error) {
	return func([]byte) (string, error) {
		return text, nil
	}
}

func TestSyncWritesAllGrades(t *testing.T) {
	catalog := &fakeCatalog{}
	s := newSyncService(catalog, &fakeFetcher{data: []byte("pdf")}, passthroughText(sampleBulletin))

	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(catalog.writes) != 4 {
		t.Fatalf("expected 4 tariff writes, got %d", len(catalog.writes))
	}

	want := map[string]float64{
		catalogdomain.CodeStandard:     1.2345,
		catalogdomain.CodeDegressive:   1.1000,
		catalogdomain.CodeStandardUL:   1.2545,
		catalogdomain.CodeDegressiveUL: 1.1200,
	}
	for _, w := range catalog.writes {
		if want[w.code] != w.price {
			t.Fatalf("expected %s price %v, got %v", w.code, want[w.code], w.price)
		}
	}
}

func TestSyncNoMatchWritesNothing(t *testing.T) {
	catalog := &fakeCatalog{}
	s := newSyncService(catalog, &fakeFetcher{data: []byte("pdf")}, passthroughText("Propane en vrac l 0,9000"))

	err := s.Sync(context.Background())
	if !errors.Is(err, ErrNoTariffs) {
		t.Fatalf("expected ErrNoTariffs, got %v", err)
	}
	if len(catalog.writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(catalog.writes))
	}
}

func TestSyncFetchFailureWritesNothing(t *testing.T) {
	catalog := &fakeCatalog{}
	s := newSyncService(catalog, &fakeFetcher{err: errors.New("connection refused")}, passthroughText(sampleBulletin))

	if err := s.Sync(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if len(catalog.writes) != 0 {
		t.Fatalf("expected no writes, got %d", len(catalog.writes))
	}
}

func TestSyncSkipsMissingProduct(t *testing.T) {
	catalog := &fakeCatalog{missing: map[string]bool{catalogdomain.CodeStandardUL: true}}
	s := newSyncService(catalog, &fakeFetcher{data: []byte("pdf")}, passthroughText(sampleBulletin))

	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(catalog.writes) != 3 {
		t.Fatalf("expected 3 writes with one product missing, got %d", len(catalog.writes))
	}
}

func TestSyncKeepsCommittedWritesOnLaterFailure(t *testing.T) {
	catalog := &fakeCatalog{failing: map[string]error{catalogdomain.CodeDegressiveUL: errors.New("disk full")}}
	s := newSyncService(catalog, &fakeFetcher{data: []byte("pdf")}, passthroughText(sampleBulletin))

	if err := s.Sync(context.Background()); err == nil {
		t.Fatal("expected sync failure")
	}
	if len(catalog.writes) != 3 {
		t.Fatalf("expected earlier writes to stay committed, got %d", len(catalog.writes))
	}
}
