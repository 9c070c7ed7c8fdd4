package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	"github.com/smallbiznis/mazout/internal/order/domain"
	pricingdomain "github.com/smallbiznis/mazout/internal/pricing/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	orders       []*domain.Order
	lines        []*domain.OrderLine
	recomputeErr error
	recomputed   int
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	_ = ctx
	_ = db
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) CreateOrderLine(ctx context.Context, db *gorm.DB, line *domain.OrderLine) error {
	_ = ctx
	_ = db
	f.lines = append(f.lines, line)
	return nil
}

func (f *fakeOrderRepo) RecomputeTotals(ctx context.Context, db *gorm.DB, orderID snowflake.ID) error {
	_ = ctx
	_ = db
	_ = orderID
	f.recomputed++
	return f.recomputeErr
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	_ = ctx
	_ = db
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

type fakeProducts struct {
	byID map[snowflake.ID]*catalogdomain.Product
}

func (f *fakeProducts) FindByCode(ctx context.Context, db *gorm.DB, code string) (*catalogdomain.Product, error) {
	_ = ctx
	_ = db
	for _, p := range f.byID {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Product, error) {
	_ = ctx
	_ = db
	return f.byID[id], nil
}

func (f *fakeProducts) FindVariants(ctx context.Context, db *gorm.DB, productID snowflake.ID) ([]catalogdomain.Variant, error) {
	_ = ctx
	_ = db
	_ = productID
	return nil, nil
}

func (f *fakeProducts) UpdateTariff(ctx context.Context, db *gorm.DB, update catalogdomain.TariffUpdate) error {
	_ = ctx
	_ = db
	_ = update
	return nil
}

type fakePricing struct {
	lastPostal string
	quotes     map[string]*pricingdomain.Quote
}

func (f *fakePricing) ProductCodeForQuantity(quantity float64, ul bool) string {
	_ = quantity
	_ = ul
	return catalogdomain.CodeStandard
}

func (f *fakePricing) Quote(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.Quote, error) {
	_ = ctx
	f.lastPostal = req.PostalCode
	q, ok := f.quotes[req.PostalCode]
	if !ok {
		return nil, pricingdomain.ErrUnknownPostalCode
	}
	return q, nil
}

func (f *fakePricing) QuoteChecked(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.Quote, error) {
	return f.Quote(ctx, req)
}

func (f *fakePricing) PriceListForPostalCode(ctx context.Context, postalCode string) (*pricingdomain.PriceList, bool, error) {
	_ = ctx
	_, ok := f.quotes[postalCode]
	return nil, ok, nil
}

func newOrderService(t *testing.T, repo domain.Repository, products catalogdomain.Repository, pricing pricingdomain.Service) *Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return &Service{
		db:       gdb,
		log:      zap.NewNop(),
		genID:    node,
		repo:     repo,
		products: products,
		pricing:  pricing,
		cfg:      Config{DefaultPostalCode: "4990"},
	}
}

func stdQuote() *pricingdomain.Quote {
	return &pricingdomain.Quote{
		ProductID:   snowflake.ID(10),
		ProductCode: catalogdomain.CodeStandard,
		PricelistID: 6,
		Quantity:    1000,
		UnitPrice:   1.05,
		TotalPrice:  1050,
	}
}

func TestCreateFuelOrderForcesComputedPrice(t *testing.T) {
	repo := &fakeOrderRepo{}
	products := &fakeProducts{byID: map[snowflake.ID]*catalogdomain.Product{
		10: {ID: 10, Code: catalogdomain.CodeStandard, ListPrice: 1.00},
	}}
	pricing := &fakePricing{quotes: map[string]*pricingdomain.Quote{"4990": stdQuote()}}
	s := newOrderService(t, repo, products, pricing)

	order, err := s.CreateFuelOrder(context.Background(), domain.CreateFuelOrderRequest{
		CustomerID: 7,
		ProductID:  10,
		Quantity:   1000,
		PostalCode: "4990",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if len(repo.orders) != 1 || len(repo.lines) != 1 {
		t.Fatalf("expected one order and one line, got %d/%d", len(repo.orders), len(repo.lines))
	}
	line := repo.lines[0]
	if line.PriceUnit != 1.05 {
		t.Fatalf("expected computed unit price 1.05, got %v", line.PriceUnit)
	}
	if line.OrderID != order.ID {
		t.Fatal("line not attached to order")
	}
	if repo.recomputed != 1 {
		t.Fatalf("expected one totals recomputation, got %d", repo.recomputed)
	}
	if order.AmountTotal != 1050 {
		t.Fatalf("expected amount_total 1050, got %v", order.AmountTotal)
	}
}

func TestCreateFuelOrderFallsBackToDefaultZone(t *testing.T) {
	repo := &fakeOrderRepo{}
	products := &fakeProducts{byID: map[snowflake.ID]*catalogdomain.Product{
		10: {ID: 10, Code: catalogdomain.CodeStandard, ListPrice: 1.00},
	}}
	pricing := &fakePricing{quotes: map[string]*pricingdomain.Quote{"4990": stdQuote()}}
	s := newOrderService(t, repo, products, pricing)

	_, err := s.CreateFuelOrder(context.Background(), domain.CreateFuelOrderRequest{
		CustomerID: 7,
		ProductID:  10,
		Quantity:   1000,
		PostalCode: "9999",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if pricing.lastPostal != "4990" {
		t.Fatalf("expected fallback to default zone, last postal %q", pricing.lastPostal)
	}
}

func TestCreateFuelOrderSwallowsTotalsFailure(t *testing.T) {
	repo := &fakeOrderRepo{recomputeErr: errors.New("boom")}
	products := &fakeProducts{byID: map[snowflake.ID]*catalogdomain.Product{
		10: {ID: 10, Code: catalogdomain.CodeStandard, ListPrice: 1.00},
	}}
	pricing := &fakePricing{quotes: map[string]*pricingdomain.Quote{"4990": stdQuote()}}
	s := newOrderService(t, repo, products, pricing)

	order, err := s.CreateFuelOrder(context.Background(), domain.CreateFuelOrderRequest{
		CustomerID: 7,
		ProductID:  10,
		Quantity:   1000,
		PostalCode: "4990",
	})
	if err != nil {
		t.Fatalf("expected order despite totals failure, got %v", err)
	}
	if order == nil {
		t.Fatal("expected order")
	}
}

func TestCreateFuelOrderUnknownProduct(t *testing.T) {
	repo := &fakeOrderRepo{}
	products := &fakeProducts{byID: map[snowflake.ID]*catalogdomain.Product{}}
	pricing := &fakePricing{quotes: map[string]*pricingdomain.Quote{"4990": stdQuote()}}
	s := newOrderService(t, repo, products, pricing)

	_, err := s.CreateFuelOrder(context.Background(), domain.CreateFuelOrderRequest{
		CustomerID: 7,
		ProductID:  99,
		Quantity:   1000,
		PostalCode: "4990",
	})
	if !errors.Is(err, domain.ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct, got %v", err)
	}
}
