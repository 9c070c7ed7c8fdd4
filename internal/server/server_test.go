package server

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	"github.com/smallbiznis/mazout/internal/config"
	customerdomain "github.com/smallbiznis/mazout/internal/customer/domain"
	orderdomain "github.com/smallbiznis/mazout/internal/order/domain"
	pricingdomain "github.com/smallbiznis/mazout/internal/pricing/domain"
	"github.com/smallbiznis/mazout/internal/server/session"
	"go.uber.org/zap"
)

func testConfig() config.Config {
	return config.Config{
		Environment: "test",
		HTTPAddr:    ":0",
		Fuel: config.FuelConfig{
			MinQuantity:         500,
			MaxQuantity:         3000,
			DegressiveThreshold: 2000,
			DefaultPostalCode:   "4990",
			Zones:               map[string]int64{"4990": 6, "6960": 12},
		},
	}
}

type fakeCatalogService struct {
	products map[string]*catalogdomain.Product
}

func (f *fakeCatalogService) GetByCode(ctx context.Context, code string) (*catalogdomain.Product, error) {
	_ = ctx
	if p, ok := f.products[code]; ok {
		return p, nil
	}
	return nil, catalogdomain.ErrNotFound
}

func (f *fakeCatalogService) GetByID(ctx context.Context, id snowflake.ID) (*catalogdomain.Product, error) {
	_ = ctx
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalogdomain.ErrNotFound
}

func (f *fakeCatalogService) ApplyTariff(ctx context.Context, code string, price float64, sourceURL string, syncedAt time.Time, nextUpdate *time.Time) error {
	_ = ctx
	_ = code
	_ = price
	_ = sourceURL
	_ = syncedAt
	_ = nextUpdate
	return nil
}

type fakePricingService struct {
	quote *pricingdomain.Quote
	err   error
}

func (f *fakePricingService) ProductCodeForQuantity(quantity float64, ul bool) string {
	if quantity >= 2000 {
		if ul {
			return catalogdomain.CodeDegressiveUL
		}
		return catalogdomain.CodeDegressive
	}
	if ul {
		return catalogdomain.CodeStandardUL
	}
	return catalogdomain.CodeStandard
}

func (f *fakePricingService) Quote(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.Quote, error) {
	_ = ctx
	_ = req
	return f.quote, f.err
}

func (f *fakePricingService) QuoteChecked(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.Quote, error) {
	return f.Quote(ctx, req)
}

func (f *fakePricingService) PriceListForPostalCode(ctx context.Context, postalCode string) (*pricingdomain.PriceList, bool, error) {
	_ = ctx
	_ = postalCode
	return nil, f.err == nil, f.err
}

type fakeOrderService struct {
	order    *orderdomain.Order
	err      error
	requests []orderdomain.CreateFuelOrderRequest
}

func (f *fakeOrderService) CreateFuelOrder(ctx context.Context, req orderdomain.CreateFuelOrderRequest) (*orderdomain.Order, error) {
	_ = ctx
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

const testSessionToken = "fixed-raw-session-token"

type fakeCustomerService struct {
	customer      *customerdomain.Customer
	account       *customerdomain.Account
	signupErr     error
	sessionErr    error
	requests      []customerdomain.SignupRequest
	sessionStarts []snowflake.ID
	sessionEnded  bool
}

func (f *fakeCustomerService) Signup(ctx context.Context, req customerdomain.SignupRequest) (*customerdomain.Customer, *customerdomain.Account, error) {
	_ = ctx
	f.requests = append(f.requests, req)
	if f.signupErr != nil {
		return nil, nil, f.signupErr
	}
	return f.customer, f.account, nil
}

func (f *fakeCustomerService) Authenticate(ctx context.Context, login, password string) (*customerdomain.Account, error) {
	_ = ctx
	_ = login
	_ = password
	if f.account == nil {
		return nil, customerdomain.ErrInvalidCredentials
	}
	return f.account, nil
}

func (f *fakeCustomerService) StartSession(ctx context.Context, accountID snowflake.ID) (*customerdomain.SessionToken, error) {
	_ = ctx
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	f.sessionStarts = append(f.sessionStarts, accountID)
	return &customerdomain.SessionToken{
		RawToken:  testSessionToken,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeCustomerService) ResolveSession(ctx context.Context, rawToken string) (*customerdomain.Account, error) {
	_ = ctx
	if f.account == nil || rawToken != testSessionToken {
		return nil, customerdomain.ErrInvalidSession
	}
	return f.account, nil
}

func (f *fakeCustomerService) EndSession(ctx context.Context, rawToken string) error {
	_ = ctx
	if rawToken != testSessionToken {
		return customerdomain.ErrInvalidSession
	}
	f.sessionEnded = true
	return nil
}

func (f *fakeCustomerService) GetCustomer(ctx context.Context, id snowflake.ID) (*customerdomain.Customer, error) {
	_ = ctx
	if f.customer == nil || f.customer.ID != id {
		return nil, customerdomain.ErrNotFound
	}
	return f.customer, nil
}

var errBoom = errors.New("boom")

type testServerOptions struct {
	pricing  *fakePricingService
	catalog  *fakeCatalogService
	orders   *fakeOrderService
	accounts *fakeCustomerService
}

func newTestServer(opts testServerOptions) *Server {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	if opts.pricing == nil {
		opts.pricing = &fakePricingService{quote: &pricingdomain.Quote{
			ProductID:      snowflake.ID(10),
			ProductCode:    catalogdomain.CodeStandard,
			PricelistID:    6,
			Quantity:       1000,
			UnitPrice:      1.05,
			TotalPrice:     1050,
			FormattedPrice: "1.050,00 €",
			Currency:       "EUR",
		}}
	}
	if opts.catalog == nil {
		opts.catalog = &fakeCatalogService{products: map[string]*catalogdomain.Product{
			catalogdomain.CodeStandard: {ID: 10, Code: catalogdomain.CodeStandard, Name: "Mazout standard"},
		}}
	}
	if opts.orders == nil {
		opts.orders = &fakeOrderService{order: &orderdomain.Order{ID: snowflake.ID(500)}}
	}
	if opts.accounts == nil {
		opts.accounts = &fakeCustomerService{
			customer: &customerdomain.Customer{ID: snowflake.ID(7), Zip: "4990"},
			account:  &customerdomain.Account{ID: snowflake.ID(70), CustomerID: snowflake.ID(7)},
		}
	}

	return NewServer(ServerParams{
		Gin:         NewEngine(cfg),
		Cfg:         cfg,
		Log:         zap.NewNop(),
		Sessions:    session.NewManager(cfg),
		CatalogSvc:  opts.catalog,
		PricingSvc:  opts.pricing,
		OrderSvc:    opts.orders,
		CustomerSvc: opts.accounts,
	})
}
