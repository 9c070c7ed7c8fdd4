package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	"github.com/smallbiznis/mazout/internal/config"
	customerdomain "github.com/smallbiznis/mazout/internal/customer/domain"
	orderdomain "github.com/smallbiznis/mazout/internal/order/domain"
	pricingdomain "github.com/smallbiznis/mazout/internal/pricing/domain"
	"github.com/smallbiznis/mazout/internal/server/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var Module = fx.Module("http.server",
	session.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.AppVersion})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config) *gin.Engine {
	return NewEngine(cfg)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	sessions    *session.Manager
	catalogSvc  catalogdomain.Service
	pricingSvc  pricingdomain.Service
	orderSvc    orderdomain.Service
	customerSvc customerdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	Sessions    *session.Manager
	CatalogSvc  catalogdomain.Service
	PricingSvc  pricingdomain.Service
	OrderSvc    orderdomain.Service
	CustomerSvc customerdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("http"),
		sessions:    p.Sessions,
		catalogSvc:  p.CatalogSvc,
		pricingSvc:  p.PricingSvc,
		orderSvc:    p.OrderSvc,
		customerSvc: p.CustomerSvc,
	}

	svc.registerShopRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerShopRoutes() {
	r := s.engine

	// Public product pages.
	r.GET("/commande-03", s.OrderPage(catalogdomain.CodeStandard))
	r.GET("/commande-03u", s.OrderPage(catalogdomain.CodeStandardUL))

	// Quote and order flow.
	r.POST("/shop/fuel_price_update", s.FuelPriceUpdate)
	r.POST("/mazout/create_order", s.CreateOrder)
	r.GET("/mazout/signup_with_address", s.SignupForm)
	r.POST("/mazout/signup_with_address", s.SignupAndOrder)

	// Session endpoints.
	r.GET("/web/login", s.LoginForm)
	r.POST("/web/login", s.Login)
	r.POST("/web/logout", s.Logout)

	// Checkout is owned by the surrounding shop; these placeholders
	// keep the redirects resolvable.
	r.GET("/shop/checkout", s.StaticPage("Commande enregistrée", "Votre commande est prête pour le paiement."))
	r.GET("/shop/cart", s.StaticPage("Panier", "Votre commande n'a pas pu être finalisée. Contactez-nous."))
}
