// Package app contains the application setup for the catalog service.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/superstore/internal/config"
	"github.com/abgdnv/superstore/internal/customer"
	"github.com/abgdnv/superstore/internal/identity"
	"github.com/abgdnv/superstore/internal/product"
	"github.com/abgdnv/superstore/internal/service"
	"github.com/abgdnv/superstore/internal/store"
	catalog "github.com/abgdnv/superstore/internal/transport/grpc"
	"github.com/abgdnv/superstore/internal/transport/rest"
	"github.com/abgdnv/superstore/pkg/auth"
	pconfig "github.com/abgdnv/superstore/pkg/config"
	"github.com/abgdnv/superstore/pkg/messaging"
	"github.com/abgdnv/superstore/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
)

const (
	SecuredProductsPath   = "/store/products"
	UnsecuredProductsPath = "/store/productsUnsecure"
	HealthPath            = "/healthz"
)

// Components are the infrastructure pieces the catalog is assembled from.
// Verifier, Publisher, Meter and MetricsHandler are optional and stay nil when their feature is disabled.
type Components struct {
	Products       store.ProductStore
	Customers      customer.Store
	Hasher         customer.PasswordHasher
	Verifier       auth.Verifier
	Publisher      messaging.Publisher
	Meter          metric.Meter
	MetricsHandler http.Handler
	MetricsPath    string
	HealthChecks   map[string]rest.HealthCheck
}

type Dependencies struct {
	// ProductService has no access restriction. It backs the unsecured routes and the gRPC catalog.
	ProductService service.ProductService
	// SecuredService requires an authenticated principal with the customer role.
	SecuredService service.ProductService
	Authenticator  rest.CustomerAuthenticator
	Provisioner    rest.CreateHook
	Verifier       auth.Verifier
	Validate       *validator.Validate
	HealthChecks   map[string]rest.HealthCheck
	MetricsHandler http.Handler
	MetricsPath    string
	Logger         *slog.Logger
}

// SetupDependencies builds the product service decorator chain on top of c.
// The product store is guarded by a circuit breaker configured by cb.
func SetupDependencies(c Components, cb pconfig.CircuitBreakerConfig, logger *slog.Logger) (*Dependencies, error) {
	validate, err := product.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	var pService service.ProductService = service.NewService(store.NewBreakerStore(c.Products, cb))
	if c.Publisher != nil {
		pService = service.NewPublishingService(pService, c.Publisher, logger)
	}
	if c.Meter != nil {
		metered, err := service.NewMeteredService(pService, c.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create metered service: %w", err)
		}
		pService = metered
	}
	pService = service.NewLoggingService(pService, logger)

	checks := c.HealthChecks
	if checks == nil {
		checks = map[string]rest.HealthCheck{}
	}

	return &Dependencies{
		ProductService: pService,
		SecuredService: service.NewAuthorizingService(pService, identity.RoleCustomer),
		Authenticator:  customer.NewAuthenticator(c.Customers, c.Hasher),
		Provisioner:    customer.NewProvisioner(c.Customers, identity.ContextPort{}, logger),
		Verifier:       c.Verifier,
		Validate:       validate,
		HealthChecks:   checks,
		MetricsHandler: c.MetricsHandler,
		MetricsPath:    c.MetricsPath,
		Logger:         logger,
	}, nil
}

// SetupHttpHandler initializes the HTTP routes for the catalog service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return otelhttp.NewHandler(mux, "catalog")
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	mux.Route(SecuredProductsPath, func(r chi.Router) {
		r.Use(rest.Authenticate(deps.Authenticator, deps.Verifier, deps.Logger))
		rest.NewHandler(deps.SecuredService, deps.Validate, deps.Provisioner, deps.Logger).RegisterRoutes(r)
	})
	mux.Route(UnsecuredProductsPath, rest.NewHandler(deps.ProductService, deps.Validate, nil, deps.Logger).RegisterRoutes)

	mux.Method(http.MethodGet, HealthPath, rest.NewHealthHandler(deps.HealthChecks, healthTimeout, deps.Logger))
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, deps.MetricsPath, deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer initializes the gRPC server exposing the read-only catalog.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	catalogServer := catalog.NewServer(deps.ProductService, deps.Logger)
	return server.NewGRPCServer(deps.Logger, reflectionEnabled, catalogServer.Register)
}
