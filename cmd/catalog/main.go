// Package main runs the catalog service: the product REST API, the read-only gRPC catalog and the pprof server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/abgdnv/superstore/internal/app"
	"github.com/abgdnv/superstore/internal/config"
	"github.com/abgdnv/superstore/internal/customer"
	"github.com/abgdnv/superstore/internal/identity"
	"github.com/abgdnv/superstore/pkg/auth"
	"github.com/abgdnv/superstore/pkg/bootstrap"
	"github.com/abgdnv/superstore/pkg/config/configloader"
	"github.com/abgdnv/superstore/pkg/messaging"
	"github.com/abgdnv/superstore/pkg/nats"
	"github.com/abgdnv/superstore/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const (
	serviceName = "catalog"
	meterName   = "github.com/abgdnv/superstore/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run initializes the application, connects to storage and starts the HTTP, gRPC and pprof servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level, identity.LogAttrs)
	slog.SetDefault(logger)

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(ctx, serviceName, cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("failed to create tracer provider: %w", err)
		}
		// gracefully shutdown tracer provider
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down tracer provider")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shutdown tracer provider: %w", err)
			}
			return nil
		})
	}

	backends, err := app.NewBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backends.Close()

	components := app.Components{
		Products:     backends.Products,
		Customers:    backends.Customers,
		Hasher:       customer.NewBcryptHasher(0),
		HealthChecks: backends.Checks,
	}

	if cfg.Seed.Enabled {
		created, err := customer.Seed(ctx, components.Customers, components.Hasher, cfg.Seed.Name, cfg.Seed.Password)
		if err != nil {
			return fmt.Errorf("failed to seed customer: %w", err)
		}
		logger.Info("Customer seeding finished", slog.String("name", cfg.Seed.Name), slog.Bool("created", created))
	}

	if cfg.IdP.Enabled {
		startupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		verifier, err := auth.NewJWTVerifier(startupCtx, cfg.IdP)
		if err != nil {
			return fmt.Errorf("failed to create JWT verifier: %w", err)
		}
		components.Verifier = verifier
	}

	if cfg.NATS.Enabled {
		natsConn, err := nats.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
		if err != nil {
			return err
		}
		defer natsConn.Close()
		js, err := nats.NewJetStreamContext(natsConn)
		if err != nil {
			return fmt.Errorf("failed to get JetStream context: %w", err)
		}
		if _, err := nats.EnsureStream(ctx, js, cfg.NATS.Stream, messaging.ProductsSubjects); err != nil {
			return err
		}
		components.Publisher = nats.NewNatsPublisher(js)
		components.HealthChecks["nats"] = func(context.Context) error {
			if !natsConn.IsConnected() {
				return fmt.Errorf("nats connection status: %s", natsConn.Status())
			}
			return nil
		}
		logger.Info("Product events are published to NATS", slog.String("stream", cfg.NATS.Stream))
	}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		meterProvider, err := telemetry.NewMeterProvider(serviceName, registry)
		if err != nil {
			return err
		}
		defer func() {
			if err := meterProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Failed to shutdown meter provider", slog.Any("error", err))
			}
		}()
		components.Meter = meterProvider.Meter(meterName)
		components.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		components.MetricsPath = cfg.Metrics.Path
	}

	httpServer, pprofServer, grpcServer, err := setupServers(components, logger, cfg)
	if err != nil {
		return err
	}

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Start the gRPC server
	g.Go(func() error {
		grpcAddr := ":" + cfg.GRPC.Port
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC port: %w", err)
		}
		logger.Info("gRPC server listening", slog.String("addr", grpcAddr))
		return grpcServer.Serve(lis)
	})
	// gracefully shutdown gRPC server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down gRPC server...")
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
			logger.Info("gRPC server stopped gracefully.")
			return nil
		case <-time.After(cfg.Shutdown.Timeout):
			logger.Warn("gRPC server graceful stop timed out. Forcing stop.")
			grpcServer.Stop()
			return fmt.Errorf("grpc server graceful stop timed out")
		}
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// setupServers initializes the HTTP, pprof, and gRPC servers from the assembled components.
func setupServers(components app.Components, logger *slog.Logger, cfg *config.Config) (*http.Server, *http.Server, *grpc.Server, error) {
	deps, err := app.SetupDependencies(components, cfg.Resilience.CircuitBreaker, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to set up dependencies: %w", err)
	}
	httpServer := app.SetupHttpServer(deps, cfg)
	grpcServer := app.SetupGrpcServer(deps, cfg.GRPC.ReflectionEnabled)
	pprofServer := &http.Server{
		Addr: cfg.PProf.Addr,
	}
	return httpServer, pprofServer, grpcServer, nil
}
