// Package config holds the catalog service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/superstore/pkg/config"
	"github.com/abgdnv/superstore/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Storage    config.StorageConfig    `koanf:"storage"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Mongo      config.MongoConfig      `koanf:"mongo"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Metrics    config.MetricsConfig    `koanf:"metrics"`
	IdP        config.IdP              `koanf:"idp"`
	NATS       config.NATSConfig       `koanf:"nats"`
	Seed       config.SeedConfig       `koanf:"seed"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))

	b.WriteString("\n--- gRPC Configuration ---\n")
	b.WriteString(fmt.Sprintf("  grpc.port: %s\n", c.GRPC.Port))
	b.WriteString(fmt.Sprintf("  grpc.reflection_enabled: %t\n", c.GRPC.ReflectionEnabled))

	b.WriteString("\n--- Storage Configuration ---\n")
	b.WriteString(fmt.Sprintf("  storage.driver: %s\n", c.Storage.Driver))
	b.WriteString(fmt.Sprintf("  database.url: %s\n", maskURL(c.Database.URL)))
	b.WriteString(fmt.Sprintf("  database.connect.timeout: %s\n", c.Database.Timeout))
	b.WriteString(fmt.Sprintf("  database.migrate: %t\n", c.Database.Migrate))
	b.WriteString(fmt.Sprintf("  mongo.uri: %s\n", maskURL(c.Mongo.URI)))
	b.WriteString(fmt.Sprintf("  mongo.database: %s\n", c.Mongo.Database))
	b.WriteString(fmt.Sprintf("  mongo.timeout: %s\n", c.Mongo.Timeout))
	b.WriteString(c.Resilience.String())

	b.WriteString("\n--- Security ---\n")
	b.WriteString(fmt.Sprintf("  idp.enabled: %t\n", c.IdP.Enabled))
	b.WriteString(fmt.Sprintf("  idp.jwksurl: %s\n", c.IdP.JwksURL))
	b.WriteString(fmt.Sprintf("  idp.issuer: %s\n", c.IdP.Issuer))
	b.WriteString(fmt.Sprintf("  seed.enabled: %t\n", c.Seed.Enabled))
	b.WriteString(fmt.Sprintf("  seed.name: %s\n", c.Seed.Name))

	b.WriteString(c.NATS.String())
	b.WriteString(c.Telemetry.String())

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  metrics.enabled: %t\n", c.Metrics.Enabled))
	b.WriteString(fmt.Sprintf("  metrics.path: %s\n", c.Metrics.Path))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}

// Validate checks if the configuration values are valid.
// Backend sections are only checked for the selected storage driver.
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.GRPC,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.Storage,
		&c.Resilience,
		&c.Telemetry,
		&c.Metrics,
		&c.IdP,
		&c.NATS,
		&c.Seed,
	}
	switch c.Storage.Driver {
	case config.StoragePostgres:
		validators = append(validators, &c.Database)
	case config.StorageMongo:
		validators = append(validators, &c.Mongo)
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
