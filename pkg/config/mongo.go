package config

import (
	"fmt"
	"strings"
	"time"
)

type MongoConfig struct {
	URI      string        `koanf:"uri"`
	Database string        `koanf:"database"`
	Timeout  time.Duration `koanf:"timeout"`
}

func (c *MongoConfig) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("MongoDB URI is not configured")
	}
	if !strings.HasPrefix(c.URI, "mongodb://") && !strings.HasPrefix(c.URI, "mongodb+srv://") {
		return fmt.Errorf("MongoDB URI must start with 'mongodb://' or 'mongodb+srv://'")
	}
	if c.Database == "" {
		return fmt.Errorf("MongoDB database is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("MongoDB connect timeout is not configured")
	}
	return nil
}
