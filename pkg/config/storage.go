package config

import "fmt"

const (
	StorageMemory   = "memory"
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

// StorageConfig selects the backend holding products and customers.
type StorageConfig struct {
	Driver string `koanf:"driver"`
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageMemory, StorageMongo, StoragePostgres:
		return nil
	case "":
		return fmt.Errorf("storage driver is not configured")
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}
