package config

import "fmt"

// SeedConfig describes the customer created at startup when it does not exist yet.
type SeedConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Name     string `koanf:"name"`
	Password string `koanf:"password"`
}

func (c *SeedConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Name == "" {
		return fmt.Errorf("seed customer name is not configured")
	}
	if c.Password == "" {
		return fmt.Errorf("seed customer password is not configured")
	}
	return nil
}
