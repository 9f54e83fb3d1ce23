package iwdscan

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dogeorg/iwdscan/pkg/iwd"
)

const (
	DefaultBus     = "system"
	DefaultUnit    = "iwd.service"
	DefaultTimeout = 10 * time.Second
)

type Config struct {
	// Bus is "system", "session" or a D-Bus address.
	Bus         string        `yaml:"bus"`
	Service     string        `yaml:"service"`
	Unit        string        `yaml:"unit"`
	Timeout     time.Duration `yaml:"timeout"`
	SkipInvalid bool          `yaml:"skipInvalid"`
	Verbose     bool          `yaml:"verbose"`
}

func DefaultConfig() Config {
	return Config{
		Bus:     DefaultBus,
		Service: iwd.Service,
		Unit:    DefaultUnit,
		Timeout: DefaultTimeout,
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path yields the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

func (c Config) Validate() error {
	if c.Bus == "" {
		return errors.New("bus must not be empty")
	}
	if c.Service == "" {
		return errors.New("service must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

func (c Config) ClientOptions() iwd.Options {
	return iwd.Options{
		Bus:     c.Bus,
		Service: c.Service,
		Timeout: c.Timeout,
	}
}
