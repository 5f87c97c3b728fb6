package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"stonepay_admin/config/values"
)

type BackendConfig struct {
	BaseURL           string  `yaml:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	CookieSecure bool   `yaml:"cookie_secure"`
}

type PersistenceConfig struct {
	// Driver is one of memory, file, postgres, mysql.
	Driver string `yaml:"driver"`
	Dir    string `yaml:"dir"`
}

type CloudinaryConfig struct {
	URL    string `yaml:"url"`
	Folder string `yaml:"folder"`
}

type AppConfig struct {
	Backend     BackendConfig      `yaml:"backend"`
	Server      ServerConfig       `yaml:"server"`
	Persistence PersistenceConfig  `yaml:"persistence"`
	Postgres    PostgresConfig     `yaml:"postgres"`
	MySQL       MySQLConfig        `yaml:"mysql"`
	Cloudinary  CloudinaryConfig   `yaml:"cloudinary"`
	Table       values.TableValues `yaml:"table"`
	Dashboard   values.ChartWindow `yaml:"dashboard"`
}

// LoadConfig reads filename (optional, may be empty), then applies .env and
// environment overrides and fills defaults.
func LoadConfig(filename string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &AppConfig{}
	if filename != "" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filename, err)
		}
	}

	config.applyEnv()
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *AppConfig) applyEnv() {
	c.Backend.BaseURL = getEnv("STONEPAY_API_BASE_URL", c.Backend.BaseURL)
	c.Server.Addr = getEnv("CONSOLE_ADDR", c.Server.Addr)
	c.Persistence.Driver = getEnv("PERSISTENCE_DRIVER", c.Persistence.Driver)
	c.Persistence.Dir = getEnv("PERSISTENCE_DIR", c.Persistence.Dir)
	c.Cloudinary.URL = getEnv("CLOUDINARY_URL", c.Cloudinary.URL)
	c.Postgres.overrideFromEnv()
	c.MySQL.overrideFromEnv()
}

func (c *AppConfig) applyDefaults() {
	if c.Backend.RequestsPerSecond <= 0 {
		c.Backend.RequestsPerSecond = 10
	}
	if c.Backend.Burst <= 0 {
		c.Backend.Burst = 5
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:3000"
	}
	if c.Persistence.Driver == "" {
		c.Persistence.Driver = "file"
	}
	if c.Persistence.Dir == "" {
		c.Persistence.Dir = ".stonepay-admin"
	}
	if len(c.Table.ItemsPerPage) == 0 {
		c.Table.ItemsPerPage = values.DefaultItemsPerPage()
	}
	if c.Dashboard.Days <= 0 {
		c.Dashboard.Days = 7
	}
}

func (c *AppConfig) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url (STONEPAY_API_BASE_URL) is required")
	}
	switch c.Persistence.Driver {
	case "memory", "file", "postgres", "mysql":
	default:
		return fmt.Errorf("unknown persistence driver %q", c.Persistence.Driver)
	}
	for _, n := range c.Table.ItemsPerPage {
		if n <= 0 {
			return fmt.Errorf("table.items_per_page must be positive, got %d", n)
		}
	}
	return nil
}
