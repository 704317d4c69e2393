package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/inmolista/backend/internal/domain/marketplace"
	"github.com/inmolista/backend/internal/domain/shared/valueobject"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Log         LogConfig
	Marketplace MarketplaceConfig
	Sweep       SweepConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level     string        // debug, info, warn, error
	Format    string        // json, console
	Output    string        // stdout, stderr, or file path
	SlowQuery time.Duration // queries slower than this are logged at warn; 0 disables
}

// MarketplaceConfig holds the business constants of the marketplace. Amounts
// are decimal strings to avoid float drift in config files.
type MarketplaceConfig struct {
	ListingFeeAmount   string
	ListingFeeCurrency string
	ListingDuration    time.Duration
	PaymentWindow      time.Duration
	NewUserWindow      time.Duration
	LandMinTotalPrice  string
	MinPricePerM2      string
	MaxPricePerM2      string
}

// SweepConfig holds the expiry sweeper configuration
type SweepConfig struct {
	Interval  time.Duration
	BatchSize int
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with INMOLISTA_ prefix (e.g., INMOLISTA_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("INMOLISTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:     v.GetString("log.level"),
			Format:    v.GetString("log.format"),
			Output:    v.GetString("log.output"),
			SlowQuery: v.GetDuration("log.slow_query"),
		},
		Marketplace: MarketplaceConfig{
			ListingFeeAmount:   v.GetString("marketplace.listing_fee_amount"),
			ListingFeeCurrency: v.GetString("marketplace.listing_fee_currency"),
			ListingDuration:    v.GetDuration("marketplace.listing_duration"),
			PaymentWindow:      v.GetDuration("marketplace.payment_window"),
			NewUserWindow:      v.GetDuration("marketplace.new_user_window"),
			LandMinTotalPrice:  v.GetString("marketplace.land_min_total_price"),
			MinPricePerM2:      v.GetString("marketplace.min_price_per_m2"),
			MaxPricePerM2:      v.GetString("marketplace.max_price_per_m2"),
		},
		Sweep: SweepConfig{
			Interval:  v.GetDuration("sweep.interval"),
			BatchSize: v.GetInt("sweep.batch_size"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "inmolista-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "inmolista"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Log.SlowQuery == 0 {
		cfg.Log.SlowQuery = 200 * time.Millisecond
	}
	if cfg.Marketplace.ListingFeeAmount == "" {
		cfg.Marketplace.ListingFeeAmount = "19"
	}
	if cfg.Marketplace.ListingFeeCurrency == "" {
		cfg.Marketplace.ListingFeeCurrency = "PEN"
	}
	if cfg.Marketplace.ListingDuration == 0 {
		cfg.Marketplace.ListingDuration = 30 * 24 * time.Hour
	}
	if cfg.Marketplace.PaymentWindow == 0 {
		cfg.Marketplace.PaymentWindow = 24 * time.Hour
	}
	if cfg.Marketplace.NewUserWindow == 0 {
		cfg.Marketplace.NewUserWindow = 7 * 24 * time.Hour
	}
	if cfg.Marketplace.LandMinTotalPrice == "" {
		cfg.Marketplace.LandMinTotalPrice = "10000"
	}
	if cfg.Marketplace.MinPricePerM2 == "" {
		cfg.Marketplace.MinPricePerM2 = "10"
	}
	if cfg.Marketplace.MaxPricePerM2 == "" {
		cfg.Marketplace.MaxPricePerM2 = "50000"
	}
	if cfg.Sweep.Interval == 0 {
		cfg.Sweep.Interval = 15 * time.Minute
	}
	if cfg.Sweep.BatchSize == 0 {
		cfg.Sweep.BatchSize = 200
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	if _, err := c.Marketplace.Domain(); err != nil {
		return err
	}

	if c.Sweep.BatchSize <= 0 {
		return fmt.Errorf("sweep.batch_size must be positive")
	}

	return nil
}

// Domain converts the raw marketplace settings into the domain configuration
func (m *MarketplaceConfig) Domain() (marketplace.Config, error) {
	fee, err := valueobject.NewPriceFromString(m.ListingFeeAmount, valueobject.Currency(m.ListingFeeCurrency))
	if err != nil {
		return marketplace.Config{}, fmt.Errorf("marketplace.listing_fee_amount: %w", err)
	}

	landFloor, err := decimal.NewFromString(m.LandMinTotalPrice)
	if err != nil {
		return marketplace.Config{}, fmt.Errorf("marketplace.land_min_total_price %q is not a valid number", m.LandMinTotalPrice)
	}
	minPerM2, err := decimal.NewFromString(m.MinPricePerM2)
	if err != nil {
		return marketplace.Config{}, fmt.Errorf("marketplace.min_price_per_m2 %q is not a valid number", m.MinPricePerM2)
	}
	maxPerM2, err := decimal.NewFromString(m.MaxPricePerM2)
	if err != nil {
		return marketplace.Config{}, fmt.Errorf("marketplace.max_price_per_m2 %q is not a valid number", m.MaxPricePerM2)
	}
	if maxPerM2.LessThan(minPerM2) {
		return marketplace.Config{}, fmt.Errorf("marketplace.max_price_per_m2 cannot be below marketplace.min_price_per_m2")
	}

	return marketplace.Config{
		ListingFee:        fee,
		ListingDuration:   m.ListingDuration,
		PaymentWindow:     m.PaymentWindow,
		NewUserWindow:     m.NewUserWindow,
		RegionBounds:      valueobject.PeruBounds,
		LandMinTotalPrice: landFloor,
		MinPricePerM2:     minPerM2,
		MaxPricePerM2:     maxPerM2,
	}, nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
