package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Cron   CronConfig   `mapstructure:"cron"`

	Ebay          EbayConfig          `mapstructure:"ebay"`
	PriceCharting PriceChartingConfig `mapstructure:"pricecharting"`

	ListingSync     ListingSyncConfig     `mapstructure:"listing_sync"`
	MarketValueSync MarketValueSyncConfig `mapstructure:"market_value_sync"`

	TrackedCard TrackedCardConfig `mapstructure:"tracked_card"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	ListingSync     string `mapstructure:"listing_sync"`
	MarketValueSync string `mapstructure:"market_value_sync"`
}

type EbayConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	TokenURL     string        `mapstructure:"token_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Marketplace  string        `mapstructure:"marketplace"`
	CategoryID   string        `mapstructure:"category_id"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type PriceChartingConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ListingSyncConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	PageLimit int  `mapstructure:"page_limit"`
	MaxPages  int  `mapstructure:"max_pages"`
}

type MarketValueSyncConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// TrackedCardConfig seeds the card registry on first boot when the
// table has no row for the configured search query.
type TrackedCardConfig struct {
	CardName        string `mapstructure:"card_name"`
	SetName         string `mapstructure:"set_name"`
	CardNumber      string `mapstructure:"card_number"`
	SearchQuery     string `mapstructure:"search_query"`
	PriceChartingID string `mapstructure:"pricecharting_id"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.listing_sync", "@every 15m")
	v.SetDefault("cron.market_value_sync", "@every 6h")
	v.SetDefault("ebay.base_url", "https://api.ebay.com/buy/browse/v1")
	v.SetDefault("ebay.token_url", "https://api.ebay.com/identity/v1/oauth2/token")
	v.SetDefault("ebay.marketplace", "EBAY_US")
	v.SetDefault("ebay.category_id", "183454")
	v.SetDefault("ebay.timeout", "15s")
	v.SetDefault("pricecharting.base_url", "https://www.pricecharting.com")
	v.SetDefault("pricecharting.timeout", "15s")
	v.SetDefault("listing_sync.enabled", true)
	v.SetDefault("listing_sync.page_limit", 200)
	v.SetDefault("listing_sync.max_pages", 5)
	v.SetDefault("market_value_sync.enabled", true)
	v.SetDefault("market_value_sync.min_interval", "24h")
	v.SetDefault("tracked_card.card_name", "Lugia")
	v.SetDefault("tracked_card.set_name", "Neo Genesis")
	v.SetDefault("tracked_card.card_number", "9/111")
	v.SetDefault("tracked_card.search_query", "Lugia Neo Genesis 9/111")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every enabled job has the credentials it needs.
// Failures are fatal at startup rather than per-cycle errors.
func (c Config) Validate() error {
	if c.DB.DSN == "" {
		return fmt.Errorf("config: db.dsn is required")
	}
	if c.ListingSync.Enabled {
		if c.Ebay.ClientID == "" || c.Ebay.ClientSecret == "" {
			return fmt.Errorf("config: ebay.client_id and ebay.client_secret are required when listing_sync is enabled")
		}
		if c.TrackedCard.SearchQuery == "" {
			return fmt.Errorf("config: tracked_card.search_query is required when listing_sync is enabled")
		}
	}
	if c.MarketValueSync.Enabled {
		if c.PriceCharting.APIKey == "" {
			return fmt.Errorf("config: pricecharting.api_key is required when market_value_sync is enabled")
		}
		if c.TrackedCard.PriceChartingID == "" {
			return fmt.Errorf("config: tracked_card.pricecharting_id is required when market_value_sync is enabled")
		}
	}
	return nil
}
