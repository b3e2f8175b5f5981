package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

type Config struct {
	HTTPPort      string `mapstructure:"HTTP_PORT"`
	CatalogSource string `mapstructure:"CATALOG_SOURCE"`

	StorageDriver  string        `mapstructure:"STORAGE_DRIVER"`
	SQLitePath     string        `mapstructure:"SQLITE_PATH"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int           `mapstructure:"REDIS_DB"`
	RedisKeyPrefix string        `mapstructure:"REDIS_KEY_PREFIX"`
	RedisTTL       time.Duration `mapstructure:"REDIS_TTL"`
	MongoURI       string        `mapstructure:"MONGO_URI"`
	MongoDBName    string        `mapstructure:"MONGO_DB_NAME"`

	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_TOPIC"`

	DeliveryFee     int64   `mapstructure:"DELIVERY_FEE"`
	SizeMultiplierS float64 `mapstructure:"SIZE_MULTIPLIER_S"`
	SizeMultiplierM float64 `mapstructure:"SIZE_MULTIPLIER_M"`
	SizeMultiplierL float64 `mapstructure:"SIZE_MULTIPLIER_L"`

	PaymentStatusDelay time.Duration `mapstructure:"PAYMENT_STATUS_DELAY"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"HTTP_PORT":            "8080",
	"CATALOG_SOURCE":       "data/menu.json",
	"STORAGE_DRIVER":       DriverSQLite,
	"SQLITE_PATH":          "storefront.db",
	"REDIS_ADDR":           "localhost:6379",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"REDIS_KEY_PREFIX":     "storefront",
	"REDIS_TTL":            "0s",
	"MONGO_URI":            "mongodb://localhost:27017",
	"MONGO_DB_NAME":        "storefront",
	"KAFKA_BROKERS":        []string{},
	"KAFKA_TOPIC":          "coffee-orders",
	"DELIVERY_FEE":         30,
	"SIZE_MULTIPLIER_S":    1.0,
	"SIZE_MULTIPLIER_M":    1.2,
	"SIZE_MULTIPLIER_L":    1.4,
	"PAYMENT_STATUS_DELAY": "3s",
	"REQUEST_TIMEOUT":      "30s",
	"SHUTDOWN_TIMEOUT":     "10s",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
}

// Load reads defaults, then the optional file named by CONFIG_FILE, then the
// environment. Later sources win.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.KafkaBrokers = splitList(cfg.KafkaBrokers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverRedis, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q is not one of memory, sqlite, redis, mongo", c.StorageDriver))
	}
	if c.DeliveryFee < 0 {
		errs = append(errs, errors.New("DELIVERY_FEE must not be negative"))
	}
	if c.SizeMultiplierS <= 0 || c.SizeMultiplierM <= 0 || c.SizeMultiplierL <= 0 {
		errs = append(errs, errors.New("size multipliers must be positive"))
	}
	if c.RedisTTL < 0 {
		errs = append(errs, errors.New("REDIS_TTL must not be negative"))
	}
	if c.CatalogSource == "" {
		errs = append(errs, errors.New("CATALOG_SOURCE is required"))
	}
	return errors.Join(errs...)
}

// SizeMultipliers returns the configured price factor per cup size.
func (c *Config) SizeMultipliers() map[string]float64 {
	return map[string]float64{
		"S": c.SizeMultiplierS,
		"M": c.SizeMultiplierM,
		"L": c.SizeMultiplierL,
	}
}

// splitList accepts both repeated values and a single comma separated value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
