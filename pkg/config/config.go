package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"ChainHealth/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORSOrigins     []string      `yaml:"cors_origins" default:"[\"*\"]"`
		RateLimit       struct {
			Burst     float64 `yaml:"burst" default:"20" validate:"gte=1"`
			PerSecond float64 `yaml:"per_second" default:"5" validate:"gt=0"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Monitor struct {
		Interval     time.Duration `yaml:"interval" default:"10m" validate:"gte=1000000000"`
		CycleTimeout time.Duration `yaml:"cycle_timeout" default:"1m" validate:"gte=1000000000"`
	} `yaml:"monitor"`
	Providers struct {
		CurrentURL  string        `yaml:"current_url" default:"https://api2.nicehash.com/main/api/v2/public/stats/global/current" validate:"required,url"`
		AverageURL  string        `yaml:"average_url" default:"https://api2.nicehash.com/main/api/v2/public/stats/global/24h" validate:"required,url"`
		NetworkURL  string        `yaml:"network_url" default:"https://api.grinmint.com/v2/networkStats" validate:"required,url"`
		ExchangeURL string        `yaml:"exchange_url" default:"https://api.coingecko.com/api/v3/simple/price?ids=grin&vs_currencies=btc" validate:"required,url"`
		AlgorithmID int           `yaml:"algorithm_id" default:"50" validate:"gte=0"`
		NetworkKey  string        `yaml:"network_key" default:"32" validate:"required"`
		Asset       string        `yaml:"asset" default:"grin" validate:"required"`
		Quote       string        `yaml:"quote" default:"btc" validate:"required"`
		Timeout     time.Duration `yaml:"timeout" default:"15s"`
		CacheTTL    time.Duration `yaml:"cache_ttl" default:"0s"`
	} `yaml:"providers"`
	Reorg struct {
		LogFile string `yaml:"log_file"` // empty: $HOME/.grin/main/grin-server.log
	} `yaml:"reorg"`
	Cache struct {
		Type        string        `yaml:"type" default:"memory" validate:"oneof=memory redis layered"`
		SnapshotTTL time.Duration `yaml:"snapshot_ttl" default:"1h"`
		MemorySize  int           `yaml:"memory_size" default:"1000" validate:"gte=1"`
		Redis       struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"chainhealth"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers" validate:"required_if=Enabled true"`
		Topic        string   `yaml:"topic" default:"chainhealth.scores"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Logging logger.Config `yaml:"logging"`
}

var validate = validator.New()

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file.
// Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path skips the file and starts from defaults.
func LoadWithEnv(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path == "" {
		c, err = Default()
	} else {
		c, err = Load(path)
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("CHAINHEALTH_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("CHAINHEALTH_LOG_FILE"); v != "" {
		c.Reorg.LogFile = v
	}
	if v := os.Getenv("CHAINHEALTH_REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("CHAINHEALTH_REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Monitor.CycleTimeout > c.Monitor.Interval {
		return fmt.Errorf("monitor.cycle_timeout (%s) must not exceed monitor.interval (%s)", c.Monitor.CycleTimeout, c.Monitor.Interval)
	}
	return nil
}
