package cache

import (
	"net"
	"strconv"
	"time"
)

// RedisOption configures a RedisCache.
type RedisOption func(*RedisConfig)

// RedisConfig holds the connection settings of a RedisCache.
type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	PoolSize    int
	PingTimeout time.Duration
	// Prefix namespaces every key; empty stores keys as given.
	Prefix string
}

func defaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:        "localhost",
		Port:        6379,
		PoolSize:    10,
		PingTimeout: 5 * time.Second,
		Prefix:      "chainhealth",
	}
}

// Addr returns host:port.
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// WithRedisAddr sets the server host and port.
func WithRedisAddr(host string, port int) RedisOption {
	return func(c *RedisConfig) {
		c.Host = host
		c.Port = port
	}
}

// WithRedisAuth selects the password and logical database.
func WithRedisAuth(password string, db int) RedisOption {
	return func(c *RedisConfig) {
		c.Password = password
		c.DB = db
	}
}

// WithRedisPoolSize bounds the connection pool.
func WithRedisPoolSize(n int) RedisOption {
	return func(c *RedisConfig) {
		c.PoolSize = n
	}
}

// WithRedisPingTimeout bounds the startup ping.
func WithRedisPingTimeout(d time.Duration) RedisOption {
	return func(c *RedisConfig) {
		c.PingTimeout = d
	}
}

func WithRedisPrefix(prefix string) RedisOption {
	return func(c *RedisConfig) {
		c.Prefix = prefix
	}
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	maxSize         int
	cleanupInterval time.Duration
}

// WithMemoryMaxSize caps the number of entries; the least recently used
// entry is evicted on overflow.
func WithMemoryMaxSize(size int) MemoryOption {
	return func(c *memoryConfig) {
		c.maxSize = size
	}
}

// WithMemoryCleanup sets how often expired entries are swept.
func WithMemoryCleanup(interval time.Duration) MemoryOption {
	return func(c *memoryConfig) {
		c.cleanupInterval = interval
	}
}
