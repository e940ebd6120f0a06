package kafka

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultTopic receives health snapshots unless WithTopic says otherwise.
const DefaultTopic = "chainhealth.scores"

// ProducerOption configures a Producer.
type ProducerOption func(*producerConfig)

type producerConfig struct {
	brokers      []string
	topic        string
	requiredAcks int
	compression  string
	maxAttempts  int
	writeTimeout time.Duration
	readTimeout  time.Duration
	batchTimeout time.Duration
	registerer   prometheus.Registerer
}

func defaultProducerConfig() *producerConfig {
	return &producerConfig{
		topic:        DefaultTopic,
		requiredAcks: -1,
		compression:  "gzip",
		maxAttempts:  3,
		writeTimeout: 10 * time.Second,
		readTimeout:  10 * time.Second,
		batchTimeout: 10 * time.Millisecond,
		registerer:   prometheus.DefaultRegisterer,
	}
}

func (c *producerConfig) validate() error {
	if len(c.brokers) == 0 {
		return ErrNoBrokers
	}
	if c.topic == "" {
		return errors.New("kafka: topic is required")
	}
	return nil
}

func WithBrokers(brokers []string) ProducerOption {
	return func(c *producerConfig) { c.brokers = brokers }
}

func WithTopic(topic string) ProducerOption {
	return func(c *producerConfig) { c.topic = topic }
}

// WithCompression picks gzip, snappy, lz4 or zstd; anything else disables compression.
func WithCompression(codec string) ProducerOption {
	return func(c *producerConfig) { c.compression = codec }
}

// WithRequiredAcks sets the acknowledgements a write waits for (-1 = all replicas).
func WithRequiredAcks(acks int) ProducerOption {
	return func(c *producerConfig) { c.requiredAcks = acks }
}

// WithMaxAttempts bounds writer retries per batch.
func WithMaxAttempts(n int) ProducerOption {
	return func(c *producerConfig) { c.maxAttempts = n }
}

// WithBatchTimeout caps how long a partial batch waits before flushing.
func WithBatchTimeout(d time.Duration) ProducerOption {
	return func(c *producerConfig) { c.batchTimeout = d }
}

func WithTimeouts(write, read time.Duration) ProducerOption {
	return func(c *producerConfig) {
		c.writeTimeout = write
		c.readTimeout = read
	}
}

// WithRegisterer registers producer metrics on reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) ProducerOption {
	return func(c *producerConfig) { c.registerer = reg }
}
