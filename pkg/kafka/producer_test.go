package kafka

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer(WithRegisterer(prometheus.NewRegistry()))
	assert.ErrorIs(t, err, ErrNoBrokers)
}

func TestNewProducerAppliesOptions(t *testing.T) {
	p, err := NewProducer(
		WithBrokers([]string{"localhost:9092"}),
		WithTopic("scores"),
		WithCompression("zstd"),
		WithRegisterer(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "scores", p.Topic())
	assert.Equal(t, "scores", p.writer.Topic)
	assert.Equal(t, kafka.Zstd, p.writer.Compression)
}

func TestEncode(t *testing.T) {
	b, err := encode(map[string]int{"overall_score": 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_score":4}`, string(b))

	b, err = encode("raw")
	require.NoError(t, err)
	assert.Equal(t, "raw", string(b))

	_, err = encode(func() {})
	assert.Error(t, err)
}
