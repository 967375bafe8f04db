package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	for _, brokers := range []string{"", " ", ", ,"} {
		p, err := NewKafkaPublisher(KafkaConfig{Brokers: brokers, Topic: "t"})
		require.NoError(t, err)
		assert.IsType(t, NoopPublisher{}, p)
		assert.NoError(t, p.Publish(context.Background(), []byte("k"), []byte("v")))
	}
}

func TestNewKafkaPublisher_Brokers(t *testing.T) {
	p, err := NewKafkaPublisher(KafkaConfig{Brokers: "a:9092, b:9092", Topic: "geojson.submission.accepted"})
	require.NoError(t, err)

	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "geojson.submission.accepted", kp.writer.Topic)
	assert.NotNil(t, kp.writer.Addr)
	assert.NoError(t, kp.Close())
}

func TestNewKafkaPublisher_NoTopic(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaConfig{Brokers: "a:9092"})
	assert.Error(t, err)
}
