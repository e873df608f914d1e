package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auction-market/internal/metrics"
	"auction-market/utils"

	"github.com/IBM/sarama"
)

// Publisher sends JSON encoded messages to a topic
type Publisher interface {
	PublishJSON(ctx context.Context, topic, key string, value any) (int32, int64, error)
	Close() error
}

// SyncProducer is a Publisher backed by a sarama sync producer
type SyncProducer struct {
	producer sarama.SyncProducer
	metrics  *metrics.Metrics
}

// NewSyncProducer connects an idempotent producer to brokers
func NewSyncProducer(brokers []string, m *metrics.Metrics) (*SyncProducer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers required")
	}

	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewSyncProducerFrom(producer, m), nil
}

// NewProducerConfig returns the sarama configuration used for domain events
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_7_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 250 * time.Millisecond
	return cfg
}

// NewSyncProducerFrom wraps an existing sarama producer
func NewSyncProducerFrom(producer sarama.SyncProducer, m *metrics.Metrics) *SyncProducer {
	return &SyncProducer{producer: producer, metrics: m}
}

// PublishJSON marshals value and sends it to topic, returning partition and offset
func (p *SyncProducer) PublishJSON(ctx context.Context, topic, key string, value any) (int32, int64, error) {
	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	default:
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return 0, 0, fmt.Errorf("marshal kafka payload: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	start := time.Now()
	partition, offset, err := p.producer.SendMessage(msg)
	p.metrics.ObservePublish(topic, err, time.Since(start))
	if err != nil {
		utils.Error("kafka publish failed", map[string]any{"topic": topic, "error": err.Error()})
		return 0, 0, fmt.Errorf("kafka publish failed: %w", err)
	}

	return partition, offset, nil
}

// Close shuts down the underlying producer
func (p *SyncProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
