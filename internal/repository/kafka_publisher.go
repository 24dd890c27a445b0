package repository

import (
	"context"

	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
	pkgkafka "marketcycle/pkg/kafka"
)

// KafkaResultPublisher pushes each assembled result to a topic so downstream
// presentation layers can react to zone changes without polling.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	key      string
}

// NewKafkaResultPublisher creates a publisher. key partitions all results of
// one metric onto one partition, preserving their order.
func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic, key string) drepo.ResultPublisher {
	if key == "" {
		key = "valuation"
	}
	return &KafkaResultPublisher{producer: producer, topic: topic, key: key}
}

func (p *KafkaResultPublisher) Publish(ctx context.Context, res *models.EngineResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(p.key), res)
}

func (p *KafkaResultPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
