// Package events publishes activity records to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"donerci/internal/models"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Publisher delivers activity records after they have been stored.
type Publisher interface {
	PublishActivity(ctx context.Context, activity *models.Activity) error
	Close() error
}

// NopPublisher drops everything. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishActivity(context.Context, *models.Activity) error { return nil }
func (NopPublisher) Close() error                                          { return nil }

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewKafkaPublisher connects a synchronous producer to brokers, a
// comma-separated list.
func NewKafkaPublisher(brokers, topic string, logger *zap.Logger) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true // Must be true for SyncProducer
	cfg.Net.DialTimeout = 10 * time.Second

	brokerList := strings.Split(brokers, ",")
	producer, err := sarama.NewSyncProducer(brokerList, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info("kafka producer created", zap.Strings("brokers", brokerList), zap.String("topic", topic))
	return NewKafkaPublisherWithProducer(producer, topic, logger), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

type activityMessage struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Actor     string    `json:"user"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func (p *KafkaPublisher) PublishActivity(ctx context.Context, activity *models.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(activityMessage{
		ID:        activity.ID,
		Type:      activity.Type,
		Actor:     activity.Actor,
		Details:   activity.Details,
		Timestamp: activity.CreatedAt,
	})
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(activity.Type),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		p.logger.Error("failed to publish activity", zap.String("topic", p.topic), zap.Error(err))
		return err
	}
	p.logger.Debug("activity published",
		zap.String("topic", p.topic), zap.Int32("partition", partition), zap.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
