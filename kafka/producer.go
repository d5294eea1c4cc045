package kafka

import (
	"context"
	"encoding/json"

	"jewelry-backend/logger"
	"jewelry-backend/services"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type envelope struct {
	Type string `json:"type"`
	services.OrderEvent
}

// Producer publishes order lifecycle events to a single topic, keyed by
// order id so one order's events stay in one partition.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	logger.Log.Info("Kafka producer initialized",
		zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &Producer{writer: w, topic: topic}
}

func (p *Producer) PublishOrderCreated(ctx context.Context, evt services.OrderEvent) error {
	return p.publish(ctx, "order.created", evt)
}

func (p *Producer) PublishOrderSettled(ctx context.Context, evt services.OrderEvent) error {
	return p.publish(ctx, "order.settled", evt)
}

func (p *Producer) publish(ctx context.Context, kind string, evt services.OrderEvent) error {
	data, err := json.Marshal(envelope{Type: kind, OrderEvent: evt})
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(evt.OrderID.String()),
		Value: data,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
