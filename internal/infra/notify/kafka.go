package notify

import (
	"context"
	"log/slog"

	"order-core/internal/domain/outbox"
	"order-core/internal/pkg/config"
	"order-core/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaNotifier struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

func NewKafkaWriter(cfg config.NotifyConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaNotifier(w messageWriter, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: w, topic: topic, logger: logger}
}

func (n *KafkaNotifier) Notify(ctx context.Context, p outbox.NotificationPayload) error {
	m, err := newMessage(p)
	if err != nil {
		return err
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.Key),
		Value: m.Body,
		Time:  p.At,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(m.EventType)},
			{Key: "content_type", Value: []byte(contentType)},
		},
	})
	if err != nil {
		return errs.Wrapf(err, "publish %s for order %s to %s", m.EventType, p.OrderID, n.topic)
	}
	n.logger.DebugContext(ctx, "notification published", "order_id", m.Key, "event_type", m.EventType, "topic", n.topic)
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
