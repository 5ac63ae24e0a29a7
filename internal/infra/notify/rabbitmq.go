package notify

import (
	"context"
	"log/slog"

	"order-core/internal/domain/outbox"
	"order-core/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeType = "topic"

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQNotifier publishes to a topic exchange with routing key order.<status>.
type RabbitMQNotifier struct {
	ch       amqpPublisher
	conn     *amqp.Connection
	exchange string
	logger   *slog.Logger
}

// DialRabbitMQ connects and declares the durable exchange.
func DialRabbitMQ(url, exchange string, logger *slog.Logger) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "connect to rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open rabbitmq channel")
	}
	if err := ch.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, errs.Wrapf(err, "declare exchange %s", exchange)
	}
	n := NewRabbitMQNotifier(ch, exchange, logger)
	n.conn = conn
	return n, nil
}

func NewRabbitMQNotifier(ch amqpPublisher, exchange string, logger *slog.Logger) *RabbitMQNotifier {
	return &RabbitMQNotifier{ch: ch, exchange: exchange, logger: logger}
}

func (n *RabbitMQNotifier) Notify(ctx context.Context, p outbox.NotificationPayload) error {
	m, err := newMessage(p)
	if err != nil {
		return err
	}
	err = n.ch.PublishWithContext(ctx, n.exchange, m.EventType, false, false, amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    outbox.NotificationDedupKey(p.OrderID, p.To),
		Timestamp:    p.At,
		Type:         m.EventType,
		Body:         m.Body,
	})
	if err != nil {
		return errs.Wrapf(err, "publish %s for order %s", m.EventType, p.OrderID)
	}
	n.logger.DebugContext(ctx, "notification published", "order_id", m.Key, "event_type", m.EventType, "exchange", n.exchange)
	return nil
}

func (n *RabbitMQNotifier) Close() error {
	err := n.ch.Close()
	if n.conn != nil {
		if cerr := n.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
