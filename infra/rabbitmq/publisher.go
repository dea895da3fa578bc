package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sampleapi/pkg/events"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

var errNotAcknowledged = errors.New("message was not acknowledged by broker")

// Publisher implements events.Publisher over a single confirm-mode channel.
// Every publish waits on the confirmation bound to its own delivery tag.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	declared map[string]bool
	service  string
}

type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

var _ confirmation = (*amqp.DeferredConfirmation)(nil)

func NewPublisher(url, service string) (*Publisher, error) {
	conn, err := dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.Confirm(false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	zap.L().Info("RabbitMQ publisher connected successfully")

	return &Publisher{
		conn:     conn,
		channel:  channel,
		declared: make(map[string]bool),
		service:  service,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	msg := newPublishing(event, body, headers, p.service)
	routingKey := event.GetRoutingKey()

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	confirm, err := p.send(publishCtx, exchange, routingKey, msg)
	if err != nil {
		return err
	}

	if err := awaitConfirm(publishCtx, confirm); err != nil {
		return err
	}

	zap.L().Info("Event published successfully",
		zap.String("exchange", exchange),
		zap.String("routingKey", routingKey),
		zap.String("event", event.Event),
		zap.String("traceId", headers.TraceID),
	)

	return nil
}

func (p *Publisher) send(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) (confirmation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared[exchange] {
		if err := declareTopicExchange(p.channel, exchange); err != nil {
			return nil, fmt.Errorf("failed to declare exchange: %w", err)
		}
		p.declared[exchange] = true
	}

	dc, err := p.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to publish message: %w", err)
	}
	if dc == nil {
		return nil, errors.New("channel is not in confirm mode")
	}

	return dc, nil
}

func newPublishing(event *events.Event, body []byte, headers events.Headers, service string) amqp.Publishing {
	if headers.Service != "" {
		service = headers.Service
	}

	return amqp.Publishing{
		ContentType:   "application/json",
		Body:          body,
		DeliveryMode:  amqp.Persistent,
		Timestamp:     event.Timestamp,
		CorrelationId: headers.CorrelationID,
		Headers: amqp.Table{
			"x-trace-id":       headers.TraceID,
			"x-correlation-id": headers.CorrelationID,
			"x-service":        service,
		},
	}
}

func awaitConfirm(ctx context.Context, confirm confirmation) error {
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("publish confirmation timeout: %w", err)
	}
	if !acked {
		return errNotAcknowledged
	}
	return nil
}

func (p *Publisher) IsHealthy() bool {
	if p == nil || p.conn == nil || p.channel == nil {
		return false
	}

	return !p.conn.IsClosed() && !p.channel.IsClosed()
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			zap.L().Error("Failed to close channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			zap.L().Error("Failed to close connection", zap.Error(err))
			return err
		}
	}
	zap.L().Info("RabbitMQ publisher closed")
	return nil
}
