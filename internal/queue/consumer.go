package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
	prefetch       = 50
)

// SnapshotRefresher rebuilds the availability snapshot of one showing.
type SnapshotRefresher interface {
	RefreshSnapshot(ctx context.Context, key entity.ShowingKey) error
}

// Consumer listens for booking events and refreshes the snapshot of the
// showing each event touches.
type Consumer struct {
	url       string
	exchange  string
	queue     string
	refresher SnapshotRefresher
	log       *zap.Logger
}

func NewConsumer(cfg utils.RabbitMQConfig, refresher SnapshotRefresher, log *zap.Logger) *Consumer {
	return &Consumer{
		url:       cfg.URL,
		exchange:  cfg.Exchange,
		queue:     cfg.Queue,
		refresher: refresher,
		log:       log.With(zap.String("component", "consumer")),
	}
}

// Run reconnects with exponential backoff until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := initialBackoff
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Failed to dial broker",
				zap.Error(err),
				zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = initialBackoff

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		c.log.Warn("Set QoS failed", zap.Error(err))
	}

	if err := declareExchange(ch, c.exchange); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	for _, routingKey := range []EventType{EventBookingConfirmed, EventBookingCancelled} {
		if err := ch.QueueBind(c.queue, string(routingKey), c.exchange, false, nil); err != nil {
			return fmt.Errorf("queue bind %s: %w", routingKey, err)
		}
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.log.Info("Consuming booking events", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				c.log.Error("Handle message failed", zap.Error(err))
				// reject without requeue to avoid tight loops
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	var ev BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	key := ev.Key()
	if !key.Complete() {
		return fmt.Errorf("event %s for booking %s has no showing", ev.Type, ev.BookingID)
	}

	if err := c.refresher.RefreshSnapshot(ctx, key); err != nil {
		return fmt.Errorf("refresh snapshot %s: %w", key.String(), err)
	}

	c.log.Debug("Snapshot refreshed",
		zap.String("type", string(ev.Type)),
		zap.String("showing", key.String()),
	)
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
