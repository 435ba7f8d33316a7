// Package amqp provides the inbound event transport adapter. It consumes
// NEW_ORDER and ORDER_STATUS_UPDATE messages from the broker's fanout
// exchanges and feeds them to the reconciler command handlers.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// NewOrderExchange carries full order records for freshly created orders.
	NewOrderExchange = "orders.new_order"

	// StatusUpdateExchange carries partial order updates.
	StatusUpdateExchange = "orders.status_update"

	reconnectDelay = 5 * time.Second
)

// Consumer subscribes to the order event exchanges and routes each message to
// the matching reconciler handler. Each station binds its own exclusive
// auto-delete queue to the fanout exchanges, so every station sees every
// event.
//
// A broken connection is retried every five seconds for as long as the
// context lives; between attempts the station degrades to the periodic
// snapshot as its only update source. A poisoned message is logged and
// dropped, never redelivered forever.
type Consumer struct {
	url       string
	newOrders commands.IngestNewOrderCommandHandler
	updates   commands.IngestOrderUpdateCommandHandler
	logger    *slog.Logger
}

// NewConsumer creates a consumer for the given broker URL.
func NewConsumer(
	url string,
	newOrders commands.IngestNewOrderCommandHandler,
	updates commands.IngestOrderUpdateCommandHandler,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{
		url:       url,
		newOrders: newOrders,
		updates:   updates,
		logger:    logger.With("component", "amqp_consumer"),
	}
}

// Run consumes events until the context is cancelled, reconnecting with a
// fixed backoff after any transport failure.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.WarnContext(ctx, "Event transport disconnected, reconnecting",
			"error", err, "delay", reconnectDelay.String())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

// consume holds one connection for its lifetime: declare the exchanges, bind
// one exclusive queue per exchange, and dispatch deliveries until the
// connection breaks or the context ends.
func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial event transport: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose(make(chan *amqp.Error, 1))

	newOrders, err := c.subscribe(ch, NewOrderExchange)
	if err != nil {
		return err
	}
	updates, err := c.subscribe(ch, StatusUpdateExchange)
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "Event transport connected")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case amqpErr := <-closeChan:
			if amqpErr != nil {
				return fmt.Errorf("channel closed: %w", amqpErr)
			}
			return fmt.Errorf("channel closed")

		case msg, ok := <-newOrders:
			if !ok {
				return fmt.Errorf("new-order deliveries closed")
			}
			if err := c.handleNewOrder(ctx, msg.Body); err != nil {
				c.logger.ErrorContext(ctx, "Dropped new-order event", "error", err)
			}

		case msg, ok := <-updates:
			if !ok {
				return fmt.Errorf("status-update deliveries closed")
			}
			if err := c.handleStatusUpdate(ctx, msg.Body); err != nil {
				c.logger.ErrorContext(ctx, "Dropped status-update event", "error", err)
			}
		}
	}
}

// subscribe declares a fanout exchange and binds a fresh exclusive
// auto-delete queue to it.
func (c *Consumer) subscribe(ch *amqp.Channel, exchange string) (<-chan amqp.Delivery, error) {
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue for %s: %w", exchange, err)
	}
	if err = ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue to %s: %w", exchange, err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", exchange, err)
	}
	return deliveries, nil
}

// handleNewOrder parses a NEW_ORDER payload and feeds it to the reconciler.
func (c *Consumer) handleNewOrder(ctx context.Context, body []byte) error {
	var event NewOrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("parse new-order event: %w", err)
	}

	aggregate, err := event.Order.ToDomain()
	if err != nil {
		return fmt.Errorf("map new-order event: %w", err)
	}

	cmd, err := commands.NewIngestNewOrderCommand(aggregate)
	if err != nil {
		return err
	}
	return c.newOrders.Handle(ctx, cmd)
}

// handleStatusUpdate parses an ORDER_STATUS_UPDATE payload and feeds it to
// the reconciler.
func (c *Consumer) handleStatusUpdate(ctx context.Context, body []byte) error {
	var event OrderUpdateEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("parse status-update event: %w", err)
	}

	orderID, err := kernel.NewOrderID(event.OrderID)
	if err != nil {
		return err
	}
	patch, err := event.ToPatch()
	if err != nil {
		return fmt.Errorf("map status-update event: %w", err)
	}

	cmd, err := commands.NewIngestOrderUpdateCommand(orderID, patch)
	if err != nil {
		return err
	}
	return c.updates.Handle(ctx, cmd)
}
