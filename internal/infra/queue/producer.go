package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadPublished         = "lead.published"
	EventLeadClaimed           = "lead.claimed"
	EventSubscriptionActivated = "subscription.activated"
)

// NotificationEvent is the single payload shape on the notification queue.
// LeadID/LeadTitle are set for lead events, ContractorID for anything addressed
// to one contractor, TierName for subscription events.
type NotificationEvent struct {
	Event        string `json:"event"`
	LeadID       string `json:"lead_id,omitempty"`
	LeadTitle    string `json:"lead_title,omitempty"`
	Category     string `json:"category,omitempty"`
	City         string `json:"city,omitempty"`
	ContractorID string `json:"contractor_id,omitempty"`
	TierName     string `json:"tier_name,omitempty"`
	Message      string `json:"message,omitempty"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) Publish(ctx context.Context, event NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}
