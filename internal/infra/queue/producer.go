package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Lead event types published on the ex.leads exchange.
const (
	EventSubmissionCreated   = "submission.created"
	EventLeadHot             = "lead.hot"
	EventOwnershipOverridden = "ownership.overridden"
)

// LeadEvent is the wire payload for lead lifecycle events.
type LeadEvent struct {
	Type              string    `json:"type"`
	SubmissionID      string    `json:"submission_id"`
	UserID            string    `json:"user_id,omitempty"`
	PhoneNumber       string    `json:"phone_number"`
	ProjectInterestID string    `json:"project_interest_id"`
	ProjectName       string    `json:"project_name,omitempty"`
	Status            string    `json:"status,omitempty"`
	Tier              int       `json:"tier,omitempty"`
	NewOwnerID        string    `json:"new_owner_id,omitempty"`
	DistinctMarketers int       `json:"distinct_marketers,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishLeadEvent(ctx context.Context, event LeadEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}

	return nil
}
