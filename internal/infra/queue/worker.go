package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AlertSender delivers hot-lead alerts to the sales-ops channel.
type AlertSender interface {
	SendHotLeadAlert(phoneNumber, projectName string, distinctMarketers int) error
}

// Worker consumes lead events. Hot-lead events trigger an alert; everything
// else is acknowledged after logging. Malformed messages are rejected to the
// DLQ without requeue.
type Worker struct {
	Channel *amqp.Channel
	Alerts  AlertSender
}

func NewWorker(ch *amqp.Channel, alerts AlertSender) *Worker {
	return &Worker{Channel: ch, Alerts: alerts}
}

func (w *Worker) Start(queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	for d := range msgs {
		var event LeadEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			zap.L().Warn("rejecting malformed lead event", zap.Error(err))
			d.Nack(false, false)
			continue
		}

		if err := w.handle(event); err != nil {
			zap.L().Error("lead event handling failed",
				zap.String("type", event.Type),
				zap.String("submission_id", event.SubmissionID),
				zap.Error(err))
			d.Nack(false, false)
			continue
		}

		d.Ack(false)
	}

	return nil
}

func (w *Worker) handle(event LeadEvent) error {
	switch event.Type {
	case EventLeadHot:
		if w.Alerts == nil {
			return nil
		}
		return w.Alerts.SendHotLeadAlert(event.PhoneNumber, event.ProjectName, event.DistinctMarketers)
	default:
		zap.L().Debug("lead event received",
			zap.String("type", event.Type),
			zap.String("submission_id", event.SubmissionID))
		return nil
	}
}
