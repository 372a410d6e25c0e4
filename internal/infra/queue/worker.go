package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/renoxbert/leadmarket/internal/entity"
	"github.com/renoxbert/leadmarket/internal/infra/http/middleware"
)

// MailSender is the slice of the SMTP sender the worker drives.
type MailSender interface {
	SendNewLeadAlert(to, name, leadTitle, category, city string) error
	SendClaimConfirmation(to, name, leadTitle string) error
	SendOwnerNotice(to, leadTitle, contractorName string) error
	SendWelcome(to, name, tierName string) error
}

type ContractorDirectory interface {
	FindByID(ctx context.Context, id string) (*entity.Contractor, error)
	ListAll(ctx context.Context) ([]entity.Contractor, error)
}

// Worker consumes notification events and turns them into email. Delivery is
// best-effort end to end: a lead is created or claimed whether or not anything
// here succeeds.
type Worker struct {
	Channel     *amqp.Channel
	Mailer      MailSender
	Contractors ContractorDirectory
	OwnerEmail  string
}

func NewWorker(ch *amqp.Channel, mailer MailSender, contractors ContractorDirectory, ownerEmail string) *Worker {
	return &Worker{
		Channel:     ch,
		Mailer:      mailer,
		Contractors: contractors,
		OwnerEmail:  ownerEmail,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event NotificationEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Printf("[WORKER] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it lands in the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] processing %s (lead=%s contractor=%s)", event.Event, event.LeadID, event.ContractorID)

			if err := w.processEvent(context.Background(), event); err != nil {
				log.Printf("[WORKER] delivery failed for %s: %s", event.Event, err)
				middleware.RecordNotificationError(event.Event)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Notification worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processEvent(ctx context.Context, event NotificationEvent) error {
	switch event.Event {
	case EventLeadPublished:
		return w.broadcastNewLead(ctx, event)

	case EventLeadClaimed:
		contractor, err := w.Contractors.FindByID(ctx, event.ContractorID)
		if err != nil {
			return err
		}
		if err := w.Mailer.SendClaimConfirmation(contractor.Email, contractor.Name, event.LeadTitle); err != nil {
			log.Printf("[WORKER] claim confirmation to %s failed: %v", contractor.Email, err)
			middleware.RecordNotificationError(event.Event)
		}
		if err := w.Mailer.SendOwnerNotice(w.OwnerEmail, event.LeadTitle, contractor.Name); err != nil {
			log.Printf("[WORKER] owner notice failed: %v", err)
			middleware.RecordNotificationError(event.Event)
		}
		return nil

	case EventSubscriptionActivated:
		contractor, err := w.Contractors.FindByID(ctx, event.ContractorID)
		if err != nil {
			return err
		}
		return w.Mailer.SendWelcome(contractor.Email, contractor.Name, event.TierName)

	default:
		log.Printf("[WORKER] unknown event %q, acking to drain", event.Event)
		return nil
	}
}

// broadcastNewLead fans the alert out to every contractor. Per-recipient
// failures are logged and skipped so one bad mailbox never blocks the rest.
func (w *Worker) broadcastNewLead(ctx context.Context, event NotificationEvent) error {
	contractors, err := w.Contractors.ListAll(ctx)
	if err != nil {
		return err
	}

	for _, c := range contractors {
		if err := w.Mailer.SendNewLeadAlert(c.Email, c.Name, event.LeadTitle, event.Category, event.City); err != nil {
			log.Printf("[WORKER] new-lead alert to %s failed: %v", c.Email, err)
			middleware.RecordNotificationError(event.Event)
		}
	}
	return nil
}
