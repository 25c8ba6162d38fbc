package events

import (
	"context"

	"astrodesk/pkg/kafka"
	"astrodesk/pkg/logger"
	"astrodesk/pkg/model"
)

const (
	source = "astrodesk"

	TypeBookingCreated = "booking.created"
	TypeInquiryCreated = "inquiry.created"
)

// Publisher emits domain events for downstream consumers (notification
// workers, CRM sync). Publishing failures are logged and swallowed; the HTTP
// request that triggered the event must never fail because of the event bus.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	InquiryCreated(ctx context.Context, inquiry *model.Inquiry)
	Close()
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

// New returns a Kafka-backed publisher, or a no-op one when no brokers are
// configured.
func New(brokers []string, topic string, log *logger.Logger) Publisher {
	if len(brokers) == 0 {
		log.Info("Kafka brokers not configured, domain events disabled")
		return noopPublisher{}
	}

	producer, err := kafka.NewProducer(brokers, topic)
	if err != nil {
		log.Error("Failed to create Kafka producer, domain events disabled", "error", err)
		return noopPublisher{}
	}

	log.Info("Domain event publisher initialized", "topic", topic, "brokers", brokers)
	return &kafkaPublisher{producer: producer, log: log}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCreated, booking.ID, booking)
}

func (p *kafkaPublisher) InquiryCreated(ctx context.Context, inquiry *model.Inquiry) {
	p.publish(ctx, TypeInquiryCreated, inquiry.ID, inquiry)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType, key string, payload any) {
	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish domain event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}

func (p *kafkaPublisher) Close() {
	if err := p.producer.Close(); err != nil {
		p.log.Error("Failed to close Kafka producer", "error", err)
	}
}

type noopPublisher struct{}

func (noopPublisher) BookingCreated(context.Context, *model.Booking) {}
func (noopPublisher) InquiryCreated(context.Context, *model.Inquiry) {}
func (noopPublisher) Close()                                         {}
