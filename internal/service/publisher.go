package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/queue"
)

// BookingPublisher publishes booking events to RabbitMQ. Each publish dials
// its own connection, so a broker outage never leaves a broken shared
// channel behind. Errors are logged and returned; callers may ignore them.
type BookingPublisher struct {
	url         string
	log         *logrus.Logger
	dialTimeout time.Duration
}

// NewBookingPublisher builds a publisher for the given broker URL.
func NewBookingPublisher(url string, log *logrus.Logger) *BookingPublisher {
	return &BookingPublisher{url: url, log: log, dialTimeout: 2 * time.Second}
}

// NewBookingCreatedEvent builds the event for a stored booking. roomName is
// empty when the booking points at a room that does not exist.
func NewBookingCreatedEvent(b model.Booking, roomName string, now time.Time) queue.BookingCreatedEvent {
	return queue.BookingCreatedEvent{
		BookingID:    b.ID,
		RoomID:       b.RoomID,
		RoomName:     roomName,
		CustomerName: b.CustomerName,
		Date:         b.Date.String(),
		StartTime:    model.FormatTime(b.StartTime),
		EndTime:      model.FormatTime(b.EndTime),
		CreatedAt:    model.FormatTime(now),
	}
}

// PublishBookingCreated publishes ev to the booking.created queue as a
// persistent JSON message.
func (p *BookingPublisher) PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	entry := p.log.WithField("booking_id", ev.BookingID)

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		entry.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		entry.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts; declaring is idempotent.
	if _, err := ch.QueueDeclare(queue.BookingCreatedQueue, true, false, false, false, nil); err != nil {
		entry.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		entry.WithError(err).Warn("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.BookingCreatedQueue, false, false, pub); err != nil {
		entry.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	entry.Debug("rabbitmq: booking event published")
	return nil
}
