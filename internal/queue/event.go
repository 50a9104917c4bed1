// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// BookingCreatedQueue is the durable queue booking events are published to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a booking row is stored. It carries
// enough for downstream consumers to log or notify without querying the
// database.
type BookingCreatedEvent struct {
	BookingID    uint64 `json:"booking_id"`
	RoomID       uint64 `json:"room_id"`
	RoomName     string `json:"room_name"` // empty when room_id does not resolve
	CustomerName string `json:"customer_name"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	CreatedAt    string `json:"created_at"`
}
