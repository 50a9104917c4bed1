package model

import "time"

// Booking is a reservation of one room by one named customer for a
// date/time interval. Rows live in the `bookings` table and reference a
// room by RoomID without a foreign-key constraint, so RoomID may point at a
// room that does not exist.
type Booking struct {
	ID           uint64    `json:"id" db:"id"`                      // bookings.id
	CustomerName string    `json:"customerName" db:"customer_name"` // bookings.customer_name
	Date         Date      `json:"date" db:"booking_date"`          // bookings.booking_date
	StartTime    time.Time `json:"startTime" db:"start_time"`       // bookings.start_time (UTC)
	EndTime      time.Time `json:"endTime" db:"end_time"`           // bookings.end_time (UTC)
	RoomID       uint64    `json:"roomId" db:"room_id"`             // bookings.room_id
}

// RoomRef is the subset of a room embedded in a booking when the room
// reference is resolved.
type RoomRef struct {
	ID        uint64    `json:"id"`
	Seats     int       `json:"seats"`
	Amenities Amenities `json:"amenities"`
	Price     float64   `json:"price"`
}

// BookingWithRoom is a full booking whose roomId is replaced by the room it
// points at. RoomID is nil when the room cannot be resolved.
type BookingWithRoom struct {
	ID           uint64    `json:"id"`
	CustomerName string    `json:"customerName"`
	Date         Date      `json:"date"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	RoomID       *RoomRef  `json:"roomId"`
}
