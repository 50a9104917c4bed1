package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Room is a bookable resource. It corresponds to a row in the `rooms`
// table. Bookings is never stored; it is the derived list of booking ids
// and the create response echoes it empty.
//
// Fields:
//
//	ID        – primary key identifier.
//	Seats     – capacity, always positive.
//	Amenities – ordered list of amenity names.
//	Price     – price of the room.
type Room struct {
	ID        uint64    `json:"id" db:"id"`               // rooms.id
	Seats     int       `json:"seats" db:"seats"`         // rooms.seats
	Amenities Amenities `json:"amenities" db:"amenities"` // rooms.amenities (JSON text)
	Price     float64   `json:"price" db:"price"`         // rooms.price
	Bookings  []uint64  `json:"bookings" db:"-"`
}

// Name is the display name used by the booking reports.
func (r Room) Name() string {
	return RoomName(r.ID)
}

// RoomName formats the display name of the room with the given id.
func RoomName(id uint64) string {
	return fmt.Sprintf("Room %d", id)
}

// Amenities keeps amenity names in insertion order. It is persisted as a
// JSON array so that both MySQL and SQLite can store it in a text column.
type Amenities []string

// Value implements driver.Valuer. A nil list is stored as "[]".
func (a Amenities) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL scans to a nil list.
func (a *Amenities) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("amenities: unsupported source type %T", src)
	}
	if len(raw) == 0 {
		*a = Amenities{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("amenities: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*a = out
	return nil
}

// MarshalJSON renders a nil list as [] rather than null.
func (a Amenities) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}
