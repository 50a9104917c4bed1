package model

import "time"

const (
	StatusBooked    = "Booked"
	StatusNotBooked = "Not Booked"
)

// RoomStatus is one row of the room listing. All booking fields are empty
// strings when the room has no booking.
type RoomStatus struct {
	RoomName     string `json:"roomName"`
	BookedStatus string `json:"bookedStatus"`
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// CustomerBooking is one row of the customer listing, one per booking.
type CustomerBooking struct {
	CustomerName string `json:"customerName"`
	RoomName     string `json:"roomName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// FormatTime renders a booking timestamp the way the reports expose it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
