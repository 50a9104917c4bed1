// Package service holds logic that spans more than one repository: the
// booking reports and event publishing.
package service

import (
	"context"

	"github.com/iliyamo/room-booking/internal/model"
)

// RoomLister is the part of the room store the reports need.
type RoomLister interface {
	ListAll(ctx context.Context) ([]model.Room, error)
}

// BookingReader is the part of the booking store the reports need.
type BookingReader interface {
	ListBySchedule(ctx context.Context) ([]model.Booking, error)
	ListWithRooms(ctx context.Context) ([]model.BookingWithRoom, error)
	ListByCustomer(ctx context.Context, customerName string) ([]model.BookingWithRoom, error)
}

// ReportService builds the read-side booking views.
type ReportService struct {
	rooms    RoomLister
	bookings BookingReader
}

// NewReportService wires the report service to its stores.
func NewReportService(rooms RoomLister, bookings BookingReader) *ReportService {
	return &ReportService{rooms: rooms, bookings: bookings}
}

// RoomStatuses returns one row per room. A room is represented by its
// earliest booking by (date, start time), regardless of the current time.
func (s *ReportService) RoomStatuses(ctx context.Context) ([]model.RoomStatus, error) {
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListBySchedule(ctx)
	if err != nil {
		return nil, err
	}

	// bookings arrive sorted per room, so the first one seen wins
	earliest := make(map[uint64]model.Booking, len(rooms))
	for _, b := range bookings {
		if _, ok := earliest[b.RoomID]; !ok {
			earliest[b.RoomID] = b
		}
	}

	out := make([]model.RoomStatus, 0, len(rooms))
	for _, room := range rooms {
		b, ok := earliest[room.ID]
		if !ok {
			out = append(out, model.RoomStatus{
				RoomName:     room.Name(),
				BookedStatus: model.StatusNotBooked,
			})
			continue
		}
		out = append(out, model.RoomStatus{
			RoomName:     room.Name(),
			BookedStatus: model.StatusBooked,
			CustomerName: b.CustomerName,
			Date:         b.Date.String(),
			StartTime:    model.FormatTime(b.StartTime),
			EndTime:      model.FormatTime(b.EndTime),
		})
	}
	return out, nil
}

// CustomerBookings returns one row per booking with the room display name.
// Bookings pointing at a missing room get an empty room name.
func (s *ReportService) CustomerBookings(ctx context.Context) ([]model.CustomerBooking, error) {
	bookings, err := s.bookings.ListWithRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.CustomerBooking, 0, len(bookings))
	for _, b := range bookings {
		roomName := ""
		if b.RoomID != nil {
			roomName = model.RoomName(b.RoomID.ID)
		}
		out = append(out, model.CustomerBooking{
			CustomerName: b.CustomerName,
			RoomName:     roomName,
			Date:         b.Date.String(),
			StartTime:    model.FormatTime(b.StartTime),
			EndTime:      model.FormatTime(b.EndTime),
		})
	}
	return out, nil
}

// BookingsByCustomer returns the full bookings of one customer with rooms
// resolved. An unknown customer yields an empty, non-nil slice.
func (s *ReportService) BookingsByCustomer(ctx context.Context, customerName string) ([]model.BookingWithRoom, error) {
	out, err := s.bookings.ListByCustomer(ctx, customerName)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.BookingWithRoom{}
	}
	return out, nil
}
