package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/room-booking/internal/model"
)

// BookingRepo encapsulates all queries on the bookings table. Rows point at
// rooms by room_id; nothing here enforces that the room exists.
type BookingRepo struct {
	db *sqlx.DB
}

// NewBookingRepo constructs a BookingRepo with the provided DB handle.
func NewBookingRepo(db *sqlx.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = "id, customer_name, booking_date, start_time, end_time, room_id"

// Create inserts a booking and reloads it so the caller sees stored values
// (UTC timestamps, date truncated to the day). There is no overlap check.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (customer_name, booking_date, start_time, end_time, room_id)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.CustomerName, b.Date, b.StartTime.UTC(), b.EndTime.UTC(), b.RoomID)
	if err != nil {
		return storageErr("bookings.create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("bookings.create", err)
	}

	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

// GetByID fetches one booking. It returns ErrBookingNotFound when no row matches.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	var b model.Booking
	if err := r.db.GetContext(ctx, &b, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, storageErr("bookings.get", err)
	}
	normalize(&b)
	return &b, nil
}

// ListBySchedule returns every booking ordered by room, then date, then
// start time. The first row of each room is its earliest booking.
func (r *BookingRepo) ListBySchedule(ctx context.Context) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings ORDER BY room_id, booking_date, start_time, id"
	out := []model.Booking{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, storageErr("bookings.list_schedule", err)
	}
	for i := range out {
		normalize(&out[i])
	}
	return out, nil
}

// bookingRoomRow is a booking left-joined with its room. The room columns
// are NULL when room_id does not resolve.
type bookingRoomRow struct {
	model.Booking
	RoomRef       sql.NullInt64   `db:"room_ref"`
	RoomSeats     sql.NullInt64   `db:"room_seats"`
	RoomAmenities model.Amenities `db:"room_amenities"`
	RoomPrice     sql.NullFloat64 `db:"room_price"`
}

const bookingWithRoomQuery = `SELECT b.id, b.customer_name, b.booking_date, b.start_time, b.end_time, b.room_id,
	       r.id AS room_ref, r.seats AS room_seats, r.amenities AS room_amenities, r.price AS room_price
	FROM bookings b
	LEFT JOIN rooms r ON r.id = b.room_id`

// ListWithRooms returns every booking, in insertion order, joined to its room.
func (r *BookingRepo) ListWithRooms(ctx context.Context) ([]model.BookingWithRoom, error) {
	return r.selectWithRooms(ctx, "bookings.list_with_rooms", bookingWithRoomQuery+" ORDER BY b.id")
}

// ListByCustomer returns the bookings whose customer name matches exactly
// (case-sensitive), joined to their rooms. No match yields an empty slice.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerName string) ([]model.BookingWithRoom, error) {
	return r.selectWithRooms(ctx, "bookings.list_by_customer",
		bookingWithRoomQuery+" WHERE b.customer_name = ? ORDER BY b.id", customerName)
}

func (r *BookingRepo) selectWithRooms(ctx context.Context, op, q string, args ...any) ([]model.BookingWithRoom, error) {
	var rows []bookingRoomRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, storageErr(op, err)
	}
	out := make([]model.BookingWithRoom, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		normalize(&row.Booking)
		item := model.BookingWithRoom{
			ID:           row.ID,
			CustomerName: row.CustomerName,
			Date:         row.Date,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
		}
		if row.RoomRef.Valid {
			amenities := row.RoomAmenities
			if amenities == nil {
				amenities = model.Amenities{}
			}
			item.RoomID = &model.RoomRef{
				ID:        uint64(row.RoomRef.Int64),
				Seats:     int(row.RoomSeats.Int64),
				Amenities: amenities,
				Price:     row.RoomPrice.Float64,
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func normalize(b *model.Booking) {
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
}
