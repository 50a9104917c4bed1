package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/database"
	"github.com/iliyamo/room-booking/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), config.DBConfig{Driver: config.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func at(day, clock string) time.Time {
	t, err := time.Parse(time.RFC3339, day+"T"+clock+"Z")
	if err != nil {
		panic(err)
	}
	return t
}

func booking(name, day, start, end string, roomID uint64) *model.Booking {
	d, err := model.ParseDate(day)
	if err != nil {
		panic(err)
	}
	return &model.Booking{
		CustomerName: name,
		Date:         d,
		StartTime:    at(day, start),
		EndTime:      at(day, end),
		RoomID:       roomID,
	}
}

func TestRoomCreateEchoesStoredRoom(t *testing.T) {
	ctx := context.Background()
	rooms := NewRoomRepo(newTestDB(t))

	room := &model.Room{Seats: 4, Amenities: model.Amenities{"projector", "whiteboard"}, Price: 50}
	require.NoError(t, rooms.Create(ctx, room))

	assert.NotZero(t, room.ID)
	assert.Equal(t, 4, room.Seats)
	assert.Equal(t, model.Amenities{"projector", "whiteboard"}, room.Amenities)
	assert.Equal(t, 50.0, room.Price)
	assert.Equal(t, []uint64{}, room.Bookings)

	got, err := rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.Amenities, got.Amenities)
}

func TestRoomCreateWithoutAmenitiesStoresEmptyList(t *testing.T) {
	ctx := context.Background()
	rooms := NewRoomRepo(newTestDB(t))

	room := &model.Room{Seats: 2, Price: 10}
	require.NoError(t, rooms.Create(ctx, room))
	assert.NotNil(t, room.Amenities)
	assert.Empty(t, room.Amenities)
}

func TestRoomGetByIDAndExists(t *testing.T) {
	ctx := context.Background()
	rooms := NewRoomRepo(newTestDB(t))

	_, err := rooms.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	ok, err := rooms.Exists(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)

	room := &model.Room{Seats: 3, Price: 1}
	require.NoError(t, rooms.Create(ctx, room))
	ok, err = rooms.Exists(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRoomListAllOrderedByID(t *testing.T) {
	ctx := context.Background()
	rooms := NewRoomRepo(newTestDB(t))

	list, err := rooms.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, seats := range []int{8, 2, 5} {
		require.NoError(t, rooms.Create(ctx, &model.Room{Seats: seats, Price: 1}))
	}
	list, err = rooms.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{8, 2, 5}, []int{list[0].Seats, list[1].Seats, list[2].Seats})
	assert.Less(t, list[0].ID, list[1].ID)
}

func TestBookingCreateNormalizesTimes(t *testing.T) {
	ctx := context.Background()
	bookings := NewBookingRepo(newTestDB(t))

	loc := time.FixedZone("UTC+2", 2*3600)
	b := &model.Booking{
		CustomerName: "Alice",
		Date:         model.NewDate(at("2024-01-10", "00:00:00")),
		StartTime:    time.Date(2024, 1, 10, 11, 0, 0, 0, loc),
		EndTime:      time.Date(2024, 1, 10, 12, 0, 0, 0, loc),
		RoomID:       1,
	}
	require.NoError(t, bookings.Create(ctx, b))

	assert.NotZero(t, b.ID)
	assert.Equal(t, "Alice", b.CustomerName)
	assert.Equal(t, "2024-01-10", b.Date.String())
	assert.Equal(t, "2024-01-10T09:00:00Z", b.StartTime.Format(time.RFC3339))
	assert.Equal(t, "2024-01-10T10:00:00Z", b.EndTime.Format(time.RFC3339))
	assert.Equal(t, uint64(1), b.RoomID)
}

func TestBookingCreateAllowsDoubleBooking(t *testing.T) {
	ctx := context.Background()
	bookings := NewBookingRepo(newTestDB(t))

	first := booking("Alice", "2024-01-10", "09:00:00", "10:00:00", 1)
	second := booking("Bob", "2024-01-10", "09:00:00", "10:00:00", 1)
	require.NoError(t, bookings.Create(ctx, first))
	require.NoError(t, bookings.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBookingListByScheduleOrdering(t *testing.T) {
	ctx := context.Background()
	bookings := NewBookingRepo(newTestDB(t))

	require.NoError(t, bookings.Create(ctx, booking("late", "2024-01-12", "09:00:00", "10:00:00", 1)))
	require.NoError(t, bookings.Create(ctx, booking("other-room", "2024-01-01", "09:00:00", "10:00:00", 2)))
	require.NoError(t, bookings.Create(ctx, booking("early-afternoon", "2024-01-10", "14:00:00", "15:00:00", 1)))
	require.NoError(t, bookings.Create(ctx, booking("early-morning", "2024-01-10", "08:00:00", "09:00:00", 1)))

	list, err := bookings.ListBySchedule(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, b := range list {
		names = append(names, b.CustomerName)
	}
	assert.Equal(t, []string{"early-morning", "early-afternoon", "late", "other-room"}, names)
}

func TestBookingListWithRoomsResolvesAndMisses(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	rooms := NewRoomRepo(db)
	bookings := NewBookingRepo(db)

	room := &model.Room{Seats: 6, Amenities: model.Amenities{"tv"}, Price: 80}
	require.NoError(t, rooms.Create(ctx, room))
	require.NoError(t, bookings.Create(ctx, booking("Alice", "2024-01-10", "09:00:00", "10:00:00", room.ID)))
	require.NoError(t, bookings.Create(ctx, booking("Ghost", "2024-01-11", "09:00:00", "10:00:00", 4242)))

	list, err := bookings.ListWithRooms(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NotNil(t, list[0].RoomID)
	assert.Equal(t, room.ID, list[0].RoomID.ID)
	assert.Equal(t, 6, list[0].RoomID.Seats)
	assert.Equal(t, model.Amenities{"tv"}, list[0].RoomID.Amenities)
	assert.Equal(t, 80.0, list[0].RoomID.Price)

	assert.Equal(t, "Ghost", list[1].CustomerName)
	assert.Nil(t, list[1].RoomID)
}

func TestBookingListByCustomerIsExactAndCaseSensitive(t *testing.T) {
	ctx := context.Background()
	bookings := NewBookingRepo(newTestDB(t))

	require.NoError(t, bookings.Create(ctx, booking("Alice", "2024-01-10", "09:00:00", "10:00:00", 1)))
	require.NoError(t, bookings.Create(ctx, booking("alice", "2024-01-10", "11:00:00", "12:00:00", 1)))
	require.NoError(t, bookings.Create(ctx, booking("Alice", "2024-01-12", "09:00:00", "10:00:00", 2)))

	list, err := bookings.ListByCustomer(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, b := range list {
		assert.Equal(t, "Alice", b.CustomerName)
	}

	none, err := bookings.ListByCustomer(ctx, "Carol")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStorageErrorWrapsDriverFailure(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	rooms := NewRoomRepo(db)
	require.NoError(t, db.Close())

	err := rooms.Create(ctx, &model.Room{Seats: 1, Price: 1})
	require.Error(t, err)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "rooms.create", se.Op)
	assert.NotNil(t, errors.Unwrap(err))
}
