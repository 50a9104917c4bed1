// Package repository contains data access logic separated from HTTP handlers.
// This file holds the Room store.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/room-booking/internal/model"
)

// RoomRepo encapsulates all queries on the rooms table. It depends on a
// pool configured elsewhere and injected at startup.
type RoomRepo struct {
	db *sqlx.DB
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle.
func NewRoomRepo(db *sqlx.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new room. On success the room is reloaded from the
// database so callers receive exactly what was stored, and its derived
// Bookings list is set to empty.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = "INSERT INTO rooms (seats, amenities, price) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, room.Seats, room.Amenities, room.Price)
	if err != nil {
		return storageErr("rooms.create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("rooms.create", err)
	}

	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*room = *stored
	room.Bookings = []uint64{}
	return nil
}

// GetByID fetches a room by id. It returns ErrRoomNotFound when no row matches.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = "SELECT id, seats, amenities, price FROM rooms WHERE id = ?"
	var room model.Room
	if err := r.db.GetContext(ctx, &room, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, storageErr("rooms.get", err)
	}
	return &room, nil
}

// Exists reports whether a room with the given id is stored.
func (r *RoomRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = "SELECT COUNT(*) FROM rooms WHERE id = ?"
	var n int
	if err := r.db.GetContext(ctx, &n, q, id); err != nil {
		return false, storageErr("rooms.exists", err)
	}
	return n > 0, nil
}

// ListAll returns every room ordered by id.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	const q = "SELECT id, seats, amenities, price FROM rooms ORDER BY id"
	rooms := []model.Room{}
	if err := r.db.SelectContext(ctx, &rooms, q); err != nil {
		return nil, storageErr("rooms.list", err)
	}
	return rooms, nil
}
