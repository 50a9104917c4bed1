package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/room-booking/internal/config"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		seats INT NOT NULL,
		amenities TEXT NOT NULL,
		price DOUBLE NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	// customer_name is binary-collated so lookups are case-sensitive.
	// room_id deliberately has no foreign key.
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		customer_name VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
		booking_date DATE NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		room_id BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_bookings_room_schedule (room_id, booking_date, start_time),
		INDEX idx_bookings_customer (customer_name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seats INTEGER NOT NULL,
		amenities TEXT NOT NULL,
		price REAL NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_name TEXT NOT NULL,
		booking_date DATE NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		room_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_room_schedule ON bookings (room_id, booking_date, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings (customer_name)`,
}

// EnsureSchema creates the rooms and bookings tables when missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	var stmts []string
	switch db.DriverName() {
	case config.DriverMySQL:
		stmts = mysqlSchema
	case config.DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("schema: unsupported driver %q", db.DriverName())
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
