package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/database"
	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/logger"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/service"
)

func newServer(t *testing.T, rdb *redis.Client) *echo.Echo {
	t.Helper()
	db, err := database.Open(context.Background(), config.DBConfig{Driver: config.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.Discard()
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	h := handler.NewBookingHandler(rooms, bookings, service.NewReportService(rooms, bookings), log)

	return New(Deps{
		Bookings: h,
		Health:   db,
		Redis:    rdb,
		Cache: config.CacheConfig{
			Enabled:     true,
			Methods:     map[string]bool{http.MethodGet: true},
			TTL:         time.Minute,
			KeyStrategy: "path_query",
			Prefix:      "cache",
		},
		RateLimit: config.RateLimitConfig{
			Enabled:        true,
			Capacity:       1000,
			RefillTokens:   1,
			RefillInterval: time.Second,
			TTL:            time.Minute,
			KeyStrategy:    "ip_route",
			Prefix:         "rl",
		},
		Log: log,
	})
}

func call(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// walkthrough runs the create room, book, list sequence against e.
func walkthrough(t *testing.T, e *echo.Echo) {
	t.Helper()

	rec := call(t, e, http.MethodGet, "/rooms/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = call(t, e, http.MethodPost, "/rooms", `{"seats":4,"amenities":["projector"],"price":50}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"seats":4,"amenities":["projector"],"price":50,"bookings":[]}`, rec.Body.String())

	rec = call(t, e, http.MethodGet, "/rooms/bookings", "")
	assert.JSONEq(t, `[{"roomName":"Room 1","bookedStatus":"Not Booked","customerName":"","date":"","startTime":"","endTime":""}]`, rec.Body.String())

	rec = call(t, e, http.MethodPost, "/bookings",
		`{"customerName":"Alice","date":"2024-01-10","startTime":"2024-01-10T09:00:00Z","endTime":"2024-01-10T10:00:00Z","roomId":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"customerName":"Alice","date":"2024-01-10","startTime":"2024-01-10T09:00:00Z","endTime":"2024-01-10T10:00:00Z","roomId":1}`, rec.Body.String())

	rec = call(t, e, http.MethodGet, "/rooms/bookings", "")
	assert.JSONEq(t, `[{"roomName":"Room 1","bookedStatus":"Booked","customerName":"Alice","date":"2024-01-10","startTime":"2024-01-10T09:00:00Z","endTime":"2024-01-10T10:00:00Z"}]`, rec.Body.String())

	rec = call(t, e, http.MethodGet, "/customers/bookings", "")
	assert.JSONEq(t, `[{"customerName":"Alice","roomName":"Room 1","date":"2024-01-10","startTime":"2024-01-10T09:00:00Z","endTime":"2024-01-10T10:00:00Z"}]`, rec.Body.String())

	rec = call(t, e, http.MethodGet, "/customers/Alice/bookings", "")
	assert.JSONEq(t, `[{"id":1,"customerName":"Alice","date":"2024-01-10","startTime":"2024-01-10T09:00:00Z","endTime":"2024-01-10T10:00:00Z","roomId":{"id":1,"seats":4,"amenities":["projector"],"price":50}}]`, rec.Body.String())

	rec = call(t, e, http.MethodGet, "/customers/Bob/bookings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestWalkthroughWithoutRedis(t *testing.T) {
	walkthrough(t, newServer(t, nil))
}

func TestWalkthroughWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	walkthrough(t, newServer(t, rdb))
}

func TestFailedWriteKeepsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	e := newServer(t, rdb)

	assert.Equal(t, "MISS", call(t, e, http.MethodGet, "/rooms/bookings", "").Header().Get("X-Cache"))

	rec := call(t, e, http.MethodPost, "/rooms", `{"seats":4}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to create a room."}`, rec.Body.String())
	assert.Equal(t, "HIT", call(t, e, http.MethodGet, "/rooms/bookings", "").Header().Get("X-Cache"))

	rec = call(t, e, http.MethodPost, "/rooms", `{"seats":4,"price":50}`)
	require.Equal(t, http.StatusOK, rec.Code)
	after := call(t, e, http.MethodGet, "/rooms/bookings", "")
	assert.Equal(t, "MISS", after.Header().Get("X-Cache"))
	assert.Contains(t, after.Body.String(), "Room 1")
}

func TestHealthz(t *testing.T) {
	e := newServer(t, nil)
	rec := call(t, e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestUnknownRoute(t *testing.T) {
	e := newServer(t, nil)
	rec := call(t, e, http.MethodGet, "/rooms", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
