package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/middleware"
)

// Deps is everything the HTTP layer needs. Redis may be nil, in which case
// caching and rate limiting are disabled.
type Deps struct {
	Bookings  *handler.BookingHandler
	Health    handler.Pinger
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Log       *logrus.Logger
}

// New builds the echo instance with the shared middleware chain and all
// routes registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))

	RegisterRoutes(e, d)
	return e
}

// RegisterRoutes maps the booking API onto e. Writes drop cached reports;
// reads are served through the response cache. All API routes share the
// rate limiter.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health(d.Health))

	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	invalidate := middleware.InvalidateCache(d.Cache, d.Redis, d.Log)

	h := d.Bookings
	e.POST("/rooms", h.CreateRoom, limit, invalidate)
	e.POST("/bookings", h.CreateBooking, limit, invalidate)

	e.GET("/rooms/bookings", h.ListRoomBookings, limit, cache)
	e.GET("/customers/bookings", h.ListCustomerBookings, limit, cache)
	e.GET("/customers/:customerName/bookings", h.ListBookingsByCustomer, limit, cache)
}
