package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/room-booking/internal/queue"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/service"
)

// Static failure messages returned with HTTP 500. Clients never see the
// underlying cause; it is logged instead.
const (
	msgCreateRoomFailed       = "Failed to create a room."
	msgCreateBookingFailed    = "Failed to book a room."
	msgRoomBookingsFailed     = "Failed to fetch room bookings."
	msgCustomerBookingsFailed = "Failed to fetch customer bookings."
)

// EventPublisher receives booking events after a successful insert.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// BookingHandler bundles the stores and services behind the booking API.
type BookingHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
	Reports  *service.ReportService
	Events   EventPublisher // nil disables event publishing
	Log      *logrus.Logger

	// VerifyRoom rejects bookings whose roomId does not resolve.
	VerifyRoom bool

	publishTimeout time.Duration
	inflight       sync.WaitGroup
}

// NewBookingHandler constructs a BookingHandler and panics if a required
// dependency is nil.
func NewBookingHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo, reports *service.ReportService, log *logrus.Logger) *BookingHandler {
	if rooms == nil || bookings == nil || reports == nil || log == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		Rooms:          rooms,
		Bookings:       bookings,
		Reports:        reports,
		Log:            log,
		publishTimeout: 5 * time.Second,
	}
}

// fail logs err with the operation and its error kind, then writes the
// static 500 response.
func (h *BookingHandler) fail(c echo.Context, op, msg string, err error) error {
	h.Log.WithFields(logrus.Fields{
		"op":         op,
		"kind":       errorKind(err),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).WithError(err).Error(msg)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

func errorKind(err error) string {
	var ve *ValidationError
	var se *repository.StorageError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, repository.ErrRoomNotFound):
		return "room_not_found"
	case errors.As(err, &se):
		return "storage"
	}
	return "unknown"
}
