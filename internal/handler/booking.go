package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/room-booking/internal/model"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/service"
)

type createBookingRequest struct {
	CustomerName string      `json:"customerName" validate:"required"`
	Date         *model.Date `json:"date" validate:"required"`
	StartTime    *time.Time  `json:"startTime" validate:"required"`
	EndTime      *time.Time  `json:"endTime" validate:"required"`
	RoomID       *uint64     `json:"roomId" validate:"required,gt=0"`
}

// CreateBooking handles POST /bookings. The room reference is only checked
// for format unless VerifyRoom is set. Overlapping bookings are accepted.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.fail(c, "bookings.create", msgCreateBookingFailed, err)
	}
	ctx := c.Request().Context()
	if h.VerifyRoom {
		ok, err := h.Rooms.Exists(ctx, *req.RoomID)
		if err != nil {
			return h.fail(c, "bookings.create", msgCreateBookingFailed, err)
		}
		if !ok {
			err := fmt.Errorf("room %d: %w", *req.RoomID, repository.ErrRoomNotFound)
			return h.fail(c, "bookings.create", msgCreateBookingFailed, err)
		}
	}

	booking := &model.Booking{
		CustomerName: req.CustomerName,
		Date:         *req.Date,
		StartTime:    *req.StartTime,
		EndTime:      *req.EndTime,
		RoomID:       *req.RoomID,
	}
	if err := h.Bookings.Create(ctx, booking); err != nil {
		return h.fail(c, "bookings.create", msgCreateBookingFailed, err)
	}
	h.Log.WithFields(logrus.Fields{"booking_id": booking.ID, "room_id": booking.RoomID}).Info("booking created")

	h.publishCreated(ctx, *booking, h.VerifyRoom)
	return c.JSON(http.StatusOK, booking)
}

// publishCreated hands the event to the publisher in the background so a
// slow or absent broker never delays the response. verified reports that
// the room was already found by the VerifyRoom check.
func (h *BookingHandler) publishCreated(ctx context.Context, b model.Booking, verified bool) {
	if h.Events == nil {
		return
	}
	now := time.Now()
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.publishTimeout)
		defer cancel()
		ev := service.NewBookingCreatedEvent(b, h.eventRoomName(pctx, b.RoomID, verified), now)
		if err := h.Events.PublishBookingCreated(pctx, ev); err != nil {
			h.Log.WithError(err).WithField("booking_id", b.ID).Warn("booking event not published")
		}
	}()
}

// eventRoomName names the room the way the customer listing does: empty
// when the room does not exist.
func (h *BookingHandler) eventRoomName(ctx context.Context, roomID uint64, verified bool) string {
	if !verified {
		ok, err := h.Rooms.Exists(ctx, roomID)
		if err != nil {
			h.Log.WithError(err).WithField("room_id", roomID).Warn("booking event: room lookup failed")
			return ""
		}
		if !ok {
			return ""
		}
	}
	return model.RoomName(roomID)
}

// WaitForEvents blocks until every background publish has finished or ctx
// is done.
func (h *BookingHandler) WaitForEvents(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
