package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking/internal/model"
)

// createRoomRequest uses pointers so that an absent field is told apart
// from a zero value.
type createRoomRequest struct {
	Seats     *int     `json:"seats" validate:"required,gt=0"`
	Amenities []string `json:"amenities"`
	Price     *float64 `json:"price" validate:"required"`
}

// CreateRoom handles POST /rooms and echoes the stored room.
func (h *BookingHandler) CreateRoom(c echo.Context) error {
	var req createRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.fail(c, "rooms.create", msgCreateRoomFailed, err)
	}
	amenities := model.Amenities(req.Amenities)
	if amenities == nil {
		amenities = model.Amenities{}
	}
	room := &model.Room{
		Seats:     *req.Seats,
		Amenities: amenities,
		Price:     *req.Price,
	}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		return h.fail(c, "rooms.create", msgCreateRoomFailed, err)
	}
	h.Log.WithField("room_id", room.ID).Info("room created")
	return c.JSON(http.StatusOK, room)
}
