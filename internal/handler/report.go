package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// ListRoomBookings handles GET /rooms/bookings.
func (h *BookingHandler) ListRoomBookings(c echo.Context) error {
	out, err := h.Reports.RoomStatuses(c.Request().Context())
	if err != nil {
		return h.fail(c, "reports.rooms", msgRoomBookingsFailed, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListCustomerBookings handles GET /customers/bookings.
func (h *BookingHandler) ListCustomerBookings(c echo.Context) error {
	out, err := h.Reports.CustomerBookings(c.Request().Context())
	if err != nil {
		return h.fail(c, "reports.customers", msgCustomerBookingsFailed, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListBookingsByCustomer handles GET /customers/:customerName/bookings.
// Matching is exact; no match is an empty list, not an error.
func (h *BookingHandler) ListBookingsByCustomer(c echo.Context) error {
	name := c.Param("customerName")
	if c.Request().URL.RawPath != "" {
		// echo routed on the escaped path, so the segment is still encoded
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	out, err := h.Reports.BookingsByCustomer(c.Request().Context(), name)
	if err != nil {
		return h.fail(c, "reports.customer", msgCustomerBookingsFailed, err)
	}
	return c.JSON(http.StatusOK, out)
}
