package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AchintyaNigam/my-rail/internal/dto"
	"github.com/AchintyaNigam/my-rail/internal/flow"
	"github.com/AchintyaNigam/my-rail/internal/service"
)

// PaymentHandler serves the payment page for bookings carried entirely in the
// query string, as the booking page hands them over.
type PaymentHandler struct {
	svc service.BookingService
}

func NewPaymentHandler(svc service.BookingService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/payment", h.Load)
	e.POST("/api/v1/payment", h.Pay)
}

func (h *PaymentHandler) Load(c echo.Context) error {
	summary, err := flow.DecodeSummary(c.QueryParams())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.PaymentPageResponse{Booking: summary})
}

func (h *PaymentHandler) Pay(c echo.Context) error {
	var req dto.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	receipt, err := h.svc.PayWithSummary(c.Request().Context(), c.QueryParams(), req.Instrument())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}
