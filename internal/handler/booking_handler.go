package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AchintyaNigam/my-rail/internal/dto"
	"github.com/AchintyaNigam/my-rail/internal/flow"
	"github.com/AchintyaNigam/my-rail/internal/roster"
	"github.com/AchintyaNigam/my-rail/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("/:id", h.GetBooking)
	bookings.PUT("/:id/coach", h.SelectCoach)
	bookings.PUT("/:id/seats", h.SetSeats)
	bookings.PUT("/:id/passengers/:index", h.EditPassenger)
	bookings.POST("/:id/proceed", h.Proceed)
	bookings.POST("/:id/payment", h.Pay)
}

// CreateBooking accepts the Book Now payload either in the body or, as the
// schedule page links it, in the trainData query parameter.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TrainData == "" {
		req.TrainData = c.QueryParam(flow.ParamTrainData)
	}

	sess, err := h.svc.Create(c.Request().Context(), req.TrainData)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, h.view(sess))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	sess, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, h.view(sess))
}

func (h *BookingHandler) SelectCoach(c echo.Context) error {
	var req dto.SelectCoachRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.svc.SelectCoach(c.Request().Context(), c.Param("id"), req.Coach)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, h.view(sess))
}

func (h *BookingHandler) SetSeats(c echo.Context) error {
	var req dto.SetSeatsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sess, err := h.svc.SetSeats(c.Request().Context(), c.Param("id"), req.Seats)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, h.view(sess))
}

func (h *BookingHandler) EditPassenger(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid passenger index")
	}

	var req dto.EditPassengerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.svc.EditPassenger(c.Request().Context(), c.Param("id"), index, roster.Field(req.Field), req.Value)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, h.view(sess))
}

// Proceed answers 422 with the rejection reason when the form is incomplete.
func (h *BookingHandler) Proceed(c echo.Context) error {
	sess, err := h.svc.Proceed(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, h.view(sess))
}

func (h *BookingHandler) Pay(c echo.Context) error {
	var req dto.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	receipt, err := h.svc.Pay(c.Request().Context(), c.Param("id"), req.Instrument())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

func (h *BookingHandler) view(sess *flow.Session) dto.SessionResponse {
	return dto.ToSessionResponse(sess, h.svc.PriceSummary(sess))
}
