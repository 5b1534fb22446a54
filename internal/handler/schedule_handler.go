package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AchintyaNigam/my-rail/internal/catalog"
	"github.com/AchintyaNigam/my-rail/internal/dto"
	"github.com/AchintyaNigam/my-rail/internal/flow"
	"github.com/AchintyaNigam/my-rail/internal/models"
)

type ScheduleHandler struct {
	coaches []models.CoachType
}

func NewScheduleHandler(coaches []models.CoachType) *ScheduleHandler {
	return &ScheduleHandler{coaches: coaches}
}

func (h *ScheduleHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/trains", h.ListTrains)
	api.GET("/trains/:id/book", h.BookNow)
	api.GET("/stations", h.ListStations)
	api.GET("/coaches", h.ListCoaches)
}

func (h *ScheduleHandler) ListTrains(c echo.Context) error {
	var f catalog.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	return c.JSON(http.StatusOK, catalog.Search(f))
}

func (h *ScheduleHandler) BookNow(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid train id")
	}

	train, ok := catalog.FindByID(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "train not found")
	}

	q, err := flow.BookingQuery(train)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.BookNowResponse{
		Train:     train,
		TrainData: q.Get(flow.ParamTrainData),
		Query:     q.Encode(),
	})
}

func (h *ScheduleHandler) ListStations(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Stations())
}

func (h *ScheduleHandler) ListCoaches(c echo.Context) error {
	return c.JSON(http.StatusOK, h.coaches)
}
