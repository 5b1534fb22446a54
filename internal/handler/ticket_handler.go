package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AchintyaNigam/my-rail/internal/service"
)

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo) {
	tickets := e.Group("/api/v1/tickets")
	tickets.GET("/:id", h.GetTicket)
	tickets.GET("/:id/pdf", h.DownloadPDF)
}

func (h *TicketHandler) GetTicket(c echo.Context) error {
	ticket, err := h.svc.GetTicket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) DownloadPDF(c echo.Context) error {
	data, filename, err := h.svc.RenderPDF(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
