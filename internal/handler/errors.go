package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AchintyaNigam/my-rail/internal/flow"
	"github.com/AchintyaNigam/my-rail/internal/roster"
	"github.com/AchintyaNigam/my-rail/internal/service"
)

// httpError maps domain errors to responses. The message of a user-facing
// error is shown as-is; anything unknown becomes a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTicketNotFound):
		return echo.NewHTTPError(http.StatusNotFound, rootMessage(err))

	case errors.Is(err, flow.ErrTrainUnavailable),
		flow.IsValidation(err),
		errors.Is(err, roster.ErrInvalidSeatCount),
		errors.Is(err, roster.ErrPassengerIndex),
		errors.Is(err, roster.ErrUnknownField),
		errors.Is(err, roster.ErrInvalidAge),
		errors.Is(err, roster.ErrInvalidGender):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, rootMessage(err))

	case errors.Is(err, flow.ErrSessionLocked),
		errors.Is(err, flow.ErrNotSubmitted),
		errors.Is(err, flow.ErrAlreadyPaid),
		errors.Is(err, service.ErrPaymentInProgress),
		errors.Is(err, service.ErrSessionBusy):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrTermsNotAccepted),
		errors.Is(err, service.ErrPasswordMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, rootMessage(err))

	case errors.Is(err, service.ErrPaymentFailed),
		errors.Is(err, service.ErrLoginFailed),
		errors.Is(err, service.ErrSignupFailed):
		return echo.NewHTTPError(http.StatusBadGateway, rootMessage(err)).SetInternal(err)

	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

var userFacing = []error{
	flow.ErrTrainUnavailable, flow.ErrCoachRequired, flow.ErrIncompletePassengers,
	flow.ErrUnknownCoach, flow.ErrMissingBookingDetails, flow.ErrMalformedBookingDetails,
	flow.ErrCardDetailsRequired, flow.ErrUPIRequired, flow.ErrUnknownPaymentMethod,
	roster.ErrInvalidSeatCount, roster.ErrPassengerIndex, roster.ErrUnknownField,
	roster.ErrInvalidAge, roster.ErrInvalidGender,
	service.ErrSessionNotFound, service.ErrTicketNotFound,
	service.ErrInvalidCredentials, service.ErrInvalidToken,
	service.ErrPaymentFailed, service.ErrLoginFailed, service.ErrSignupFailed,
}

// rootMessage drops wrapped transport detail so internals stay in the logs.
func rootMessage(err error) string {
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
