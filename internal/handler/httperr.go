package handler

import (
	"errors"
	"net/http"

	"dental-academy-store/internal/service"

	"github.com/labstack/echo/v4"
)

// httpError maps the service sentinel errors onto HTTP status codes. The
// wrapped message is what the UI shows the user.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrCartItemPending):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}
