package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opendining/reservation-service/internal/service"
)

// toHTTPError maps domain error kinds onto status codes; anything untyped
// is a server fault.
func toHTTPError(err error) error {
	var domainErr *service.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case service.KindNotFound:
			return echo.NewHTTPError(http.StatusNotFound, domainErr.Message)
		case service.KindConflict:
			return echo.NewHTTPError(http.StatusConflict, domainErr.Message)
		default:
			return echo.NewHTTPError(http.StatusBadRequest, domainErr.Message)
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
