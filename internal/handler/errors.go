package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/utils"
)

// statusTable is the single place where domain errors are translated to
// HTTP status codes. Anything not listed surfaces as a 500 with a generic
// body so internals never leak to clients.
var statusTable = []struct {
	err    error
	status int
}{
	{model.ErrInvalidEmail, http.StatusBadRequest},
	{model.ErrWeakPassword, http.StatusBadRequest},
	{repository.ErrEmailExists, http.StatusConflict},
	{repository.ErrUserNotFound, http.StatusNotFound},
	{repository.ErrInvalidRefresh, http.StatusUnauthorized},
	{utils.ErrInvalidToken, http.StatusUnauthorized},
}

// errorStatus maps err to its HTTP status, defaulting to 500.
func errorStatus(err error) int {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// jsonError writes the mapped status with an {error: message} body. For
// unmapped errors the message is replaced with a generic one.
func jsonError(c echo.Context, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.JSON(status, echo.Map{"error": msg})
}
