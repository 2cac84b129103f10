package http

import (
	"errors"
	"net/http"
	"strconv"

	"loanledger/internal/domain/fault"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// faultStatus maps the engine's error taxonomy onto HTTP status codes.
func faultStatus(err error) int {
	switch fault.KindOf(err) {
	case fault.KindValidation:
		return http.StatusBadRequest
	case fault.KindNotFound:
		return http.StatusNotFound
	case fault.KindConflict:
		return http.StatusConflict
	case fault.KindUnprocessable:
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeErr(c echo.Context, err error) error {
	return c.JSON(faultStatus(err), ErrorResponse{Error: err.Error()})
}

func pathID(c echo.Context, name string) (uint64, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fault.Validation("invalid " + name + " path param")
	}
	return v, nil
}
