package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// APIResponse is the envelope every /api handler answers with.
type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: "OK",
		Result:  result,
	})
}

func writeError(c echo.Context, status int, message, info string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(status),
		Message: message,
		Info:    info,
	})
}

// errorCode keeps the legacy client-facing error identifiers stable.
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "100010"
	case http.StatusUnauthorized:
		return "100401"
	case http.StatusNotFound:
		return "100404"
	case http.StatusConflict:
		return "100409"
	case http.StatusTooManyRequests:
		return "100429"
	case http.StatusNotImplemented:
		return "100501"
	default:
		return "100500"
	}
}
