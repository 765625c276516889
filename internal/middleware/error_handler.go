package middleware

import (
	"net/http"
	"strings"

	"dermAssist/pkg/logger"
	"dermAssist/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler converts unhandled echo errors into the standard error
// envelope so no endpoint ever leaks a raw error page.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error",
			"error", err,
			"path", c.Request().URL.Path,
		)
	}

	errCode := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
	if jsonErr := c.JSON(code, response.Error(errCode, message, nil)); jsonErr != nil {
		logger.Error("Failed to write error response", "error", jsonErr)
	}
}
