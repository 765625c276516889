package rest

import (
	"errors"
	"net/http"

	"dermAssist/domain"
	"dermAssist/pkg/response"

	"github.com/labstack/echo/v4"
)

// userID pulls the authenticated user id set by the auth middleware.
func userID(c echo.Context) (uint, bool) {
	uid, ok := c.Get("user_id").(uint)
	return uid, ok
}

// jsonError maps pipeline sentinels onto status codes and the error
// envelope. Internal errors only surface their message, never traces.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrAnalysisNotFound):
		return c.JSON(http.StatusNotFound, response.Error("ANALYSIS_NOT_FOUND", err.Error(), nil))
	case errors.Is(err, domain.ErrProfileNotFound):
		return c.JSON(http.StatusNotFound, response.Error("PROFILE_NOT_FOUND", err.Error(), nil))
	case errors.Is(err, domain.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, response.Error("PRODUCT_NOT_FOUND", err.Error(), nil))
	case errors.Is(err, domain.ErrRateLimited), errors.Is(err, domain.ErrUpstreamUnavailable):
		return c.JSON(http.StatusServiceUnavailable, response.Error("UPSTREAM_UNAVAILABLE", "recommendation service is temporarily unavailable", nil))
	case errors.Is(err, domain.ErrMalformedCompletion), errors.Is(err, domain.ErrEmptyCompletion):
		return c.JSON(http.StatusBadGateway, response.Error("BAD_COMPLETION", "recommendation service returned an unusable response", nil))
	default:
		return c.JSON(http.StatusInternalServerError, response.Error("INTERNAL_ERROR", err.Error(), nil))
	}
}
