package handler

import (
	"errors"
	"net/http"

	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// HTTPErrorHandler replaces echo's default so framework errors (unknown
// route, wrong method, body too large) and recovered panics share the JSON
// error envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apierr *apierror.APIError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		msg := ""
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}

		// Inner errors may carry driver detail, keep the standard text for 5xx.
		if httpErr.Code >= http.StatusInternalServerError {
			log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
			msg = apierror.InternalServerError.Message
		}
		apierr = apierror.NewHTTPError(httpErr.Code, msg)
	default:
		log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		apierr = apierror.NewHTTPError(http.StatusInternalServerError, apierror.InternalServerError.Message)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(apierr.Code())
	} else {
		werr = c.JSON(apierr.Code(), apierr)
	}

	if werr != nil {
		log.Errorf("failed to write error response: %v", werr)
	}
}
