package handler

import (
	"encoding/json"
	"errors"
	"io"

	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// readBody decodes a JSON object body without binding path or query
// params into it. An empty body yields an empty record.
func readBody(c echo.Context) (store.Record, apierror.ErrorResponse) {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()

	var body store.Record
	err := dec.Decode(&body)
	if errors.Is(err, io.EOF) {
		return store.Record{}, nil
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return nil, apierror.NewHTTPError(httpErr.Code, "")
	}

	if err != nil {
		log.Debugf("rejected malformed body on %s: %v", c.Request().URL.Path, err)
		return nil, apierror.MalformedJSONError
	}

	if body == nil {
		body = store.Record{}
	}
	return body, nil
}
