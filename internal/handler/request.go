package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"smapp/internal/errors"
)

// bindAndValidate decodes the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate accepts YYYY-MM-DD or RFC 3339 timestamps.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &errors.ValidationError{Fields: []errors.FieldError{{
		Value:    value,
		Msg:      "Invalid date",
		Param:    field,
		Location: "body",
	}}}
}

// parseOptionalDate is parseDate for fields that may be left empty.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
