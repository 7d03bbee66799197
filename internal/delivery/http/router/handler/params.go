package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// parseUUIDParam parses a path parameter as a UUID.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// queryInt parses an integer query parameter, returning 0 when absent or malformed.
func queryInt(c echo.Context, name string) int {
	val, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return val
}

// queryFloat parses a float query parameter, returning nil when absent or malformed.
func queryFloat(c echo.Context, name string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &val
}
