package handler // declare the package name; contains HTTP handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health is a simple liveness endpoint used by load balancers and
// monitoring systems.  It reports an "ok" status together with the current
// server time.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
