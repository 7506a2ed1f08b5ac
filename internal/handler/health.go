package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers
	"os"       // os is used to check that the data directory is mounted

	"github.com/labstack/echo/v4" // echo is the web framework used for this project

	"github.com/iliyamo/booth-data/internal/layout"
)

// Health returns a health-check endpoint for load balancers and
// monitoring.  It answers "ok" while the events directory is reachable and
// 503 otherwise, since every other route reads from it.
func Health(l layout.Layout) echo.HandlerFunc {
	return func(c echo.Context) error {
		if info, err := os.Stat(l.EventsDir()); err != nil || !info.IsDir() {
			return c.String(http.StatusServiceUnavailable, "data directory unavailable")
		}
		return c.String(http.StatusOK, "ok")
	}
}
