package router // package router defines how HTTP routes are registered for the preview server

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/booth-data/internal/handler"    // handlers that serve and rebuild artifacts
	"github.com/iliyamo/booth-data/internal/layout"     // local event tree
	"github.com/iliyamo/booth-data/internal/middleware" // JWT and role enforcement
	"github.com/iliyamo/booth-data/internal/utils"      // role names
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo, l layout.Layout) {
	e.GET("/healthz", handler.Health(l))
}

// RegisterPublic registers the read-only artifact routes.  The raw files
// live at the same paths as their bucket keys; the /v1 routes return parsed
// and filtered booths.  Every route goes through cache, which may be a
// pass-through.
func RegisterPublic(e *echo.Echo, h *handler.EventHandler, cache echo.MiddlewareFunc) {
	e.GET("/events/index.json", h.GetIndex, cache)
	e.GET("/events/:eventId/booths.json", h.GetBoothsFile, cache)

	g := e.Group("/v1/events/:eventId", cache)
	g.GET("/booths", h.ListBooths)
	g.GET("/booths/:id", h.GetBooth)
}

// RegisterAdmin registers the routes that rebuild and publish an event.
// They require a valid access token carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleAdmin),
	)
	g.POST("/events/:eventId/convert", a.Convert)
	g.POST("/events/:eventId/upload", a.Upload)
	g.GET("/events/:eventId/uploads", a.Uploads)
}
