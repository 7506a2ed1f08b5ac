package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booth-data/internal/converter"
	"github.com/iliyamo/booth-data/internal/layout"
	"github.com/iliyamo/booth-data/internal/model"
)

// EventHandler serves the artifacts found under the local data directory,
// using the same paths the bucket uses.
type EventHandler struct {
	Layout layout.Layout
}

func NewEventHandler(l layout.Layout) *EventHandler { return &EventHandler{Layout: l} }

// eventID reads and validates the :eventId path parameter.
func eventID(c echo.Context) (string, error) {
	id := c.Param("eventId")
	if !layout.ValidEventID(id) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return id, nil
}

// serveJSONFile writes the file verbatim so clients get exactly the bytes
// that would be uploaded.
func serveJSONFile(c echo.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read failed"})
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// GetIndex handles GET /events/index.json.
func (h *EventHandler) GetIndex(c echo.Context) error {
	return serveJSONFile(c, h.Layout.IndexPath())
}

// GetBoothsFile handles GET /events/:eventId/booths.json.
func (h *EventHandler) GetBoothsFile(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	return serveJSONFile(c, h.Layout.BoothsPath(id))
}

// ListBooths handles GET /v1/events/:eventId/booths.  Optional query
// parameters narrow the list: day (attendance day number) and tag (exact).
func (h *EventHandler) ListBooths(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	day := 0
	if v := c.QueryParam("day"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be a positive integer"})
		}
		day = n
	}
	tag := c.QueryParam("tag")

	booths, err := h.load(c, id)
	if err != nil {
		return err
	}

	out := make([]model.Booth, 0, len(booths))
	for _, b := range booths {
		if day > 0 && !b.AttendsDay(day) {
			continue
		}
		if tag != "" && !b.HasTag(tag) {
			continue
		}
		out = append(out, b)
	}
	return c.JSON(http.StatusOK, out)
}

// GetBooth handles GET /v1/events/:eventId/booths/:id.
func (h *EventHandler) GetBooth(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	boothID, convErr := strconv.Atoi(c.Param("id"))
	if convErr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booth id"})
	}

	booths, err := h.load(c, id)
	if err != nil {
		return err
	}
	for _, b := range booths {
		if b.ID == boothID {
			return c.JSON(http.StatusOK, b)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "booth not found"})
}

// load reads an event's booths and maps failures to HTTP errors.
func (h *EventHandler) load(c echo.Context, id string) ([]model.Booth, error) {
	booths, err := converter.ReadBooths(h.Layout.BoothsPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "event has no booths.json")
		}
		c.Logger().Errorf("read booths for %s: %v", id, err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "booths.json is unreadable")
	}
	return booths, nil
}
