package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booth-data/internal/artifact"
	"github.com/iliyamo/booth-data/internal/converter"
	"github.com/iliyamo/booth-data/internal/layout"
	"github.com/iliyamo/booth-data/internal/repository"
	"github.com/iliyamo/booth-data/internal/storage"
)

// UploadHistory lists recorded uploads of one event.
type UploadHistory interface {
	ListByEvent(ctx context.Context, eventID string, limit int) ([]repository.Upload, error)
}

// AdminHandler runs the converter and the uploader on request.  Publisher
// is nil when no bucket is configured and History is nil without a
// database.  Invalidate, when set, drops cached responses of an event after
// its artifacts change.
type AdminHandler struct {
	Layout     layout.Layout
	Converter  *converter.Converter
	Publisher  *artifact.Publisher
	History    UploadHistory
	Invalidate func(ctx context.Context, eventID string) error
}

// NewAdminHandler panics if the converter is missing.
func NewAdminHandler(l layout.Layout, conv *converter.Converter, pub *artifact.Publisher) *AdminHandler {
	if conv == nil {
		panic("nil converter passed to NewAdminHandler")
	}
	return &AdminHandler{Layout: l, Converter: conv, Publisher: pub}
}

func (h *AdminHandler) invalidate(c echo.Context, id string) {
	if h.Invalidate == nil {
		return
	}
	if err := h.Invalidate(c.Request().Context(), id); err != nil {
		c.Logger().Warnf("cache invalidation for %s failed: %v", id, err)
	}
}

// Convert handles POST /v1/admin/events/:eventId/convert.
func (h *AdminHandler) Convert(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	res, out, err := h.Converter.Run(h.Layout, id)
	if err != nil {
		switch {
		case errors.Is(err, converter.ErrEventNotFound), errors.Is(err, converter.ErrInputMissing):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		default:
			c.Logger().Errorf("convert %s: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "conversion failed"})
		}
	}
	h.invalidate(c, id)

	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id": id,
		"output":   out,
		"booths":   len(res.Booths),
		"warnings": warnings,
	})
}

// Upload handles POST /v1/admin/events/:eventId/upload.
func (h *AdminHandler) Upload(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	if h.Publisher == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "object storage is not configured"})
	}

	ev, err := h.Publisher.Publish(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, artifact.ErrIndexMissing), errors.Is(err, artifact.ErrEventMissing), errors.Is(err, artifact.ErrBoothsMissing):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, artifact.ErrInvalidJSON):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		case errors.Is(err, storage.ErrMissingBucket), errors.Is(err, storage.ErrMissingCredentials):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		default:
			c.Logger().Errorf("upload %s: %v", id, err)
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "upload failed"})
		}
	}
	h.invalidate(c, id)

	keys := make([]string, 0, 2)
	for _, f := range ev.Files() {
		keys = append(keys, f.Key)
	}
	return c.JSON(http.StatusOK, echo.Map{"event_id": id, "uploaded": keys})
}

type uploadView struct {
	ID         uint64 `json:"id"`
	ObjectKey  string `json:"object_key"`
	Bucket     string `json:"bucket"`
	LocalPath  string `json:"local_path"`
	SizeBytes  int64  `json:"size_bytes"`
	UploadedAt string `json:"uploaded_at"`
}

// Uploads handles GET /v1/admin/events/:eventId/uploads?limit=N.
func (h *AdminHandler) Uploads(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}
	if h.History == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "upload ledger is not configured"})
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	list, err := h.History.ListByEvent(c.Request().Context(), id, limit)
	if err != nil {
		c.Logger().Errorf("list uploads %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list uploads"})
	}
	out := make([]uploadView, 0, len(list))
	for _, u := range list {
		out = append(out, uploadView{
			ID:         u.ID,
			ObjectKey:  u.ObjectKey,
			Bucket:     u.Bucket,
			LocalPath:  u.LocalPath,
			SizeBytes:  u.SizeBytes,
			UploadedAt: u.UploadedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"event_id": id, "uploads": out})
}
