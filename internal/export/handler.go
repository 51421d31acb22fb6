// AngelaMos | 2026
// handler.go

package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
	"github.com/Vimal-ZP/Tracker-sub002/internal/release"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReleaseSource provides the release to be exported.
type ReleaseSource interface {
	Get(ctx context.Context, id string) (*release.Release, error)
}

type Handler struct {
	releases   ReleaseSource
	activities *activity.Service
}

func NewHandler(releases ReleaseSource, activities *activity.Service) *Handler {
	return &Handler{releases: releases, activities: activities}
}

// ExportRelease streams the release's work items as a CSV or XLSX download,
// in the same order the work items are displayed.
func (h *Handler) ExportRelease(w http.ResponseWriter, r *http.Request) {
	releaseID := chi.URLParam(r, "releaseID")

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		core.BadRequest(w, "format must be csv or xlsx")
		return
	}

	rel, err := h.releases.Get(r.Context(), releaseID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "release")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	ordered := release.OrderWorkItems(rel.WorkItems)
	rows := BuildRows(ordered)
	filename := exportFilename(rel, format)

	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filename),
	)

	switch format {
	case FormatCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = WriteCSV(w, rows)
	case FormatXLSX:
		w.Header().Set(
			"Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		)
		err = WriteXLSX(w, "Work Items", rows)
	}
	if err != nil {
		// Headers are already out; all that is left is to log.
		slog.Error("failed to write export",
			"release_id", releaseID,
			"format", format,
			"error", err,
		)
		return
	}

	h.activities.Record(r.Context(), activity.Entry{
		UserID:          middleware.GetUserID(r.Context()),
		UserName:        middleware.GetUserName(r.Context()),
		Action:          activity.ActionExport,
		Resource:        activity.ResourceRelease,
		Detail:          fmt.Sprintf("exported release %s as %s", rel.Title, format),
		ApplicationName: rel.ApplicationName,
	})
}

func exportFilename(rel *release.Release, format string) string {
	base := strings.TrimSpace(rel.Title)
	if base == "" {
		base = "release"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, base)

	if rel.Version != nil && *rel.Version != "" {
		base += "-" + *rel.Version
	}

	return base + "." + format
}
