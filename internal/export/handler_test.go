// AngelaMos | 2026
// handler_test.go

package export

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/release"
)

type stubReleases struct {
	rel *release.Release
	err error
}

func (s *stubReleases) Get(context.Context, string) (*release.Release, error) {
	return s.rel, s.err
}

func sampleRelease() *release.Release {
	version := "1.0.0"
	return &release.Release{
		ID:              "r1",
		Title:           "My Release",
		ApplicationName: "tracker",
		Version:         &version,
		WorkItems:       release.WorkItemList(sampleItems()),
	}
}

func exportRequest(format string) *http.Request {
	r := httptest.NewRequest(
		http.MethodGet,
		"/v1/releases/r1/export?format="+format,
		nil,
	)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("releaseID", "r1")
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestExportRelease_CSV(t *testing.T) {
	h := NewHandler(&stubReleases{rel: sampleRelease()}, activity.NewService(nil))

	w := httptest.NewRecorder()
	h.ExportRelease(w, exportRequest("csv"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "My-Release-1.0.0.csv") {
		t.Errorf("disposition = %q", got)
	}
	if !strings.Contains(w.Body.String(), "Checkout revamp") {
		t.Error("body is missing exported work items")
	}
}

func TestExportRelease_UnknownFormat(t *testing.T) {
	h := NewHandler(&stubReleases{rel: sampleRelease()}, activity.NewService(nil))

	w := httptest.NewRecorder()
	h.ExportRelease(w, exportRequest("pdf"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// brokenWriter accepts headers but fails every body write, recording what the
// handler attempts to send after the failure.
type brokenWriter struct {
	header    http.Header
	status    int
	attempted []byte
}

func newBrokenWriter() *brokenWriter {
	return &brokenWriter{header: make(http.Header)}
}

func (w *brokenWriter) Header() http.Header { return w.header }

func (w *brokenWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.attempted = append(w.attempted, p...)
	return 0, errors.New("client went away")
}

func TestExportRelease_WriteFailureDoesNotAppendErrorBody(t *testing.T) {
	h := NewHandler(&stubReleases{rel: sampleRelease()}, activity.NewService(nil))

	w := newBrokenWriter()
	h.ExportRelease(w, exportRequest("csv"))

	// The file stream already started; a JSON error payload must not be
	// appended to it, and the status must not be rewritten.
	if w.status == http.StatusInternalServerError {
		t.Errorf("status = %d after mid-stream failure", w.status)
	}
	if strings.Contains(string(w.attempted), "internal server error") {
		t.Error("error payload appended to a partially written export")
	}
}
