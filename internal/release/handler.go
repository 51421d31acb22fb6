// AngelaMos | 2026
// handler.go

package release

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes wires the release CRUD surface. The export handler is
// injected so file rendering stays outside this package.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly, superAdminOnly func(http.Handler) http.Handler,
	exportHandler http.HandlerFunc,
) {
	r.Route("/releases", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/stats", h.GetStats)
		r.Get("/{releaseID}", h.Get)
		r.Get("/{releaseID}/export", exportHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{releaseID}", h.Update)
		})

		r.Group(func(r chi.Router) {
			r.Use(superAdminOnly)
			r.Delete("/{releaseID}", h.Delete)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/search", h.Search)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListReleasesParams{
		Page:   parseIntQuery(r, "page", 1),
		Limit:  parseIntQuery(r, "limit", 20),
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
		Search: r.URL.Query().Get("search"),
		From:   parseTimeQuery(r, "from"),
		To:     parseTimeQuery(r, "to"),
	}

	if raw := r.URL.Query().Get("published"); raw != "" {
		if published, err := strconv.ParseBool(raw); err == nil {
			params.Published = &published
		}
	}

	params.Normalize()

	releases, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToResponseList(releases), params.Page, params.Limit, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	author := AuthorFromContext(r.Context())

	created, err := h.service.Create(r.Context(), author, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.Created(w, ToResponse(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(r.Context(), chi.URLParam(r, "releaseID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "release")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponse(found))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "releaseID"), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToResponse(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "releaseID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "release")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	typeFilter := r.URL.Query().Get("type")
	limit := parseIntQuery(r, "limit", 0)

	if typeFilter != "" && !IsValidWorkItemType(typeFilter) {
		core.BadRequest(w, "invalid work item type")
		return
	}

	resp, err := h.service.Search(r.Context(), query, typeFilter, limit)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "release")
	case errors.Is(err, ErrInvalidVersion):
		core.BadRequest(w, ErrInvalidVersion.Error())
	case errors.Is(err, ErrVersionTaken):
		core.JSONError(w, core.ConflictError(ErrVersionTaken.Error()))
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func parseTimeQuery(r *http.Request, key string) *time.Time {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}

	return &parsed
}
