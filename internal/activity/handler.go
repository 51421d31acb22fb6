// AngelaMos | 2026
// handler.go

package activity

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, superAdminOnly func(http.Handler) http.Handler,
) {
	r.Route("/activities", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(superAdminOnly)

		r.Get("/", h.List)
		r.Get("/stats", h.GetStats)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		Limit:    parseIntQuery(r, "limit", 20),
		UserID:   r.URL.Query().Get("user_id"),
		Action:   r.URL.Query().Get("action"),
		Resource: r.URL.Query().Get("resource"),
		From:     parseTimeQuery(r, "from"),
		To:       parseTimeQuery(r, "to"),
	}

	activities, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	// The audit trail is self-referential: reading it is itself audited.
	h.service.Record(r.Context(), Entry{
		UserID:   middleware.GetUserID(r.Context()),
		UserName: middleware.GetUserName(r.Context()),
		Action:   ActionView,
		Resource: ResourceActivity,
		Detail:   "viewed activity log",
	})

	core.Paginated(w, ToResponseList(activities), params.Page, params.Limit, total)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	h.service.Record(r.Context(), Entry{
		UserID:   middleware.GetUserID(r.Context()),
		UserName: middleware.GetUserName(r.Context()),
		Action:   ActionView,
		Resource: ResourceActivity,
		Detail:   "viewed activity stats",
	})

	core.OK(w, stats)
}

type Response struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	Action          string    `json:"action"`
	Resource        string    `json:"resource"`
	Detail          string    `json:"detail"`
	ApplicationName *string   `json:"application_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToResponse(a *Activity) Response {
	return Response{
		ID:              a.ID,
		UserID:          a.UserID,
		UserName:        a.UserName,
		Action:          a.Action,
		Resource:        a.Resource,
		Detail:          a.Detail,
		ApplicationName: a.ApplicationName,
		CreatedAt:       a.CreatedAt,
	}
}

func ToResponseList(activities []Activity) []Response {
	responses := make([]Response, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, ToResponse(&a))
	}
	return responses
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
