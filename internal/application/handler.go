// AngelaMos | 2026
// handler.go

package application

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

type CreateApplicationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=200"`
	Description string `json:"description,omitempty"  validate:"omitempty,max=1000"`
}

type UpdateApplicationRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"  validate:"omitempty,max=1000"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToResponse(a *Application) Response {
	return Response{
		ID:          a.ID,
		Name:        a.Name,
		DisplayName: a.DisplayName,
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ToResponseList(apps []Application) []Response {
	responses := make([]Response, 0, len(apps))
	for i := range apps {
		responses = append(responses, ToResponse(&apps[i]))
	}
	return responses
}

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/applications", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/{applicationID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{applicationID}", h.Update)
			r.Delete("/{applicationID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			activeOnly = parsed
		}
	}

	apps, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponseList(apps))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			core.JSONError(w, core.ConflictError(ErrNameTaken.Error()))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToResponse(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(r.Context(), chi.URLParam(r, "applicationID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "application")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponse(found))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.Update(
		r.Context(),
		chi.URLParam(r, "applicationID"),
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "application")
			return
		}
		if errors.Is(err, ErrNameTaken) {
			core.JSONError(w, core.ConflictError(ErrNameTaken.Error()))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponse(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "applicationID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "application")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
