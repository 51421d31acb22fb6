// AngelaMos | 2026
// handler.go

package prompt

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly, superAdminOnly func(http.Handler) http.Handler,
) {
	r.Route("/prompts", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListPrompts)
		r.Get("/stats", h.GetStats)
		r.Post("/", h.CreatePrompt)
		r.Get("/{promptID}", h.GetPrompt)
		r.Put("/{promptID}", h.UpdatePrompt)
		r.Delete("/{promptID}", h.DeletePrompt)
		r.Post("/{promptID}/favorite", h.ToggleFavorite)
		r.Post("/{promptID}/usage", h.RecordUsage)
	})

	r.Route("/prompt-categories", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListCategories)
		r.Get("/{categoryID}", h.GetCategory)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.CreateCategory)
			r.Put("/{categoryID}", h.UpdateCategory)
			r.Post("/recount", h.RecountCategories)
		})

		r.Group(func(r chi.Router) {
			r.Use(superAdminOnly)
			r.Delete("/{categoryID}", h.DeleteCategory)
		})
	})
}

func (h *Handler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	params := ListPromptsParams{
		Page:       parseIntQuery(r, "page", 1),
		Limit:      parseIntQuery(r, "limit", 20),
		Search:     r.URL.Query().Get("search"),
		CategoryID: r.URL.Query().Get("category_id"),
		Tag:        r.URL.Query().Get("tag"),
		CreatorID:  r.URL.Query().Get("creator_id"),
	}

	if raw := r.URL.Query().Get("favorite"); raw != "" {
		if favorite, err := strconv.ParseBool(raw); err == nil {
			params.Favorite = &favorite
		}
	}

	params.Normalize()

	prompts, total, err := h.service.ListPrompts(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToPromptResponseList(prompts), params.Page, params.Limit, total)
}

func (h *Handler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req CreatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	created, err := h.service.CreatePrompt(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.BadRequest(w, "category not found")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToPromptResponse(created))
}

func (h *Handler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.GetPrompt(r.Context(), chi.URLParam(r, "promptID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "prompt")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPromptResponse(found))
}

func (h *Handler) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	var req UpdatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.UpdatePrompt(r.Context(), chi.URLParam(r, "promptID"), req)
	if err != nil {
		h.writePromptError(w, err)
		return
	}

	core.OK(w, ToPromptResponse(updated))
}

func (h *Handler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeletePrompt(r.Context(), chi.URLParam(r, "promptID"))
	if err != nil {
		h.writePromptError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	updated, err := h.service.ToggleFavorite(r.Context(), chi.URLParam(r, "promptID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "prompt")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPromptResponse(updated))
}

func (h *Handler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.RecordUsage(r.Context(), chi.URLParam(r, "promptID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "prompt")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]int{"usage_count": count})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCategoryResponseList(categories))
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	created, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		h.writeCategoryError(w, err)
		return
	}

	core.Created(w, ToCategoryResponse(created))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCategoryResponse(found))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.UpdateCategory(
		r.Context(),
		chi.URLParam(r, "categoryID"),
		req,
	)
	if err != nil {
		h.writeCategoryError(w, err)
		return
	}

	core.OK(w, ToCategoryResponse(updated))
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) RecountCategories(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RecountCategories(r.Context()); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "prompt counts rebuilt"})
}

func (h *Handler) writePromptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "prompt")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "only the creator or an admin may modify this prompt")
	default:
		core.InternalServerError(w, err)
	}
}

func (h *Handler) writeCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "category")
	case errors.Is(err, ErrCategoryNameTaken):
		core.JSONError(w, core.ConflictError(ErrCategoryNameTaken.Error()))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid parent category")
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
