// AngelaMos | 2026
// service.go

package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
)

var ErrCategoryNameTaken = errors.New("category name is already in use")

type Service struct {
	repo       Repository
	categories CategoryRepository
	activities *activity.Service
}

func NewService(
	repo Repository,
	categories CategoryRepository,
	activities *activity.Service,
) *Service {
	return &Service{repo: repo, categories: categories, activities: activities}
}

// canEdit applies the ownership rule: the creator, or any admin, may modify
// a prompt.
func canEdit(ctx context.Context, p *Prompt) bool {
	if middleware.IsAdmin(ctx) {
		return true
	}
	return middleware.GetUserID(ctx) == p.CreatorID
}

func (s *Service) CreatePrompt(
	ctx context.Context,
	req CreatePromptRequest,
) (*Prompt, error) {
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	prompt := &Prompt{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Content:      req.Content,
		CategoryID:   req.CategoryID,
		Tags:         StringList(req.Tags),
		IsActive:     true,
		CreatorID:    middleware.GetUserID(ctx),
		CreatorName:  middleware.GetUserName(ctx),
		CreatorEmail: middleware.GetUserEmail(ctx),
	}

	if err := s.repo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	if prompt.CategoryID != nil {
		s.adjustCount(ctx, *prompt.CategoryID, 1)
	}

	s.record(ctx, activity.ActionCreate, activity.ResourcePrompt,
		"created prompt "+prompt.Title)

	return prompt, nil
}

func (s *Service) GetPrompt(ctx context.Context, id string) (*Prompt, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePrompt(
	ctx context.Context,
	id string,
	req UpdatePromptRequest,
) (*Prompt, error) {
	prompt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canEdit(ctx, prompt) {
		return nil, fmt.Errorf("update prompt: %w", core.ErrForbidden)
	}

	oldCategory := prompt.CategoryID

	if req.Title != nil {
		prompt.Title = *req.Title
	}
	if req.Content != nil {
		prompt.Content = *req.Content
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			prompt.CategoryID = nil
		} else {
			if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
				return nil, err
			}
			prompt.CategoryID = req.CategoryID
		}
	}
	if req.Tags != nil {
		prompt.Tags = StringList(*req.Tags)
	}

	if err := s.repo.Update(ctx, prompt); err != nil {
		return nil, err
	}

	if !sameCategory(oldCategory, prompt.CategoryID) {
		if oldCategory != nil {
			s.adjustCount(ctx, *oldCategory, -1)
		}
		if prompt.CategoryID != nil {
			s.adjustCount(ctx, *prompt.CategoryID, 1)
		}
	}

	s.record(ctx, activity.ActionUpdate, activity.ResourcePrompt,
		"updated prompt "+prompt.Title)

	return prompt, nil
}

func (s *Service) DeletePrompt(ctx context.Context, id string) error {
	prompt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canEdit(ctx, prompt) {
		return fmt.Errorf("delete prompt: %w", core.ErrForbidden)
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	if prompt.CategoryID != nil {
		s.adjustCount(ctx, *prompt.CategoryID, -1)
	}

	s.record(ctx, activity.ActionDelete, activity.ResourcePrompt,
		"deleted prompt "+prompt.Title)

	return nil
}

func (s *Service) ListPrompts(
	ctx context.Context,
	params ListPromptsParams,
) ([]Prompt, int, error) {
	return s.repo.List(ctx, params)
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*Prompt, error) {
	prompt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prompt.IsFavorite = !prompt.IsFavorite
	if err := s.repo.SetFavorite(ctx, id, prompt.IsFavorite); err != nil {
		return nil, err
	}

	return prompt, nil
}

// RecordUsage bumps the usage counter and returns the new count.
func (s *Service) RecordUsage(ctx context.Context, id string) (int, error) {
	return s.repo.IncrementUsage(ctx, id)
}

type Stats struct {
	TotalPrompts    int             `json:"total_prompts"`
	FavoritePrompts int             `json:"favorite_prompts"`
	TotalUsage      int             `json:"total_usage"`
	ByCategory      []CategoryCount `json:"by_category"`
	ByTag           []TagCount      `json:"by_tag"`
	ByUser          []UserCount     `json:"by_user"`
	ByMonth         []MonthCount    `json:"by_month"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	total, favorites, usage, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	byTag, err := s.repo.CountByTag(ctx, 20)
	if err != nil {
		return nil, err
	}

	byUser, err := s.repo.CountByUser(ctx, 10)
	if err != nil {
		return nil, err
	}

	byMonth, err := s.repo.CountByMonth(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalPrompts:    total,
		FavoritePrompts: favorites,
		TotalUsage:      usage,
		ByCategory:      byCategory,
		ByTag:           byTag,
		ByUser:          byUser,
		ByMonth:         byMonth,
	}, nil
}

// --- categories ---

func (s *Service) CreateCategory(
	ctx context.Context,
	req CreateCategoryRequest,
) (*Category, error) {
	if req.ParentID != nil {
		if _, err := s.categories.GetByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}

	s.record(ctx, activity.ActionCreate, activity.ResourcePromptCategory,
		"created category "+category.Name)

	return category, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.categories.ListAll(ctx)
}

func (s *Service) UpdateCategory(
	ctx context.Context,
	id string,
	req UpdateCategoryRequest,
) (*Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			category.ParentID = nil
		} else {
			if *req.ParentID == category.ID {
				return nil, fmt.Errorf(
					"update category: cannot be its own parent: %w",
					core.ErrInvalidInput,
				)
			}
			if _, err := s.categories.GetByID(ctx, *req.ParentID); err != nil {
				return nil, err
			}
			category.ParentID = req.ParentID
		}
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}

	s.record(ctx, activity.ActionUpdate, activity.ResourcePromptCategory,
		"updated category "+category.Name)

	return category, nil
}

// DeleteCategory removes a category, re-parenting its children and moving
// its prompts to the deleted node's parent (or uncategorized at the root).
// A full recount afterwards repairs the denormalized counters.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categories.ReparentChildren(ctx, id, category.ParentID); err != nil {
		return err
	}
	if err := s.repo.ReassignCategory(ctx, id, category.ParentID); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.categories.RecountPrompts(ctx); err != nil {
		return err
	}

	s.record(ctx, activity.ActionDelete, activity.ResourcePromptCategory,
		"deleted category "+category.Name)

	return nil
}

// RecountCategories rebuilds all denormalized prompt counts.
func (s *Service) RecountCategories(ctx context.Context) error {
	return s.categories.RecountPrompts(ctx)
}

func sameCategory(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// adjustCount is best-effort: counter drift is repairable via recount and
// must not fail the primary write.
func (s *Service) adjustCount(ctx context.Context, categoryID string, delta int) {
	if err := s.categories.AdjustPromptCount(ctx, categoryID, delta); err != nil {
		slog.Warn("failed to adjust category prompt count",
			"category_id", categoryID,
			"error", err,
		)
	}
}

func (s *Service) record(ctx context.Context, action, resource, detail string) {
	s.activities.Record(ctx, activity.Entry{
		UserID:   middleware.GetUserID(ctx),
		UserName: middleware.GetUserName(ctx),
		Action:   action,
		Resource: resource,
		Detail:   detail,
	})
}
