// AngelaMos | 2026
// dto.go

package prompt

import (
	"time"
)

type CreatePromptRequest struct {
	Title      string   `json:"title"   validate:"required,min=1,max=300"`
	Content    string   `json:"content" validate:"required,min=1,max=50000"`
	CategoryID *string  `json:"category_id,omitempty"`
	Tags       []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}

type UpdatePromptRequest struct {
	Title      *string   `json:"title,omitempty"   validate:"omitempty,min=1,max=300"`
	Content    *string   `json:"content,omitempty" validate:"omitempty,min=1,max=50000"`
	CategoryID *string   `json:"category_id,omitempty"`
	Tags       *[]string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}

type ListPromptsParams struct {
	Page       int
	Limit      int
	Search     string
	CategoryID string
	Tag        string
	Favorite   *bool
	CreatorID  string
}

func (p *ListPromptsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *ListPromptsParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PromptResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Tags        []string  `json:"tags"`
	IsFavorite  bool      `json:"is_favorite"`
	UsageCount  int       `json:"usage_count"`
	CreatorID   string    `json:"creator_id"`
	CreatorName string    `json:"creator_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToPromptResponse(p *Prompt) PromptResponse {
	tags := p.Tags
	if tags == nil {
		tags = StringList{}
	}
	return PromptResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		CategoryID:  p.CategoryID,
		Tags:        tags,
		IsFavorite:  p.IsFavorite,
		UsageCount:  p.UsageCount,
		CreatorID:   p.CreatorID,
		CreatorName: p.CreatorName,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToPromptResponseList(prompts []Prompt) []PromptResponse {
	responses := make([]PromptResponse, 0, len(prompts))
	for i := range prompts {
		responses = append(responses, ToPromptResponse(&prompts[i]))
	}
	return responses
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	ParentID    *string `json:"parent_id,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	ParentID    *string `json:"parent_id,omitempty"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    *string   `json:"parent_id,omitempty"`
	PromptCount int       `json:"prompt_count"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		PromptCount: c.PromptCount,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCategoryResponseList(categories []Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}
