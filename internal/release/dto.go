// AngelaMos | 2026
// dto.go

package release

import (
	"time"
)

type WorkItemRequest struct {
	ID          string   `json:"id,omitempty"`
	Type        string   `json:"type"  validate:"required,oneof=epic feature user_story bug incident"`
	Title       string   `json:"title" validate:"required,min=1,max=500"`
	ExternalID  string   `json:"external_id,omitempty" validate:"omitempty,max=100"`
	FlagName    string   `json:"flag_name,omitempty"   validate:"omitempty,max=200"`
	Remarks     string   `json:"remarks,omitempty"     validate:"omitempty,max=2000"`
	Hyperlink   string   `json:"hyperlink,omitempty"   validate:"omitempty,max=2000"`
	ParentID    string   `json:"parent_id,omitempty"`
	ActualHours *float64 `json:"actual_hours,omitempty" validate:"omitempty,gte=0"`
}

type CreateReleaseRequest struct {
	Title           string            `json:"title"            validate:"required,min=1,max=300"`
	ApplicationName string            `json:"application_name" validate:"required,min=1,max=100"`
	Version         *string           `json:"version,omitempty"`
	Status          string            `json:"status,omitempty" validate:"omitempty,oneof=draft beta stable deprecated"`
	Type            string            `json:"type"             validate:"required,oneof=major minor patch hotfix"`
	Description     string            `json:"description,omitempty" validate:"omitempty,max=10000"`
	Features        []string          `json:"features,omitempty"`
	BugFixes        []string          `json:"bug_fixes,omitempty"`
	BreakingChanges []string          `json:"breaking_changes,omitempty"`
	WorkItems       []WorkItemRequest `json:"work_items,omitempty" validate:"omitempty,dive"`
	IsPublished     bool              `json:"is_published,omitempty"`
}

type UpdateReleaseRequest struct {
	Title           *string            `json:"title,omitempty"            validate:"omitempty,min=1,max=300"`
	ApplicationName *string            `json:"application_name,omitempty" validate:"omitempty,min=1,max=100"`
	Version         *string            `json:"version,omitempty"`
	Status          *string            `json:"status,omitempty" validate:"omitempty,oneof=draft beta stable deprecated"`
	Type            *string            `json:"type,omitempty"   validate:"omitempty,oneof=major minor patch hotfix"`
	Description     *string            `json:"description,omitempty" validate:"omitempty,max=10000"`
	Features        *[]string          `json:"features,omitempty"`
	BugFixes        *[]string          `json:"bug_fixes,omitempty"`
	BreakingChanges *[]string          `json:"breaking_changes,omitempty"`
	WorkItems       *[]WorkItemRequest `json:"work_items,omitempty" validate:"omitempty,dive"`
	IsPublished     *bool              `json:"is_published,omitempty"`
}

type ListReleasesParams struct {
	Page      int
	Limit     int
	Status    string
	Type      string
	Search    string
	From      *time.Time
	To        *time.Time
	Published *bool
}

func (p *ListReleasesParams) Normalize() {
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

func (p *ListReleasesParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Response struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	ApplicationName string     `json:"application_name"`
	Version         *string    `json:"version,omitempty"`
	Status          string     `json:"status"`
	Type            string     `json:"type"`
	Description     string     `json:"description,omitempty"`
	Features        []string   `json:"features"`
	BugFixes        []string   `json:"bug_fixes"`
	BreakingChanges []string   `json:"breaking_changes"`
	WorkItems       []WorkItem `json:"work_items"`
	AuthorID        string     `json:"author_id"`
	AuthorName      string     `json:"author_name"`
	AuthorEmail     string     `json:"author_email"`
	IsPublished     bool       `json:"is_published"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToResponse serializes a release with its work items in display order.
func ToResponse(r *Release) Response {
	return Response{
		ID:              r.ID,
		Title:           r.Title,
		ApplicationName: r.ApplicationName,
		Version:         r.Version,
		Status:          r.Status,
		Type:            r.Type,
		Description:     r.Description,
		Features:        emptyIfNil(r.Features),
		BugFixes:        emptyIfNil(r.BugFixes),
		BreakingChanges: emptyIfNil(r.BreakingChanges),
		WorkItems:       OrderWorkItems(r.WorkItems),
		AuthorID:        r.AuthorID,
		AuthorName:      r.AuthorName,
		AuthorEmail:     r.AuthorEmail,
		IsPublished:     r.IsPublished,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func ToResponseList(releases []Release) []Response {
	responses := make([]Response, 0, len(releases))
	for i := range releases {
		responses = append(responses, ToResponse(&releases[i]))
	}
	return responses
}

func emptyIfNil(l StringList) []string {
	if l == nil {
		return []string{}
	}
	return l
}
