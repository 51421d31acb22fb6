// AngelaMos | 2026
// dto.go

package releaseplan

import (
	"time"
)

type AssigneeRequest struct {
	ID    string `json:"id"    validate:"required"`
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type CreatePlanRequest struct {
	ProjectID      string           `json:"project_id"   validate:"required"`
	Version        string           `json:"version"      validate:"required,min=1,max=50"`
	PlannedDate    time.Time        `json:"planned_date" validate:"required"`
	Status         string           `json:"status,omitempty"   validate:"omitempty,oneof=planned in_progress completed cancelled"`
	Priority       string           `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	EstimatedHours int              `json:"estimated_hours"    validate:"required,min=1,max=10000"`
	Assignee       *AssigneeRequest `json:"assignee,omitempty" validate:"omitempty"`
	Features       []string         `json:"features,omitempty"`
	Dependencies   []string         `json:"dependencies,omitempty"`
	Risks          []string         `json:"risks,omitempty"`
}

type UpdatePlanRequest struct {
	Version        *string          `json:"version,omitempty"      validate:"omitempty,min=1,max=50"`
	PlannedDate    *time.Time       `json:"planned_date,omitempty"`
	Status         *string          `json:"status,omitempty"   validate:"omitempty,oneof=planned in_progress completed cancelled"`
	Priority       *string          `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	EstimatedHours *int             `json:"estimated_hours,omitempty" validate:"omitempty,min=1,max=10000"`
	Assignee       *AssigneeRequest `json:"assignee,omitempty" validate:"omitempty"`
	Features       *[]string        `json:"features,omitempty"`
	Dependencies   *[]string        `json:"dependencies,omitempty"`
	Risks          *[]string        `json:"risks,omitempty"`
}

type ListPlansParams struct {
	Page      int
	Limit     int
	ProjectID string
	Status    string
	Priority  string
}

func (p *ListPlansParams) Normalize() {
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

func (p *ListPlansParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Response struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	ProjectName    string     `json:"project_name"`
	ProjectCode    string     `json:"project_code"`
	Version        string     `json:"version"`
	PlannedDate    time.Time  `json:"planned_date"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	EstimatedHours int        `json:"estimated_hours"`
	AssigneeID     *string    `json:"assignee_id,omitempty"`
	AssigneeName   *string    `json:"assignee_name,omitempty"`
	AssigneeEmail  *string    `json:"assignee_email,omitempty"`
	Features       []string   `json:"features"`
	Dependencies   []string   `json:"dependencies"`
	Risks          []string   `json:"risks"`
	CreatorID      string     `json:"creator_id"`
	CreatorName    string     `json:"creator_name"`
	CreatorEmail   string     `json:"creator_email"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToResponse(p *Plan) Response {
	return Response{
		ID:             p.ID,
		ProjectID:      p.ProjectID,
		ProjectName:    p.ProjectName,
		ProjectCode:    p.ProjectCode,
		Version:        p.Version,
		PlannedDate:    p.PlannedDate,
		Status:         p.Status,
		Priority:       p.Priority,
		EstimatedHours: p.EstimatedHours,
		AssigneeID:     p.AssigneeID,
		AssigneeName:   p.AssigneeName,
		AssigneeEmail:  p.AssigneeEmail,
		Features:       emptyIfNil(p.Features),
		Dependencies:   emptyIfNil(p.Dependencies),
		Risks:          emptyIfNil(p.Risks),
		CreatorID:      p.CreatorID,
		CreatorName:    p.CreatorName,
		CreatorEmail:   p.CreatorEmail,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToResponseList(plans []Plan) []Response {
	responses := make([]Response, 0, len(plans))
	for i := range plans {
		responses = append(responses, ToResponse(&plans[i]))
	}
	return responses
}

func emptyIfNil(l StringList) []string {
	if l == nil {
		return []string{}
	}
	return l
}
