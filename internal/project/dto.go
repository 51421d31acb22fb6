// AngelaMos | 2026
// dto.go

package project

import (
	"time"
)

type CreateProjectRequest struct {
	Name          string     `json:"name"       validate:"required,min=1,max=200"`
	Code          string     `json:"code"       validate:"required,min=2,max=20"`
	Status        string     `json:"status,omitempty" validate:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate     time.Time  `json:"start_date" validate:"required"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	TeamMembers   []string   `json:"team_members,omitempty"`
	Technologies  []string   `json:"technologies,omitempty"`
	RepositoryURL *string    `json:"repository_url,omitempty" validate:"omitempty,url,max=500"`
}

type UpdateProjectRequest struct {
	Name          *string    `json:"name,omitempty"   validate:"omitempty,min=1,max=200"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	TeamMembers   *[]string  `json:"team_members,omitempty"`
	Technologies  *[]string  `json:"technologies,omitempty"`
	RepositoryURL *string    `json:"repository_url,omitempty" validate:"omitempty,url,max=500"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

type ListProjectsParams struct {
	Page     int
	Limit    int
	Status   string
	Search   string
	IsActive *bool
}

func (p *ListProjectsParams) Normalize() {
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

func (p *ListProjectsParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Response struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Code          string     `json:"code"`
	Status        string     `json:"status"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	ManagerID     string     `json:"manager_id"`
	ManagerName   string     `json:"manager_name"`
	ManagerEmail  string     `json:"manager_email"`
	TeamMembers   []string   `json:"team_members"`
	Technologies  []string   `json:"technologies"`
	RepositoryURL *string    `json:"repository_url,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func ToResponse(p *Project) Response {
	members := p.TeamMembers
	if members == nil {
		members = StringList{}
	}
	techs := p.Technologies
	if techs == nil {
		techs = StringList{}
	}
	return Response{
		ID:            p.ID,
		Name:          p.Name,
		Code:          p.Code,
		Status:        p.Status,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		ManagerID:     p.ManagerID,
		ManagerName:   p.ManagerName,
		ManagerEmail:  p.ManagerEmail,
		TeamMembers:   members,
		Technologies:  techs,
		RepositoryURL: p.RepositoryURL,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToResponseList(projects []Project) []Response {
	responses := make([]Response, 0, len(projects))
	for i := range projects {
		responses = append(responses, ToResponse(&projects[i]))
	}
	return responses
}
