// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Email        string   `json:"email"    validate:"required,email,max=255"`
	Name         string   `json:"name"     validate:"required,min=1,max=100"`
	Password     string   `json:"password" validate:"required,min=6,max=128"`
	Role         string   `json:"role,omitempty" validate:"omitempty,oneof=basic admin super_admin"`
	AssignedApps []string `json:"assigned_applications,omitempty" validate:"omitempty,dive,min=1,max=100"`
}

type UpdateUserRequest struct {
	Name         *string   `json:"name,omitempty"      validate:"omitempty,min=1,max=100"`
	Role         *string   `json:"role,omitempty"      validate:"omitempty,oneof=basic admin super_admin"`
	IsActive     *bool     `json:"is_active,omitempty"`
	AssignedApps *[]string `json:"assigned_applications,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Password     *string   `json:"password,omitempty"  validate:"omitempty,min=6,max=128"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Search   string `json:"search"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

func (p *ListUsersParams) Normalize() {
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

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Response struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	AssignedApps []string  `json:"assigned_applications"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToResponse(u *User) Response {
	apps := u.AssignedApps
	if apps == nil {
		apps = AppList{}
	}
	return Response{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		IsActive:     u.IsActive,
		AssignedApps: apps,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func ToResponseList(users []User) []Response {
	responses := make([]Response, 0, len(users))
	for i := range users {
		responses = append(responses, ToResponse(&users[i]))
	}
	return responses
}
