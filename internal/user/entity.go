// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
)

// User is an account record. Deletion policy is hard delete, gated to
// super admins; deactivation is the soft path via is_active.
type User struct {
	ID                  string     `db:"id"`
	Email               string     `db:"email"`
	PasswordHash        string     `db:"password_hash"`
	Name                string     `db:"name"`
	Role                string     `db:"role"`
	IsActive            bool       `db:"is_active"`
	AssignedApps        AppList    `db:"assigned_applications"`
	ResetTokenHash      *string    `db:"reset_token_hash"`
	ResetTokenExpiresAt *time.Time `db:"reset_token_expires_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

const (
	RoleBasic      = middleware.RoleBasic
	RoleAdmin      = middleware.RoleAdmin
	RoleSuperAdmin = middleware.RoleSuperAdmin
)

func IsValidRole(role string) bool {
	switch role {
	case RoleBasic, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
