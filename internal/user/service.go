// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/auth"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
)

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

func ActorFromContext(ctx context.Context) Actor {
	return Actor{
		ID:   middleware.GetUserID(ctx),
		Role: middleware.GetUserRole(ctx),
	}
}

type Service struct {
	repo       Repository
	activities *activity.Service
}

func NewService(repo Repository, activities *activity.Service) *Service {
	return &Service{repo: repo, activities: activities}
}

// --- auth.UserProvider ---

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name, role string,
) (*auth.UserInfo, error) {
	if !IsValidRole(role) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		IsActive:     true,
		AssignedApps: AppList{},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// --- admin operations ---

func (s *Service) CreateUser(
	ctx context.Context,
	actor Actor,
	req CreateUserRequest,
) (*User, error) {
	role := req.Role
	if role == "" {
		role = RoleBasic
	}

	// Only a super admin may mint another super admin.
	if role == RoleSuperAdmin && !actor.IsSuperAdmin() {
		return nil, fmt.Errorf(
			"create user: super_admin role requires super admin: %w",
			core.ErrForbidden,
		)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         role,
		IsActive:     true,
		AssignedApps: AppList(req.AssignedApps),
	}
	if user.AssignedApps == nil {
		user.AssignedApps = AppList{}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, actor, activity.ActionCreate, "created user "+user.Email)

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	actor Actor,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUpdatePermissions(actor, user, req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.AssignedApps != nil {
		user.AssignedApps = AppList(*req.AssignedApps)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if req.Password != nil {
		passwordHash, hashErr := core.HashPassword(*req.Password)
		if hashErr != nil {
			return nil, fmt.Errorf("hash password: %w", hashErr)
		}
		if err := s.repo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
			return nil, err
		}
	}

	s.recordActivity(ctx, actor, activity.ActionUpdate, "updated user "+user.Email)

	return user, nil
}

// checkUpdatePermissions enforces the escalation rules: basic users edit only
// their own name and password, and anything touching the super_admin role
// requires a super admin caller.
func (s *Service) checkUpdatePermissions(
	actor Actor,
	target *User,
	req UpdateUserRequest,
) error {
	if !actor.IsAdmin() {
		if actor.ID != target.ID {
			return fmt.Errorf("update user: %w", core.ErrForbidden)
		}
		if req.Role != nil || req.IsActive != nil || req.AssignedApps != nil {
			return fmt.Errorf(
				"update user: field requires admin: %w",
				core.ErrForbidden,
			)
		}
		return nil
	}

	touchesSuperAdmin := target.IsSuperAdmin() ||
		(req.Role != nil && *req.Role == RoleSuperAdmin)
	if touchesSuperAdmin && !actor.IsSuperAdmin() {
		return fmt.Errorf(
			"update user: super_admin changes require super admin: %w",
			core.ErrForbidden,
		)
	}

	return nil
}

// DeleteUser permanently removes an account. Self-deletion is always refused,
// and a super admin account is never deletable.
func (s *Service) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if actor.ID == id {
		return fmt.Errorf("delete user: cannot delete own account: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if target.IsSuperAdmin() {
		return fmt.Errorf(
			"delete user: super admin accounts cannot be deleted: %w",
			core.ErrForbidden,
		)
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		return err
	}

	s.recordActivity(ctx, actor, activity.ActionDelete, "deleted user "+target.Email)

	return nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, normalizeEmail(email))
}

func (s *Service) recordActivity(
	ctx context.Context,
	actor Actor,
	action, detail string,
) {
	s.activities.Record(ctx, activity.Entry{
		UserID:   actor.ID,
		UserName: middleware.GetUserName(ctx),
		Action:   action,
		Resource: activity.ResourceUser,
		Detail:   detail,
	})
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ auth.UserProvider = (*Service)(nil)
