// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

// memoryRepo is an in-memory Repository for permission tests.
type memoryRepo struct {
	users   map[string]*User
	deleted []string
}

func newMemoryRepo(users ...*User) *memoryRepo {
	m := &memoryRepo{users: make(map[string]*User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryRepo) Create(_ context.Context, user *User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (m *memoryRepo) Update(_ context.Context, user *User) error {
	if _, ok := m.users[user.ID]; !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = hash
	return nil
}

func (m *memoryRepo) HardDelete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memoryRepo) List(_ context.Context, _ ListUsersParams) ([]User, int, error) {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *memoryRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// noopActivityRepo satisfies activity.Repository so recorded entries go
// nowhere during tests.
type noopActivityRepo struct{}

func (noopActivityRepo) Insert(context.Context, *activity.Activity) error { return nil }
func (noopActivityRepo) List(context.Context, activity.ListParams) ([]activity.Activity, int, error) {
	return nil, 0, nil
}
func (noopActivityRepo) CountByAction(context.Context) ([]activity.ActionCount, error) {
	return nil, nil
}
func (noopActivityRepo) CountByResource(context.Context) ([]activity.ResourceCount, error) {
	return nil, nil
}
func (noopActivityRepo) TopUsers(context.Context, int) ([]activity.UserCount, error) {
	return nil, nil
}

func testService(users ...*User) (*Service, *memoryRepo) {
	repo := newMemoryRepo(users...)
	return NewService(repo, activity.NewService(noopActivityRepo{})), repo
}

func testUser(id, role string) *User {
	return &User{
		ID:       id,
		Email:    id + "@example.com",
		Name:     "User " + id,
		Role:     role,
		IsActive: true,
	}
}

func strPtr(s string) *string { return &s }

func TestCreateUser_SuperAdminRoleRequiresSuperAdmin(t *testing.T) {
	svc, _ := testService()

	req := CreateUserRequest{
		Email:    "new@example.com",
		Password: "secret1",
		Name:     "New",
		Role:     RoleSuperAdmin,
	}

	_, err := svc.CreateUser(context.Background(), Actor{ID: "a1", Role: RoleAdmin}, req)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("admin minting super_admin: got %v, want ErrForbidden", err)
	}

	created, err := svc.CreateUser(
		context.Background(),
		Actor{ID: "sa", Role: RoleSuperAdmin},
		req,
	)
	if err != nil {
		t.Fatalf("super admin minting super_admin: %v", err)
	}
	if created.Role != RoleSuperAdmin {
		t.Errorf("role = %q, want super_admin", created.Role)
	}
}

func TestCreateUser_DefaultsToBasic(t *testing.T) {
	svc, _ := testService()

	created, err := svc.CreateUser(
		context.Background(),
		Actor{ID: "a1", Role: RoleAdmin},
		CreateUserRequest{Email: "x@example.com", Password: "secret1", Name: "X"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if created.Role != RoleBasic {
		t.Errorf("role = %q, want basic", created.Role)
	}
	if created.AssignedApps == nil {
		t.Error("assigned applications must default to an empty list")
	}
}

func TestUpdateUser_BasicUserSelfOnly(t *testing.T) {
	target := testUser("u1", RoleBasic)
	other := testUser("u2", RoleBasic)
	svc, _ := testService(target, other)

	// Another basic user may not touch the target.
	_, err := svc.UpdateUser(
		context.Background(),
		Actor{ID: "u2", Role: RoleBasic},
		"u1",
		UpdateUserRequest{Name: strPtr("Hacked")},
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("cross-user edit: got %v, want ErrForbidden", err)
	}

	// Self-edit of name is allowed.
	updated, err := svc.UpdateUser(
		context.Background(),
		Actor{ID: "u1", Role: RoleBasic},
		"u1",
		UpdateUserRequest{Name: strPtr("Renamed")},
	)
	if err != nil {
		t.Fatalf("self name edit: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", updated.Name)
	}

	// Self-edit of role is not.
	role := RoleAdmin
	_, err = svc.UpdateUser(
		context.Background(),
		Actor{ID: "u1", Role: RoleBasic},
		"u1",
		UpdateUserRequest{Role: &role},
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("self role escalation: got %v, want ErrForbidden", err)
	}
}

func TestUpdateUser_SuperAdminChangesRequireSuperAdmin(t *testing.T) {
	superTarget := testUser("sa1", RoleSuperAdmin)
	basicTarget := testUser("u1", RoleBasic)
	svc, _ := testService(superTarget, basicTarget)

	admin := Actor{ID: "a1", Role: RoleAdmin}

	// Admin may not edit a super admin account.
	_, err := svc.UpdateUser(
		context.Background(),
		admin,
		"sa1",
		UpdateUserRequest{Name: strPtr("X")},
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("admin editing super admin: got %v, want ErrForbidden", err)
	}

	// Admin may not promote anyone to super admin.
	role := RoleSuperAdmin
	_, err = svc.UpdateUser(
		context.Background(),
		admin,
		"u1",
		UpdateUserRequest{Role: &role},
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("admin promoting to super admin: got %v, want ErrForbidden", err)
	}

	// A super admin may do both.
	if _, err = svc.UpdateUser(
		context.Background(),
		Actor{ID: "sa2", Role: RoleSuperAdmin},
		"u1",
		UpdateUserRequest{Role: &role},
	); err != nil {
		t.Fatalf("super admin promotion: %v", err)
	}
}

func TestDeleteUser_SelfDeleteRefused(t *testing.T) {
	svc, repo := testService(testUser("sa1", RoleSuperAdmin))

	err := svc.DeleteUser(
		context.Background(),
		Actor{ID: "sa1", Role: RoleSuperAdmin},
		"sa1",
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("self delete: got %v, want ErrForbidden", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("nothing should have been deleted")
	}
}

func TestDeleteUser_SuperAdminUndeletable(t *testing.T) {
	svc, repo := testService(testUser("sa1", RoleSuperAdmin))

	err := svc.DeleteUser(
		context.Background(),
		Actor{ID: "sa2", Role: RoleSuperAdmin},
		"sa1",
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("deleting super admin: got %v, want ErrForbidden", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("nothing should have been deleted")
	}
}

func TestDeleteUser_HardDelete(t *testing.T) {
	svc, repo := testService(testUser("u1", RoleBasic))

	err := svc.DeleteUser(
		context.Background(),
		Actor{ID: "sa1", Role: RoleSuperAdmin},
		"u1",
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "u1" {
		t.Errorf("deleted = %v, want [u1]", repo.deleted)
	}

	if _, err := svc.GetUser(context.Background(), "u1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("deleted user lookup: got %v, want ErrNotFound", err)
	}
}

func TestCreate_NormalizesEmailAndRejectsBadRole(t *testing.T) {
	svc, _ := testService()

	info, err := svc.Create(context.Background(), "  MiXeD@Example.COM ", "hash", "N", RoleBasic)
	if err != nil {
		t.Fatal(err)
	}
	if info.Email != "mixed@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", info.Email)
	}

	_, err = svc.Create(context.Background(), "a@b.com", "hash", "N", "owner")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("invalid role: got %v, want ErrInvalidInput", err)
	}
}
