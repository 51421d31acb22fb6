// AngelaMos | 2026
// service_test.go

package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Vimal-ZP/Tracker-sub002/internal/activity"
	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
	"github.com/Vimal-ZP/Tracker-sub002/internal/middleware"
)

type memoryPromptRepo struct {
	prompts map[string]*Prompt
}

func (m *memoryPromptRepo) Create(_ context.Context, p *Prompt) error {
	m.prompts[p.ID] = p
	return nil
}

func (m *memoryPromptRepo) GetByID(_ context.Context, id string) (*Prompt, error) {
	p, ok := m.prompts[id]
	if !ok || !p.IsActive {
		return nil, fmt.Errorf("get prompt: %w", core.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (m *memoryPromptRepo) Update(_ context.Context, p *Prompt) error {
	existing, ok := m.prompts[p.ID]
	if !ok || !existing.IsActive {
		return fmt.Errorf("update prompt: %w", core.ErrNotFound)
	}
	copied := *p
	m.prompts[p.ID] = &copied
	return nil
}

func (m *memoryPromptRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := m.prompts[id]
	if !ok || !p.IsActive {
		return fmt.Errorf("delete prompt: %w", core.ErrNotFound)
	}
	p.IsActive = false
	return nil
}

func (m *memoryPromptRepo) List(
	_ context.Context,
	_ ListPromptsParams,
) ([]Prompt, int, error) {
	return nil, 0, nil
}

func (m *memoryPromptRepo) SetFavorite(_ context.Context, id string, fav bool) error {
	p, ok := m.prompts[id]
	if !ok || !p.IsActive {
		return fmt.Errorf("set favorite: %w", core.ErrNotFound)
	}
	p.IsFavorite = fav
	return nil
}

func (m *memoryPromptRepo) IncrementUsage(_ context.Context, id string) (int, error) {
	p, ok := m.prompts[id]
	if !ok || !p.IsActive {
		return 0, fmt.Errorf("increment usage: %w", core.ErrNotFound)
	}
	p.UsageCount++
	return p.UsageCount, nil
}

func (m *memoryPromptRepo) ReassignCategory(
	_ context.Context,
	fromCategoryID string,
	to *string,
) error {
	for _, p := range m.prompts {
		if p.CategoryID != nil && *p.CategoryID == fromCategoryID {
			p.CategoryID = to
		}
	}
	return nil
}

func (m *memoryPromptRepo) CountByCategory(context.Context) ([]CategoryCount, error) {
	return nil, nil
}
func (m *memoryPromptRepo) CountByTag(context.Context, int) ([]TagCount, error) {
	return nil, nil
}
func (m *memoryPromptRepo) CountByUser(context.Context, int) ([]UserCount, error) {
	return nil, nil
}
func (m *memoryPromptRepo) CountByMonth(context.Context) ([]MonthCount, error) {
	return nil, nil
}

func (m *memoryPromptRepo) Totals(context.Context) (int, int, int, error) {
	total, favorites, usage := 0, 0, 0
	for _, p := range m.prompts {
		if !p.IsActive {
			continue
		}
		total++
		if p.IsFavorite {
			favorites++
		}
		usage += p.UsageCount
	}
	return total, favorites, usage, nil
}

type memoryCategoryRepo struct {
	prompts    *memoryPromptRepo
	categories map[string]*Category
	recounts   int
}

func (m *memoryCategoryRepo) Create(_ context.Context, c *Category) error {
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
	}
	m.categories[c.ID] = c
	return nil
}

func (m *memoryCategoryRepo) GetByID(_ context.Context, id string) (*Category, error) {
	c, ok := m.categories[id]
	if !ok || !c.IsActive {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (m *memoryCategoryRepo) Update(_ context.Context, c *Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	copied := *c
	m.categories[c.ID] = &copied
	return nil
}

func (m *memoryCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}
	delete(m.categories, id)
	return nil
}

func (m *memoryCategoryRepo) ListAll(context.Context) ([]Category, error) {
	out := make([]Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memoryCategoryRepo) ReparentChildren(
	_ context.Context,
	fromParentID string,
	to *string,
) error {
	for _, c := range m.categories {
		if c.ParentID != nil && *c.ParentID == fromParentID {
			c.ParentID = to
		}
	}
	return nil
}

func (m *memoryCategoryRepo) RecountPrompts(context.Context) error {
	m.recounts++
	for _, c := range m.categories {
		count := 0
		for _, p := range m.prompts.prompts {
			if p.IsActive && p.CategoryID != nil && *p.CategoryID == c.ID {
				count++
			}
		}
		c.PromptCount = count
	}
	return nil
}

func (m *memoryCategoryRepo) AdjustPromptCount(
	_ context.Context,
	id string,
	delta int,
) error {
	c, ok := m.categories[id]
	if !ok {
		return fmt.Errorf("adjust count: %w", core.ErrNotFound)
	}
	c.PromptCount += delta
	if c.PromptCount < 0 {
		c.PromptCount = 0
	}
	return nil
}

type quietActivityRepo struct{}

func (quietActivityRepo) Insert(context.Context, *activity.Activity) error { return nil }
func (quietActivityRepo) List(context.Context, activity.ListParams) ([]activity.Activity, int, error) {
	return nil, 0, nil
}
func (quietActivityRepo) CountByAction(context.Context) ([]activity.ActionCount, error) {
	return nil, nil
}
func (quietActivityRepo) CountByResource(context.Context) ([]activity.ResourceCount, error) {
	return nil, nil
}
func (quietActivityRepo) TopUsers(context.Context, int) ([]activity.UserCount, error) {
	return nil, nil
}

func promptService() (*Service, *memoryPromptRepo, *memoryCategoryRepo) {
	prompts := &memoryPromptRepo{prompts: make(map[string]*Prompt)}
	categories := &memoryCategoryRepo{
		prompts:    prompts,
		categories: make(map[string]*Category),
	}
	svc := NewService(prompts, categories, activity.NewService(quietActivityRepo{}))
	return svc, prompts, categories
}

func userContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, id)
	ctx = context.WithValue(ctx, middleware.UserNameKey, "Name "+id)
	ctx = context.WithValue(ctx, middleware.UserEmailKey, id+"@example.com")
	return context.WithValue(ctx, middleware.UserRoleKey, role)
}

func addCategory(repo *memoryCategoryRepo, id, name string, parentID *string) {
	repo.categories[id] = &Category{
		ID:       id,
		Name:     name,
		ParentID: parentID,
		IsActive: true,
	}
}

func TestUpdatePrompt_OwnershipRule(t *testing.T) {
	svc, _, _ := promptService()

	creator := userContext("creator", middleware.RoleBasic)
	created, err := svc.CreatePrompt(creator, CreatePromptRequest{
		Title:   "Summarize",
		Content: "Summarize the following text",
	})
	if err != nil {
		t.Fatal(err)
	}

	title := "Renamed"

	// A different basic user may not touch it.
	other := userContext("other", middleware.RoleBasic)
	_, err = svc.UpdatePrompt(other, created.ID, UpdatePromptRequest{Title: &title})
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("foreign basic user: got %v, want ErrForbidden", err)
	}

	// The creator may.
	if _, err = svc.UpdatePrompt(creator, created.ID, UpdatePromptRequest{Title: &title}); err != nil {
		t.Fatalf("creator update: %v", err)
	}

	// So may an admin who is not the creator.
	admin := userContext("admin", middleware.RoleAdmin)
	if _, err = svc.UpdatePrompt(admin, created.ID, UpdatePromptRequest{Title: &title}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestDeletePrompt_SoftDelete(t *testing.T) {
	svc, repo, _ := promptService()

	creator := userContext("creator", middleware.RoleBasic)
	created, err := svc.CreatePrompt(creator, CreatePromptRequest{
		Title:   "P",
		Content: "C",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeletePrompt(creator, created.ID); err != nil {
		t.Fatal(err)
	}

	// Gone from reads, still present in storage.
	if _, err := svc.GetPrompt(creator, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("deleted prompt lookup: got %v, want ErrNotFound", err)
	}
	if stored, ok := repo.prompts[created.ID]; !ok || stored.IsActive {
		t.Error("prompt must remain stored with is_active=false")
	}
}

func TestCreatePrompt_UnknownCategoryRejected(t *testing.T) {
	svc, _, _ := promptService()

	missing := "nope"
	_, err := svc.CreatePrompt(
		userContext("u1", middleware.RoleBasic),
		CreatePromptRequest{Title: "P", Content: "C", CategoryID: &missing},
	)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestUpdatePrompt_CategoryMoveAdjustsCounts(t *testing.T) {
	svc, _, categories := promptService()
	addCategory(categories, "c1", "Writing", nil)
	addCategory(categories, "c2", "Coding", nil)

	creator := userContext("creator", middleware.RoleBasic)
	c1 := "c1"
	created, err := svc.CreatePrompt(creator, CreatePromptRequest{
		Title:      "P",
		Content:    "C",
		CategoryID: &c1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if categories.categories["c1"].PromptCount != 1 {
		t.Fatalf("c1 count = %d after create", categories.categories["c1"].PromptCount)
	}

	c2 := "c2"
	if _, err = svc.UpdatePrompt(creator, created.ID, UpdatePromptRequest{CategoryID: &c2}); err != nil {
		t.Fatal(err)
	}
	if categories.categories["c1"].PromptCount != 0 {
		t.Errorf("c1 count = %d after move", categories.categories["c1"].PromptCount)
	}
	if categories.categories["c2"].PromptCount != 1 {
		t.Errorf("c2 count = %d after move", categories.categories["c2"].PromptCount)
	}

	// Clearing with the empty string uncategorizes.
	empty := ""
	updated, err := svc.UpdatePrompt(creator, created.ID, UpdatePromptRequest{CategoryID: &empty})
	if err != nil {
		t.Fatal(err)
	}
	if updated.CategoryID != nil {
		t.Error("category should be cleared")
	}
	if categories.categories["c2"].PromptCount != 0 {
		t.Errorf("c2 count = %d after clear", categories.categories["c2"].PromptCount)
	}
}

func TestToggleFavoriteAndUsage(t *testing.T) {
	svc, _, _ := promptService()

	creator := userContext("creator", middleware.RoleBasic)
	created, err := svc.CreatePrompt(creator, CreatePromptRequest{Title: "P", Content: "C"})
	if err != nil {
		t.Fatal(err)
	}

	toggled, err := svc.ToggleFavorite(creator, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !toggled.IsFavorite {
		t.Error("first toggle should favorite")
	}

	toggled, err = svc.ToggleFavorite(creator, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if toggled.IsFavorite {
		t.Error("second toggle should unfavorite")
	}

	for want := 1; want <= 3; want++ {
		count, usageErr := svc.RecordUsage(creator, created.ID)
		if usageErr != nil {
			t.Fatal(usageErr)
		}
		if count != want {
			t.Errorf("usage count = %d, want %d", count, want)
		}
	}
}

func TestUpdateCategory_SelfParentRejected(t *testing.T) {
	svc, _, categories := promptService()
	addCategory(categories, "c1", "Writing", nil)

	self := "c1"
	_, err := svc.UpdateCategory(
		userContext("admin", middleware.RoleAdmin),
		"c1",
		UpdateCategoryRequest{ParentID: &self},
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	svc, _, _ := promptService()
	admin := userContext("admin", middleware.RoleAdmin)

	if _, err := svc.CreateCategory(admin, CreateCategoryRequest{Name: "Writing"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.CreateCategory(admin, CreateCategoryRequest{Name: "Writing"})
	if !errors.Is(err, ErrCategoryNameTaken) {
		t.Errorf("got %v, want ErrCategoryNameTaken", err)
	}
}

func TestDeleteCategory_ReparentsChildrenAndPrompts(t *testing.T) {
	svc, prompts, categories := promptService()
	addCategory(categories, "root", "Root", nil)
	mid := "mid"
	root := "root"
	addCategory(categories, "mid", "Mid", &root)
	addCategory(categories, "leaf", "Leaf", &mid)

	creator := userContext("creator", middleware.RoleBasic)
	created, err := svc.CreatePrompt(creator, CreatePromptRequest{
		Title:      "P",
		Content:    "C",
		CategoryID: &mid,
	})
	if err != nil {
		t.Fatal(err)
	}

	admin := userContext("admin", middleware.RoleAdmin)
	if err := svc.DeleteCategory(admin, "mid"); err != nil {
		t.Fatal(err)
	}

	// The child hops up to the deleted node's parent.
	if got := categories.categories["leaf"].ParentID; got == nil || *got != "root" {
		t.Errorf("leaf parent = %v, want root", got)
	}
	// The prompt moves with it.
	if got := prompts.prompts[created.ID].CategoryID; got == nil || *got != "root" {
		t.Errorf("prompt category = %v, want root", got)
	}
	// Counters were rebuilt.
	if categories.recounts == 0 {
		t.Error("expected a recount after delete")
	}
	if categories.categories["root"].PromptCount != 1 {
		t.Errorf("root count = %d, want 1", categories.categories["root"].PromptCount)
	}
}

func TestDeleteCategory_RootPromptsUncategorized(t *testing.T) {
	svc, prompts, categories := promptService()
	addCategory(categories, "solo", "Solo", nil)

	creator := userContext("creator", middleware.RoleBasic)
	solo := "solo"
	created, err := svc.CreatePrompt(creator, CreatePromptRequest{
		Title:      "P",
		Content:    "C",
		CategoryID: &solo,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteCategory(userContext("admin", middleware.RoleAdmin), "solo"); err != nil {
		t.Fatal(err)
	}

	if got := prompts.prompts[created.ID].CategoryID; got != nil {
		t.Errorf("prompt category = %v, want nil", got)
	}
}
