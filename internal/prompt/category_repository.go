// AngelaMos | 2026
// category_repository.go

package prompt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]Category, error)
	ReparentChildren(ctx context.Context, fromParentID string, to *string) error
	RecountPrompts(ctx context.Context) error
	AdjustPromptCount(ctx context.Context, id string, delta int) error
}

type categoryRepository struct {
	db core.DBTX
}

func NewCategoryRepository(db core.DBTX) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `
	id, name, description, parent_id, prompt_count, is_active,
	created_at, updated_at`

func (r *categoryRepository) Create(
	ctx context.Context,
	category *Category,
) error {
	query := `
		INSERT INTO prompt_categories (
			id, name, description, parent_id, is_active
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING prompt_count, created_at, updated_at`

	err := r.db.GetContext(ctx, category, query,
		category.ID,
		category.Name,
		category.Description,
		category.ParentID,
		category.IsActive,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetByID(
	ctx context.Context,
	id string,
) (*Category, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM prompt_categories WHERE id = $1 AND is_active = true`,
		categoryColumns,
	)

	var category Category
	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) Update(
	ctx context.Context,
	category *Category,
) error {
	query := `
		UPDATE prompt_categories
		SET name = $2, description = $3, parent_id = $4, updated_at = NOW()
		WHERE id = $1 AND is_active = true
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &category.UpdatedAt, query,
		category.ID,
		category.Name,
		category.Description,
		category.ParentID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update category: %w", err)
	}

	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM prompt_categories WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]Category, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM prompt_categories
		WHERE is_active = true
		ORDER BY name ASC`,
		categoryColumns)

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

// ReparentChildren moves all direct children of one category under another
// (or to the root when to is nil).
func (r *categoryRepository) ReparentChildren(
	ctx context.Context,
	fromParentID string,
	to *string,
) error {
	query := `
		UPDATE prompt_categories
		SET parent_id = $2, updated_at = NOW()
		WHERE parent_id = $1`

	if _, err := r.db.ExecContext(ctx, query, fromParentID, to); err != nil {
		return fmt.Errorf("reparent categories: %w", err)
	}

	return nil
}

// RecountPrompts rebuilds every category's denormalized prompt_count from
// the live prompt rows in one pass.
func (r *categoryRepository) RecountPrompts(ctx context.Context) error {
	query := `
		UPDATE prompt_categories c
		SET prompt_count = (
			SELECT COUNT(*)
			FROM prompts p
			WHERE p.category_id = c.id AND p.is_active = true
		),
		updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("recount prompts: %w", err)
	}

	return nil
}

func (r *categoryRepository) AdjustPromptCount(
	ctx context.Context,
	id string,
	delta int,
) error {
	query := `
		UPDATE prompt_categories
		SET prompt_count = GREATEST(prompt_count + $2, 0), updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, delta); err != nil {
		return fmt.Errorf("adjust prompt count: %w", err)
	}

	return nil
}
