// AngelaMos | 2026
// repository.go

package prompt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

type Repository interface {
	Create(ctx context.Context, prompt *Prompt) error
	GetByID(ctx context.Context, id string) (*Prompt, error)
	Update(ctx context.Context, prompt *Prompt) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, params ListPromptsParams) ([]Prompt, int, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
	IncrementUsage(ctx context.Context, id string) (int, error)
	ReassignCategory(ctx context.Context, fromCategoryID string, to *string) error
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	CountByTag(ctx context.Context, limit int) ([]TagCount, error)
	CountByUser(ctx context.Context, limit int) ([]UserCount, error)
	CountByMonth(ctx context.Context) ([]MonthCount, error)
	Totals(ctx context.Context) (total, favorites, totalUsage int, err error)
}

type CategoryCount struct {
	CategoryID *string `db:"category_id" json:"category_id"`
	Count      int     `db:"count"       json:"count"`
}

type TagCount struct {
	Tag   string `db:"tag"   json:"tag"`
	Count int    `db:"count" json:"count"`
}

type UserCount struct {
	CreatorID   string `db:"creator_id"   json:"creator_id"`
	CreatorName string `db:"creator_name" json:"creator_name"`
	Count       int    `db:"count"        json:"count"`
}

type MonthCount struct {
	Month string `db:"month" json:"month"`
	Count int    `db:"count" json:"count"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const promptColumns = `
	id, title, content, category_id, tags, is_favorite, usage_count,
	is_active, creator_id, creator_name, creator_email,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, prompt *Prompt) error {
	query := `
		INSERT INTO prompts (
			id, title, content, category_id, tags, is_favorite, usage_count,
			is_active, creator_id, creator_name, creator_email
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, prompt, query,
		prompt.ID,
		prompt.Title,
		prompt.Content,
		prompt.CategoryID,
		prompt.Tags,
		prompt.IsFavorite,
		prompt.UsageCount,
		prompt.IsActive,
		prompt.CreatorID,
		prompt.CreatorName,
		prompt.CreatorEmail,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create prompt: category: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create prompt: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Prompt, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM prompts WHERE id = $1 AND is_active = true`,
		promptColumns,
	)

	var prompt Prompt
	err := r.db.GetContext(ctx, &prompt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get prompt: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get prompt: %w", err)
	}

	return &prompt, nil
}

func (r *repository) Update(ctx context.Context, prompt *Prompt) error {
	query := `
		UPDATE prompts
		SET title = $2, content = $3, category_id = $4, tags = $5,
		    updated_at = NOW()
		WHERE id = $1 AND is_active = true
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &prompt.UpdatedAt, query,
		prompt.ID,
		prompt.Title,
		prompt.Content,
		prompt.CategoryID,
		prompt.Tags,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update prompt: %w", core.ErrNotFound)
	}
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("update prompt: category: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update prompt: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE prompts
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete prompt: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListPromptsParams,
) ([]Prompt, int, error) {
	params.Normalize()

	conditions := []string{"is_active = true"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR content ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIdx))
		args = append(args, params.CategoryID)
		argIdx++
	}

	if params.Tag != "" {
		conditions = append(conditions, fmt.Sprintf("tags ? $%d", argIdx))
		args = append(args, params.Tag)
		argIdx++
	}

	if params.Favorite != nil {
		conditions = append(conditions, fmt.Sprintf("is_favorite = $%d", argIdx))
		args = append(args, *params.Favorite)
		argIdx++
	}

	if params.CreatorID != "" {
		conditions = append(conditions, fmt.Sprintf("creator_id = $%d", argIdx))
		args = append(args, params.CreatorID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM prompts WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count prompts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM prompts
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		promptColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.Limit, params.Offset())

	var prompts []Prompt
	if err := r.db.SelectContext(ctx, &prompts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list prompts: %w", err)
	}

	return prompts, total, nil
}

func (r *repository) SetFavorite(
	ctx context.Context,
	id string,
	favorite bool,
) error {
	query := `
		UPDATE prompts
		SET is_favorite = $2, updated_at = NOW()
		WHERE id = $1 AND is_active = true`

	result, err := r.db.ExecContext(ctx, query, id, favorite)
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set favorite: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) IncrementUsage(
	ctx context.Context,
	id string,
) (int, error) {
	query := `
		UPDATE prompts
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1 AND is_active = true
		RETURNING usage_count`

	var count int
	err := r.db.GetContext(ctx, &count, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("increment usage: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("increment usage: %w", err)
	}

	return count, nil
}

// ReassignCategory moves all prompts in one category to another (or to no
// category), used when a category is deleted.
func (r *repository) ReassignCategory(
	ctx context.Context,
	fromCategoryID string,
	to *string,
) error {
	query := `
		UPDATE prompts
		SET category_id = $2, updated_at = NOW()
		WHERE category_id = $1`

	if _, err := r.db.ExecContext(ctx, query, fromCategoryID, to); err != nil {
		return fmt.Errorf("reassign prompts: %w", err)
	}

	return nil
}

func (r *repository) CountByCategory(
	ctx context.Context,
) ([]CategoryCount, error) {
	query := `
		SELECT category_id, COUNT(*) AS count
		FROM prompts
		WHERE is_active = true
		GROUP BY category_id
		ORDER BY count DESC`

	var counts []CategoryCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count prompts by category: %w", err)
	}

	return counts, nil
}

func (r *repository) CountByTag(
	ctx context.Context,
	limit int,
) ([]TagCount, error) {
	query := `
		SELECT tag, COUNT(*) AS count
		FROM prompts, jsonb_array_elements_text(tags) AS tag
		WHERE is_active = true
		GROUP BY tag
		ORDER BY count DESC
		LIMIT $1`

	var counts []TagCount
	if err := r.db.SelectContext(ctx, &counts, query, limit); err != nil {
		return nil, fmt.Errorf("count prompts by tag: %w", err)
	}

	return counts, nil
}

func (r *repository) CountByUser(
	ctx context.Context,
	limit int,
) ([]UserCount, error) {
	query := `
		SELECT creator_id, creator_name, COUNT(*) AS count
		FROM prompts
		WHERE is_active = true
		GROUP BY creator_id, creator_name
		ORDER BY count DESC
		LIMIT $1`

	var counts []UserCount
	if err := r.db.SelectContext(ctx, &counts, query, limit); err != nil {
		return nil, fmt.Errorf("count prompts by user: %w", err)
	}

	return counts, nil
}

func (r *repository) CountByMonth(ctx context.Context) ([]MonthCount, error) {
	query := `
		SELECT to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count
		FROM prompts
		WHERE is_active = true
		GROUP BY month
		ORDER BY month DESC
		LIMIT 12`

	var counts []MonthCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count prompts by month: %w", err)
	}

	return counts, nil
}

func (r *repository) Totals(
	ctx context.Context,
) (total, favorites, totalUsage int, err error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE is_favorite) AS favorites,
		       COALESCE(SUM(usage_count), 0) AS total_usage
		FROM prompts
		WHERE is_active = true`

	var row struct {
		Total      int `db:"total"`
		Favorites  int `db:"favorites"`
		TotalUsage int `db:"total_usage"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, 0, fmt.Errorf("prompt totals: %w", err)
	}

	return row.Total, row.Favorites, row.TotalUsage, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
