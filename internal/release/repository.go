// AngelaMos | 2026
// repository.go

package release

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
	Create(ctx context.Context, release *Release) error
	GetByID(ctx context.Context, id string) (*Release, error)
	Update(ctx context.Context, release *Release) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListReleasesParams) ([]Release, int, error)
	VersionExists(ctx context.Context, version, excludeID string) (bool, error)
	SearchCandidates(ctx context.Context, query string, limit int) ([]Release, error)
	CountByApplication(ctx context.Context) ([]ApplicationCount, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
	CountByMonth(ctx context.Context) ([]MonthCount, error)
	Totals(ctx context.Context) (total, published int, err error)
}

type ApplicationCount struct {
	ApplicationName string `db:"application_name" json:"application_name"`
	Count           int    `db:"count"            json:"count"`
}

type TypeCount struct {
	Type  string `db:"type"  json:"type"`
	Count int    `db:"count" json:"count"`
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

const releaseColumns = `
	id, title, application_name, version, status, type, description,
	features, bug_fixes, breaking_changes, work_items,
	author_id, author_name, author_email, is_published,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, release *Release) error {
	query := `
		INSERT INTO releases (
			id, title, application_name, version, status, type, description,
			features, bug_fixes, breaking_changes, work_items,
			author_id, author_name, author_email, is_published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, release, query,
		release.ID,
		release.Title,
		release.ApplicationName,
		release.Version,
		release.Status,
		release.Type,
		release.Description,
		release.Features,
		release.BugFixes,
		release.BreakingChanges,
		release.WorkItems,
		release.AuthorID,
		release.AuthorName,
		release.AuthorEmail,
		release.IsPublished,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create release: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create release: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Release, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM releases WHERE id = $1`,
		releaseColumns,
	)

	var release Release
	err := r.db.GetContext(ctx, &release, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get release: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get release: %w", err)
	}

	return &release, nil
}

func (r *repository) Update(ctx context.Context, release *Release) error {
	query := `
		UPDATE releases
		SET title = $2, application_name = $3, version = $4, status = $5,
		    type = $6, description = $7, features = $8, bug_fixes = $9,
		    breaking_changes = $10, work_items = $11, is_published = $12,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &release.UpdatedAt, query,
		release.ID,
		release.Title,
		release.ApplicationName,
		release.Version,
		release.Status,
		release.Type,
		release.Description,
		release.Features,
		release.BugFixes,
		release.BreakingChanges,
		release.WorkItems,
		release.IsPublished,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update release: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update release: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update release: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM releases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete release: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete release: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete release: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListReleasesParams,
) ([]Release, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, params.Type)
		argIdx++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR application_name ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}

	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	if params.Published != nil {
		conditions = append(conditions, fmt.Sprintf("is_published = $%d", argIdx))
		args = append(args, *params.Published)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM releases WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count releases: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM releases
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		releaseColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.Limit, params.Offset())

	var releases []Release
	if err := r.db.SelectContext(ctx, &releases, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list releases: %w", err)
	}

	return releases, total, nil
}

func (r *repository) VersionExists(
	ctx context.Context,
	version, excludeID string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM releases WHERE version = $1 AND id != $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, version, excludeID); err != nil {
		return false, fmt.Errorf("check version exists: %w", err)
	}

	return exists, nil
}

// SearchCandidates over-fetches releases whose embedded work items contain
// the query text anywhere; per-item matching and ranking happen in memory.
func (r *repository) SearchCandidates(
	ctx context.Context,
	query string,
	limit int,
) ([]Release, error) {
	sqlQuery := fmt.Sprintf(`
		SELECT %s
		FROM releases
		WHERE work_items::text ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`,
		releaseColumns)

	var releases []Release
	err := r.db.SelectContext(
		ctx,
		&releases,
		sqlQuery,
		"%"+escapeLike(query)+"%",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search releases: %w", err)
	}

	return releases, nil
}

func (r *repository) CountByApplication(
	ctx context.Context,
) ([]ApplicationCount, error) {
	query := `
		SELECT application_name, COUNT(*) AS count
		FROM releases
		GROUP BY application_name
		ORDER BY count DESC`

	var counts []ApplicationCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count releases by application: %w", err)
	}

	return counts, nil
}

func (r *repository) CountByType(ctx context.Context) ([]TypeCount, error) {
	query := `
		SELECT type, COUNT(*) AS count
		FROM releases
		GROUP BY type
		ORDER BY count DESC`

	var counts []TypeCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count releases by type: %w", err)
	}

	return counts, nil
}

func (r *repository) CountByMonth(ctx context.Context) ([]MonthCount, error) {
	query := `
		SELECT to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count
		FROM releases
		GROUP BY month
		ORDER BY month DESC
		LIMIT 12`

	var counts []MonthCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count releases by month: %w", err)
	}

	return counts, nil
}

func (r *repository) Totals(
	ctx context.Context,
) (total, published int, err error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE is_published) AS published
		FROM releases`

	var row struct {
		Total     int `db:"total"`
		Published int `db:"published"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, fmt.Errorf("release totals: %w", err)
	}

	return row.Total, row.Published, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
