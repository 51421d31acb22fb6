// AngelaMos | 2026
// repository.go

package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, entry *Activity) error
	List(ctx context.Context, params ListParams) ([]Activity, int, error)
	CountByAction(ctx context.Context) ([]ActionCount, error)
	CountByResource(ctx context.Context) ([]ResourceCount, error)
	TopUsers(ctx context.Context, limit int) ([]UserCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, entry *Activity) error {
	query := `
		INSERT INTO activities (
			id, user_id, user_name, action, resource, detail, application_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &entry.CreatedAt, query,
		entry.ID,
		entry.UserID,
		entry.UserName,
		entry.Action,
		entry.Resource,
		entry.Detail,
		entry.ApplicationName,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Activity, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, params.UserID)
		argIdx++
	}

	if params.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, params.Action)
		argIdx++
	}

	if params.Resource != "" {
		conditions = append(conditions, fmt.Sprintf("resource = $%d", argIdx))
		args = append(args, params.Resource)
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

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM activities WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, user_name, action, resource, detail,
		       application_name, created_at
		FROM activities
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.Limit, params.Offset())

	var activities []Activity
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}

	return activities, total, nil
}

type ActionCount struct {
	Action string `db:"action" json:"action"`
	Count  int    `db:"count"  json:"count"`
}

type ResourceCount struct {
	Resource string `db:"resource" json:"resource"`
	Count    int    `db:"count"    json:"count"`
}

type UserCount struct {
	UserID   string `db:"user_id"   json:"user_id"`
	UserName string `db:"user_name" json:"user_name"`
	Count    int    `db:"count"     json:"count"`
}

func (r *repository) CountByAction(ctx context.Context) ([]ActionCount, error) {
	query := `
		SELECT action, COUNT(*) AS count
		FROM activities
		GROUP BY action
		ORDER BY count DESC`

	var counts []ActionCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count activities by action: %w", err)
	}

	return counts, nil
}

func (r *repository) CountByResource(
	ctx context.Context,
) ([]ResourceCount, error) {
	query := `
		SELECT resource, COUNT(*) AS count
		FROM activities
		GROUP BY resource
		ORDER BY count DESC`

	var counts []ResourceCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count activities by resource: %w", err)
	}

	return counts, nil
}

func (r *repository) TopUsers(
	ctx context.Context,
	limit int,
) ([]UserCount, error) {
	query := `
		SELECT user_id, user_name, COUNT(*) AS count
		FROM activities
		GROUP BY user_id, user_name
		ORDER BY count DESC
		LIMIT $1`

	var counts []UserCount
	if err := r.db.SelectContext(ctx, &counts, query, limit); err != nil {
		return nil, fmt.Errorf("top activity users: %w", err)
	}

	return counts, nil
}
