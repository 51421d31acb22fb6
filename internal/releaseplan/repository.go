// AngelaMos | 2026
// repository.go

package releaseplan

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
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListPlansParams) ([]Plan, int, error)
	ExistsByProjectVersion(
		ctx context.Context,
		projectID, version, excludeID string,
	) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const planColumns = `
	id, project_id, project_name, project_code, version, planned_date,
	status, priority, estimated_hours,
	assignee_id, assignee_name, assignee_email,
	features, dependencies, risks,
	creator_id, creator_name, creator_email,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, plan *Plan) error {
	query := `
		INSERT INTO release_plans (
			id, project_id, project_name, project_code, version, planned_date,
			status, priority, estimated_hours,
			assignee_id, assignee_name, assignee_email,
			features, dependencies, risks,
			creator_id, creator_name, creator_email
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, plan, query,
		plan.ID,
		plan.ProjectID,
		plan.ProjectName,
		plan.ProjectCode,
		plan.Version,
		plan.PlannedDate,
		plan.Status,
		plan.Priority,
		plan.EstimatedHours,
		plan.AssigneeID,
		plan.AssigneeName,
		plan.AssigneeEmail,
		plan.Features,
		plan.Dependencies,
		plan.Risks,
		plan.CreatorID,
		plan.CreatorName,
		plan.CreatorEmail,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create release plan: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create release plan: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Plan, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM release_plans WHERE id = $1`,
		planColumns,
	)

	var plan Plan
	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get release plan: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get release plan: %w", err)
	}

	return &plan, nil
}

func (r *repository) Update(ctx context.Context, plan *Plan) error {
	query := `
		UPDATE release_plans
		SET version = $2, planned_date = $3, status = $4, priority = $5,
		    estimated_hours = $6, assignee_id = $7, assignee_name = $8,
		    assignee_email = $9, features = $10, dependencies = $11,
		    risks = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &plan.UpdatedAt, query,
		plan.ID,
		plan.Version,
		plan.PlannedDate,
		plan.Status,
		plan.Priority,
		plan.EstimatedHours,
		plan.AssigneeID,
		plan.AssigneeName,
		plan.AssigneeEmail,
		plan.Features,
		plan.Dependencies,
		plan.Risks,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update release plan: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update release plan: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update release plan: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM release_plans WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete release plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete release plan: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete release plan: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListPlansParams,
) ([]Plan, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.ProjectID != "" {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", argIdx))
		args = append(args, params.ProjectID)
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argIdx))
		args = append(args, params.Priority)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM release_plans WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count release plans: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM release_plans
		WHERE %s
		ORDER BY planned_date ASC
		LIMIT $%d OFFSET $%d`,
		planColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.Limit, params.Offset())

	var plans []Plan
	if err := r.db.SelectContext(ctx, &plans, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list release plans: %w", err)
	}

	return plans, total, nil
}

func (r *repository) ExistsByProjectVersion(
	ctx context.Context,
	projectID, version, excludeID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM release_plans
			WHERE project_id = $1 AND version = $2 AND id != $3
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, projectID, version, excludeID)
	if err != nil {
		return false, fmt.Errorf("check plan version exists: %w", err)
	}

	return exists, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
