// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Vimal-ZP/Tracker-sub002/internal/core"
)

// ResetTokenInfo is the subset of a user row needed to drive the
// password-reset flow. Only the token hash is ever stored.
type ResetTokenInfo struct {
	UserID    string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	ExpiresAt time.Time `db:"reset_token_expires_at"`
}

func (t *ResetTokenInfo) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

type Repository interface {
	SetResetToken(
		ctx context.Context,
		userID, tokenHash string,
		expiresAt time.Time,
	) error
	FindByResetTokenHash(
		ctx context.Context,
		tokenHash string,
	) (*ResetTokenInfo, error)
	ClearResetToken(ctx context.Context, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// SetResetToken replaces any previous token: a user holds at most one live
// reset token at a time.
func (r *repository) SetResetToken(
	ctx context.Context,
	userID, tokenHash string,
	expiresAt time.Time,
) error {
	query := `
		UPDATE users
		SET reset_token_hash = $2,
		    reset_token_expires_at = $3,
		    updated_at = NOW()
		WHERE id = $1 AND is_active = true`

	result, err := r.db.ExecContext(ctx, query, userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set reset token: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) FindByResetTokenHash(
	ctx context.Context,
	tokenHash string,
) (*ResetTokenInfo, error) {
	query := `
		SELECT id, email, name, reset_token_expires_at
		FROM users
		WHERE reset_token_hash = $1 AND is_active = true`

	var info ResetTokenInfo
	err := r.db.GetContext(ctx, &info, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find reset token: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find reset token: %w", err)
	}

	return &info, nil
}

func (r *repository) ClearResetToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET reset_token_hash = NULL,
		    reset_token_expires_at = NULL,
		    updated_at = NOW()
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}

	return nil
}
