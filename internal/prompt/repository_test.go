// AngelaMos | 2026
// repository_test.go

package prompt

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantDup bool
		wantFK  bool
	}{
		{
			name:    "unique violation",
			err:     fmt.Errorf("create category: %w", &pgconn.PgError{Code: "23505"}),
			wantDup: true,
		},
		{
			name:   "foreign key violation",
			err:    fmt.Errorf("create prompt: %w", &pgconn.PgError{Code: "23503"}),
			wantFK: true,
		},
		{
			name: "other pg error",
			err:  fmt.Errorf("query: %w", &pgconn.PgError{Code: "57014"}),
		},
		{
			name: "non-pg error",
			err:  errors.New("connection reset"),
		},
		{
			name: "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKeyError(tt.err); got != tt.wantDup {
				t.Errorf("isDuplicateKeyError = %v, want %v", got, tt.wantDup)
			}
			if got := isForeignKeyError(tt.err); got != tt.wantFK {
				t.Errorf("isForeignKeyError = %v, want %v", got, tt.wantFK)
			}
		})
	}
}
