// AngelaMos | 2026
// entity.go

package prompt

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Prompt is a reusable text snippet. Lifecycle is soft delete: is_active is
// flipped off, the row stays.
type Prompt struct {
	ID           string     `db:"id"`
	Title        string     `db:"title"`
	Content      string     `db:"content"`
	CategoryID   *string    `db:"category_id"`
	Tags         StringList `db:"tags"`
	IsFavorite   bool       `db:"is_favorite"`
	UsageCount   int        `db:"usage_count"`
	IsActive     bool       `db:"is_active"`
	CreatorID    string     `db:"creator_id"`
	CreatorName  string     `db:"creator_name"`
	CreatorEmail string     `db:"creator_email"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// Category is a node in the prompt category tree. ParentID gives one level
// of nesting; PromptCount is denormalized and maintained on writes, with a
// bulk recount available to repair drift.
type Category struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	ParentID    *string   `db:"parent_id"`
	PromptCount int       `db:"prompt_count"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// StringList is a text array stored as JSONB.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}

	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	return nil
}
