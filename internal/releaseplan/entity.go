// AngelaMos | 2026
// entity.go

package releaseplan

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Plan is a forward-looking release commitment for a project. The project,
// assignee, and creator fields are snapshots captured at write time.
type Plan struct {
	ID             string     `db:"id"`
	ProjectID      string     `db:"project_id"`
	ProjectName    string     `db:"project_name"`
	ProjectCode    string     `db:"project_code"`
	Version        string     `db:"version"`
	PlannedDate    time.Time  `db:"planned_date"`
	Status         string     `db:"status"`
	Priority       string     `db:"priority"`
	EstimatedHours int        `db:"estimated_hours"`
	AssigneeID     *string    `db:"assignee_id"`
	AssigneeName   *string    `db:"assignee_name"`
	AssigneeEmail  *string    `db:"assignee_email"`
	Features       StringList `db:"features"`
	Dependencies   StringList `db:"dependencies"`
	Risks          StringList `db:"risks"`
	CreatorID      string     `db:"creator_id"`
	CreatorName    string     `db:"creator_name"`
	CreatorEmail   string     `db:"creator_email"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Effort bounds, in hours.
const (
	MinEstimatedHours = 1
	MaxEstimatedHours = 10000
)

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
