// AngelaMos | 2026
// entity.go

package project

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Project is a tracked engineering effort. The manager fields are a snapshot
// captured at write time, not a live reference.
type Project struct {
	ID            string     `db:"id"`
	Name          string     `db:"name"`
	Code          string     `db:"code"`
	Status        string     `db:"status"`
	StartDate     time.Time  `db:"start_date"`
	EndDate       *time.Time `db:"end_date"`
	ManagerID     string     `db:"manager_id"`
	ManagerName   string     `db:"manager_name"`
	ManagerEmail  string     `db:"manager_email"`
	TeamMembers   StringList `db:"team_members"`
	Technologies  StringList `db:"technologies"`
	RepositoryURL *string    `db:"repository_url"`
	IsActive      bool       `db:"is_active"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

const (
	StatusPlanning  = "planning"
	StatusActive    = "active"
	StatusOnHold    = "on_hold"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
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
