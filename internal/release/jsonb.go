// AngelaMos | 2026
// jsonb.go

package release

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
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
	return scanJSON(src, l, "string list")
}

// WorkItemList is the embedded work-item array stored as JSONB.
type WorkItemList []WorkItem

func (l WorkItemList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal work items: %w", err)
	}
	return string(data), nil
}

func (l *WorkItemList) Scan(src any) error {
	return scanJSON(src, l, "work items")
}

func scanJSON(src, dest any, what string) error {
	if src == nil {
		return json.Unmarshal([]byte("[]"), dest)
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan %s: unsupported type %T", what, src)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("scan %s: %w", what, err)
	}
	return nil
}
