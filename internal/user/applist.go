// AngelaMos | 2026
// applist.go

package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AppList is the per-user application scope, stored as a JSONB array.
type AppList []string

func (a AppList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal app list: %w", err)
	}
	return string(data), nil
}

func (a *AppList) Scan(src any) error {
	if src == nil {
		*a = AppList{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan app list: unsupported type %T", src)
	}

	if err := json.Unmarshal(data, a); err != nil {
		return fmt.Errorf("scan app list: %w", err)
	}
	return nil
}

func (a AppList) Contains(name string) bool {
	for _, app := range a {
		if app == name {
			return true
		}
	}
	return false
}
