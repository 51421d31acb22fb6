// AngelaMos | 2026
// entity.go

package activity

import (
	"time"
)

// Activity is an append-only audit record. Rows are never updated or deleted
// after insert.
type Activity struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	UserName        string    `db:"user_name"`
	Action          string    `db:"action"`
	Resource        string    `db:"resource"`
	Detail          string    `db:"detail"`
	ApplicationName *string   `db:"application_name"`
	CreatedAt       time.Time `db:"created_at"`
}

const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionView          = "view"
	ActionLogin         = "login"
	ActionRegister      = "register"
	ActionPasswordReset = "password_reset"
	ActionExport        = "export"
	ActionPublish       = "publish"
)

const (
	ResourceUser           = "user"
	ResourceRelease        = "release"
	ResourceProject        = "project"
	ResourceReleasePlan    = "release_plan"
	ResourcePrompt         = "prompt"
	ResourcePromptCategory = "prompt_category"
	ResourceApplication    = "application"
	ResourceActivity       = "activity"
	ResourceAuth           = "auth"
)

var validActions = map[string]struct{}{
	ActionCreate:        {},
	ActionUpdate:        {},
	ActionDelete:        {},
	ActionView:          {},
	ActionLogin:         {},
	ActionRegister:      {},
	ActionPasswordReset: {},
	ActionExport:        {},
	ActionPublish:       {},
}

func IsValidAction(action string) bool {
	_, ok := validActions[action]
	return ok
}
