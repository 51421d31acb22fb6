// AngelaMos | 2026
// entity.go

package release

import (
	"regexp"
	"time"
)

// Release is a versioned announcement document. The author fields are a
// point-in-time snapshot captured at creation, never synchronized with later
// changes to the user record.
type Release struct {
	ID              string       `db:"id"`
	Title           string       `db:"title"`
	ApplicationName string       `db:"application_name"`
	Version         *string      `db:"version"`
	Status          string       `db:"status"`
	Type            string       `db:"type"`
	Description     string       `db:"description"`
	Features        StringList   `db:"features"`
	BugFixes        StringList   `db:"bug_fixes"`
	BreakingChanges StringList   `db:"breaking_changes"`
	WorkItems       WorkItemList `db:"work_items"`
	AuthorID        string       `db:"author_id"`
	AuthorName      string       `db:"author_name"`
	AuthorEmail     string       `db:"author_email"`
	IsPublished     bool         `db:"is_published"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

const (
	StatusDraft      = "draft"
	StatusBeta       = "beta"
	StatusStable     = "stable"
	StatusDeprecated = "deprecated"
)

const (
	TypeMajor  = "major"
	TypeMinor  = "minor"
	TypePatch  = "patch"
	TypeHotfix = "hotfix"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusBeta, StatusStable, StatusDeprecated:
		return true
	}
	return false
}

func IsValidType(t string) bool {
	switch t {
	case TypeMajor, TypeMinor, TypePatch, TypeHotfix:
		return true
	}
	return false
}

// semverPattern requires all three numeric segments; "1.0" is rejected.
var semverPattern = regexp.MustCompile(
	`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`,
)

func IsValidVersion(version string) bool {
	return semverPattern.MatchString(version)
}

// WorkItem is a typed node embedded in a release. ParentID, when set, refers
// to another work item's ID within the same release.
type WorkItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	ExternalID  string    `json:"external_id,omitempty"`
	FlagName    string    `json:"flag_name,omitempty"`
	Remarks     string    `json:"remarks,omitempty"`
	Hyperlink   string    `json:"hyperlink,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	ActualHours *float64  `json:"actual_hours,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	WorkItemEpic      = "epic"
	WorkItemFeature   = "feature"
	WorkItemUserStory = "user_story"
	WorkItemBug       = "bug"
	WorkItemIncident  = "incident"
)

// workItemPriority is the fixed display/export sort order across types.
var workItemPriority = map[string]int{
	WorkItemEpic:      0,
	WorkItemFeature:   1,
	WorkItemUserStory: 2,
	WorkItemBug:       3,
	WorkItemIncident:  4,
}

var workItemLabels = map[string]string{
	WorkItemEpic:      "Epic",
	WorkItemFeature:   "Feature",
	WorkItemUserStory: "User Story",
	WorkItemBug:       "Bug",
	WorkItemIncident:  "Incident",
}

func IsValidWorkItemType(t string) bool {
	_, ok := workItemPriority[t]
	return ok
}

// TypePriority returns the sort rank for a work item type. Unknown types
// sort last.
func TypePriority(t string) int {
	if p, ok := workItemPriority[t]; ok {
		return p
	}
	return len(workItemPriority)
}

// TypeLabel returns the display label for a work item type.
func TypeLabel(t string) string {
	if label, ok := workItemLabels[t]; ok {
		return label
	}
	return t
}
