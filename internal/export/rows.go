// AngelaMos | 2026
// rows.go

// Package export renders a release's ordered work items as downloadable
// files. Row order is exactly the display order: both come from the same
// ordering function.
package export

import (
	"github.com/Vimal-ZP/Tracker-sub002/internal/release"
)

const dateLayout = "2006-01-02"

// Row is one flattened work item ready for file output.
type Row struct {
	Type        string
	ExternalID  string
	Title       string
	FlagName    string
	Remarks     string
	ParentTitle string
	Hyperlink   string
	CreatedAt   string
	UpdatedAt   string
}

var columnHeaders = []string{
	"Type",
	"ID",
	"Title",
	"Flag Name",
	"Remarks",
	"Parent",
	"Hyperlink",
	"Created",
	"Updated",
}

func (r Row) fields() []string {
	return []string{
		r.Type,
		r.ExternalID,
		r.Title,
		r.FlagName,
		r.Remarks,
		r.ParentTitle,
		r.Hyperlink,
		r.CreatedAt,
		r.UpdatedAt,
	}
}

// BuildRows maps work items to export rows. Items must already be in display
// order; parent titles are resolved against the full set, empty when the
// reference cannot be resolved.
func BuildRows(items []release.WorkItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{
			Type:        release.TypeLabel(item.Type),
			ExternalID:  item.ExternalID,
			Title:       item.Title,
			FlagName:    item.FlagName,
			Remarks:     item.Remarks,
			ParentTitle: release.ParentTitle(item, items),
			Hyperlink:   item.Hyperlink,
			CreatedAt:   item.CreatedAt.Format(dateLayout),
			UpdatedAt:   item.UpdatedAt.Format(dateLayout),
		})
	}
	return rows
}
