// AngelaMos | 2026
// csv.go

package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV emits a header row followed by one record per work item. The csv
// writer quotes fields containing commas, quotes, or newlines and doubles
// embedded quotes per RFC 4180.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columnHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		if err := cw.Write(row.fields()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
