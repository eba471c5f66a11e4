package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// bom lets spreadsheet programs detect UTF-8.
const bom = "\ufeff"

// WriteCSV writes t as UTF-8 CSV with a byte order mark.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
