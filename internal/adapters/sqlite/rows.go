package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/example/manut/internal/core/errs"
)

// rowMapper scans result columns by name. It is built once per result set
// and fails fast when a column a record needs is absent.
type rowMapper struct {
	index map[string]int
	width int
}

func newRowMapper(rows *sql.Rows, required ...string) (*rowMapper, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	m := &rowMapper{index: make(map[string]int, len(cols)), width: len(cols)}
	for i, c := range cols {
		m.index[c] = i
	}
	for _, name := range required {
		if _, ok := m.index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrMissingColumn, name)
		}
	}
	return m, nil
}

// scan reads the current row, storing each named column into its pointer.
// Columns without a pointer are discarded.
func (m *rowMapper) scan(rows *sql.Rows, fields map[string]any) error {
	dest := make([]any, m.width)
	for i := range dest {
		dest[i] = new(any)
	}
	for name, ptr := range fields {
		i, ok := m.index[name]
		if !ok {
			return fmt.Errorf("%w: %s", errs.ErrMissingColumn, name)
		}
		dest[i] = ptr
	}
	return rows.Scan(dest...)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}
