package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/manut/internal/ports/primary"
)

// parseDate parses an ISO date flag value.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

// dateFlag reads an ISO date flag, defaulting to today when it is empty.
func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return parseDate(value)
}

// dateRange reads --from and --to.
func dateRange(cmd *cobra.Command) (from, to time.Time, err error) {
	if from, err = dateFlag(cmd, "from"); err != nil {
		return
	}
	to, err = dateFlag(cmd, "to")
	return
}

func addDateRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "first day, YYYY-MM-DD (default today)")
	cmd.Flags().String("to", "", "last day, YYYY-MM-DD (default today)")
}

// optionalInt returns nil when the flag was not given.
func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// parseID parses a positive numeric id argument.
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

// parseItemSpec parses "ITEM:STATUS[:NOTE]" where ITEM is a catalog id or
// an item name. The note may contain colons.
func parseItemSpec(spec string) (primary.ReportItemInput, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return primary.ReportItemInput{}, fmt.Errorf("invalid item %q (want ITEM:STATUS[:NOTE])", spec)
	}

	in := primary.ReportItemInput{Status: strings.TrimSpace(parts[1])}
	if id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64); err == nil {
		in.ItemID = id
	} else {
		in.Name = strings.TrimSpace(parts[0])
	}
	if len(parts) == 3 {
		in.Note = parts[2]
	}
	return in, nil
}
