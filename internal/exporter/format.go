package exporter

import (
	"fmt"
	"time"
)

const exportDateLayout = "02/01/2006 15:04:05"

// formatFloat formats a cost for CSV output with exactly 2 decimal places,
// so 0.35 and 5 come out as "0.35" and "5.00".
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer for CSV output.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatDate formats a timestamp the way the exports themselves do.
func formatDate(t time.Time) string {
	return t.Format(exportDateLayout)
}
