package analysis

import (
	"codescope/internal/syntax"
)

// FilterChanged keeps the records whose line span contains at least one of the
// given 1-based lines.
func FilterChanged(records []syntax.Record, lines []int) []syntax.Record {
	if len(lines) == 0 {
		return nil
	}
	var out []syntax.Record
	for _, r := range records {
		if isAffected(r, lines) {
			out = append(out, r)
		}
	}
	return out
}

func isAffected(r syntax.Record, lines []int) bool {
	for _, line := range lines {
		if line >= int(r.StartLine) && line <= int(r.EndLine) {
			return true
		}
	}
	return false
}
