package app

import "strings"

// Queries recorded on spans are flattened to one line and truncated so a
// bulk prediction upsert cannot bloat the trace payload.
const maxTracedQueryLength = 512

func formatDBQueryForTrace(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}

	normalized := strings.Join(fields, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
