package storage

import (
	"strconv"
	"strings"
)

// dialect holds the backend-specific SQL. Queries are written with ? and
// rebound for drivers that use numbered placeholders.
type dialect struct {
	name         string
	placeholders bool // $1, $2, ... instead of ?
	schema       string
	upsertMax    string // Args: name, value
}

// rebind rewrites ? placeholders as $n when the backend needs it.
func (d dialect) rebind(query string) string {
	if !d.placeholders {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
