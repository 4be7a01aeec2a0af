package search

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Filters holds the extracted filters and the remaining clean query.
type Filters struct {
	Sender string     // from:<username>
	Kind   string     // kind:<text|image|file>
	Before *time.Time // before:<YYYY-MM-DD>
	After  *time.Time // after:<YYYY-MM-DD>
	Query  string     // remaining text matched against content
}

// ParseQuery extracts filter tokens from the raw query string.
// Supported:
//
//	from:<username>    -> filter by sender
//	kind:<kind>        -> filter by message kind
//	before:<date>      -> messages created before the date
//	after:<date>       -> messages created after the date
//	<text>             -> remaining text is the content query
//
// Unparseable tokens stay in the text query rather than failing the search.
func ParseQuery(raw string) Filters {
	filters := Filters{}
	parts := strings.Fields(raw)
	var cleanParts []string

	for _, part := range parts {
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(lowerPart, "from:"):
			filters.Sender = strings.TrimPrefix(lowerPart, "from:")
		case strings.HasPrefix(lowerPart, "kind:"):
			filters.Kind = strings.TrimPrefix(lowerPart, "kind:")
		case strings.HasPrefix(lowerPart, "before:"):
			if t, err := time.Parse(dateLayout, strings.TrimPrefix(lowerPart, "before:")); err == nil {
				filters.Before = &t
			} else {
				cleanParts = append(cleanParts, part)
			}
		case strings.HasPrefix(lowerPart, "after:"):
			if t, err := time.Parse(dateLayout, strings.TrimPrefix(lowerPart, "after:")); err == nil {
				filters.After = &t
			} else {
				cleanParts = append(cleanParts, part)
			}
		default:
			cleanParts = append(cleanParts, part)
		}
	}

	filters.Query = strings.Join(cleanParts, " ")
	return filters
}
