// Package match resolves a caller-supplied event name, and optionally a
// date, to at most one catalog entry.
package match

import (
	"strings"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"ticket-fulfillment/internal/catalog"
	"ticket-fulfillment/internal/domain"
)

// DefaultThreshold is the minimum similarity score a candidate has to reach.
const DefaultThreshold = 75

// Outcome classifies a match attempt.
type Outcome int

const (
	// Matched means exactly one available catalog entry was resolved.
	Matched Outcome = iota
	// MissingName means the caller supplied no event name at all.
	MissingName
	// NoEventOnDate means the date filter applied and left zero candidates.
	NoEventOnDate
	// NoMatch means no candidate cleared the similarity threshold.
	NoMatch
	// Unavailable means a candidate was resolved but is sold out.
	Unavailable
)

// Result carries the resolved entry and the score that produced it. Event
// is only meaningful for Matched and Unavailable.
type Result struct {
	Outcome Outcome
	Event   domain.Event
	Score   int
	// Date is the parsed filter date (YYYY-MM-DD), empty when no usable
	// date was supplied.
	Date string
}

// Matcher scores catalog entries against caller-supplied names.
type Matcher struct {
	catalog   *catalog.Catalog
	threshold int
}

func New(c *catalog.Catalog, threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{catalog: c, threshold: threshold}
}

// dateLayouts are tried in order. Dialogflow CX sends date parameters
// either as plain calendar dates or as timestamps with a zone offset.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// ParseDate normalizes a caller-supplied date to YYYY-MM-DD. The second
// return value is false when the input is empty or unparseable; a bad date
// never fails the request, it only disables the date filter.
func ParseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// Score is the case-insensitive similarity ratio between two names on a
// 0-100 scale. Identical strings score 100 and the ratio is symmetric.
func Score(a, b string) int {
	return fuzzy.Ratio(strings.ToLower(a), strings.ToLower(b))
}

// Match resolves name plus optional date to a Result. The scan keeps the
// first candidate reaching the maximum score, so ties resolve in catalog
// order.
func (m *Matcher) Match(name, date string) Result {
	if strings.TrimSpace(name) == "" {
		return Result{Outcome: MissingName}
	}

	res := Result{}
	candidates := m.catalog.All()
	if parsed, ok := ParseDate(date); ok {
		res.Date = parsed
		candidates = m.catalog.OnDate(parsed)
		if len(candidates) == 0 {
			res.Outcome = NoEventOnDate
			return res
		}
	}

	best := -1
	for _, ev := range candidates {
		if score := Score(name, ev.Name); score > best {
			best = score
			res.Event = ev
		}
	}
	if best < m.threshold {
		return Result{Outcome: NoMatch, Date: res.Date}
	}

	res.Score = best
	if !res.Event.Available {
		res.Outcome = Unavailable
		return res
	}
	res.Outcome = Matched
	return res
}
