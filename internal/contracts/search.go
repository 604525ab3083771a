package contracts

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the calendar date form used for StartDate and EndDate.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Filter keeps the contracts whose tenant full name contains term, ignoring
// case. An empty term keeps everything. The result is a new slice in the
// original order.
func Filter(list []Contract, term string) []Contract {
	lower := cases.Lower(language.Und)
	needle := lower.String(term)

	out := make([]Contract, 0, len(list))
	for _, c := range list {
		if needle == "" || strings.Contains(lower.String(c.Tenant.FullName()), needle) {
			out = append(out, c)
		}
	}
	return out
}

// SortByExpiry returns a copy of list ordered by EndDate, earliest first.
// Contracts without a parseable end date sort first; ties keep their order.
func SortByExpiry(list []Contract) []Contract {
	out := slices.Clone(list)
	if out == nil {
		out = []Contract{}
	}
	slices.SortStableFunc(out, func(a, b Contract) int {
		return expiry(a).Compare(expiry(b))
	})
	return out
}

func expiry(c Contract) time.Time {
	t, _ := ParseDate(c.EndDate)
	return t
}
