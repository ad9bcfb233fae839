package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser resolves relative period phrases inside free text to absolute ranges.
type Parser struct {
	location *time.Location
}

// NewParser creates a new period parser for the given IANA timezone string.
// e.g. "America/New_York"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

var lastNDaysPattern = regexp.MustCompile(`(?:last|past) (\d+) days`)

// FindRange scans a message for a relative period phrase and resolves it
// against baseTime (usually now). Returns false when the message names no
// period, which callers treat as "use the default window".
func (p *Parser) FindRange(message string, baseTime time.Time) (Range, bool) {
	msg := strings.ToLower(message)
	base := baseTime.In(p.location)

	switch {
	case strings.Contains(msg, "yesterday"):
		start := p.startOfDay(base.AddDate(0, 0, -1))
		return Range{Start: start, End: start.AddDate(0, 0, 1), Label: "yesterday"}, true

	case strings.Contains(msg, "today"):
		start := p.startOfDay(base)
		return Range{Start: start, End: start.AddDate(0, 0, 1), Label: "today"}, true

	case strings.Contains(msg, "last week"):
		start := p.startOfWeek(base).AddDate(0, 0, -7)
		return Range{Start: start, End: start.AddDate(0, 0, 7), Label: "last week"}, true

	case strings.Contains(msg, "this week"):
		start := p.startOfWeek(base)
		return Range{Start: start, End: start.AddDate(0, 0, 7), Label: "this week"}, true

	case strings.Contains(msg, "last month"):
		start := p.startOfMonth(base).AddDate(0, -1, 0)
		return Range{Start: start, End: start.AddDate(0, 1, 0), Label: start.Format("January 2006")}, true

	case strings.Contains(msg, "this month"):
		start := p.startOfMonth(base)
		return Range{Start: start, End: start.AddDate(0, 1, 0), Label: start.Format("January 2006")}, true
	}

	if m := lastNDaysPattern.FindStringSubmatch(msg); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil || days <= 0 {
			return Range{}, false
		}
		end := p.startOfDay(base).AddDate(0, 0, 1)
		return Range{
			Start: end.AddDate(0, 0, -days),
			End:   end,
			Label: fmt.Sprintf("last %d days", days),
		}, true
	}

	return Range{}, false
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// startOfWeek returns midnight on the Monday of the given day's week.
func (p *Parser) startOfWeek(t time.Time) time.Time {
	t = p.startOfDay(t)
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}

func (p *Parser) startOfMonth(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, p.location)
}
