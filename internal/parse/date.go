package parse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const dateLayout = "2006-01-02"

// Explicit layouts tried after the flexible parser. Order matters: US-style
// month-first forms come before ISO variants, matching how users type dates
// in chat.
var dateLayouts = []string{
	"01/02/2006",
	"01-02-2006",
	"2006-01-02",
	"2006/01/02",
}

// NormalizeDate converts a free-form date string to YYYY-MM-DD.
//
// Resolution order: relative keywords (today/tomorrow), then a flexible
// parser that accepts forms like "March 15 2025", then the explicit layout
// list. When every attempt fails the input is returned unchanged so a booking
// can still proceed with a non-canonical date rather than dropping what the
// user said.
func NormalizeDate(raw string) string {
	return normalizeDateAt(raw, time.Now())
}

func normalizeDateAt(raw string, now time.Time) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}

	switch strings.ToLower(s) {
	case "today":
		return now.Format(dateLayout)
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(dateLayout)
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(dateLayout)
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return t.Format(dateLayout)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}

	return raw
}
