package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockWithMinutes = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})\s*(am|pm)?$`)
	clockBareHour    = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)?$`)
)

// NormalizeClock converts a time-of-day string to canonical 12-hour
// "H:MM AM/PM" form: no leading zero on the hour, two-digit minutes.
//
// Accepted inputs: "14:30", "2:30 pm", "9", "9 am". A 24-hour value with no
// meridiem is interpreted literally (hour 0 becomes 12:MM AM, hour 13+ rolls
// into PM). Unparseable input passes through unchanged.
func NormalizeClock(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return raw
	}

	if m := clockWithMinutes.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return raw
		}
		return format12Hour(applyMeridiem(hour, m[3]), minute)
	}

	if m := clockBareHour.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour > 23 {
			return raw
		}
		return format12Hour(applyMeridiem(hour, m[2]), 0)
	}

	return raw
}

// applyMeridiem maps an hour plus optional am/pm marker onto 0-23.
func applyMeridiem(hour int, meridiem string) int {
	switch meridiem {
	case "pm":
		if hour < 12 {
			return hour + 12
		}
	case "am":
		if hour == 12 {
			return 0
		}
	}
	return hour
}

func format12Hour(hour24, minute int) string {
	meridiem := "AM"
	hour := hour24
	switch {
	case hour24 == 0:
		hour = 12
	case hour24 == 12:
		meridiem = "PM"
	case hour24 > 12:
		hour = hour24 - 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}
