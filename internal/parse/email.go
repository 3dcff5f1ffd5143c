package parse

import "regexp"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s looks like a deliverable address. The check is
// shape-only (local@domain.tld); case is preserved and no normalization is
// attempted.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// FindEmail returns the first email-shaped substring in s, or "" when none is
// present. Used to opportunistically capture an address from a raw user
// message before any model call.
func FindEmail(s string) string {
	return emailScanPattern.FindString(s)
}

var emailScanPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
