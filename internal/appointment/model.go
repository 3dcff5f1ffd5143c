package appointment

import "time"

// Record is one booked appointment. Date is an ISO calendar date
// (YYYY-MM-DD) and Time is canonical 12-hour "H:MM AM/PM"; both are stored as
// text because a failed normalization intentionally passes the user's raw
// wording through.
type Record struct {
	ID        int64
	Name      string
	Email     string
	Date      string
	Time      string
	Purpose   string
	CreatedAt time.Time
}

// DefaultPurpose is stored when a booking omits the purpose field.
const DefaultPurpose = "General appointment"

// Query filters appointment lookups. Name and Email match as
// case-insensitive substrings, Date matches exactly; empty fields are
// ignored. Results are ordered by (date, time) ascending.
type Query struct {
	Name  string
	Email string
	Date  string
}
