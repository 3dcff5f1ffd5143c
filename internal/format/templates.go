package format

import (
	"fmt"
	"strings"

	"github.com/wolfman30/appointment-assistant/internal/appointment"
)

// confirmationData serializes a record for the phrasing prompt.
func confirmationData(rec *appointment.Record) string {
	return fmt.Sprintf("name: %s\nemail: %s\ndate: %s\ntime: %s\npurpose: %s",
		rec.Name, rec.Email, rec.Date, rec.Time, rec.Purpose)
}

func listingData(records []appointment.Record) string {
	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "id: %d, name: %s, email: %s, date: %s, time: %s, purpose: %s\n",
			rec.ID, rec.Name, rec.Email, rec.Date, rec.Time, rec.Purpose)
	}
	return b.String()
}

// confirmationTemplate is the deterministic fallback for booking
// confirmations. It carries every field the outcome does.
func confirmationTemplate(rec *appointment.Record) string {
	return fmt.Sprintf(`Great! I've booked your appointment successfully!

Here are the details:
- Name: %s
- Email: %s
- Date: %s
- Time: %s
- Purpose: %s

Your appointment is all set! Is there anything else you'd like help with?`,
		rec.Name, rec.Email, rec.Date, rec.Time, rec.Purpose)
}

// listingTemplate is the deterministic fallback for retrieval listings.
func listingTemplate(email string, records []appointment.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the appointments for %s:\n", email)
	for i, rec := range records {
		fmt.Fprintf(&b, "\nAppointment %d:\n", i+1)
		fmt.Fprintf(&b, "- ID: %d\n", rec.ID)
		fmt.Fprintf(&b, "- Date: %s\n", rec.Date)
		fmt.Fprintf(&b, "- Time: %s\n", rec.Time)
		fmt.Fprintf(&b, "- Name: %s\n", rec.Name)
		if rec.Purpose != "" {
			fmt.Fprintf(&b, "- Purpose: %s\n", rec.Purpose)
		}
	}
	return strings.TrimSpace(b.String())
}

// formatCancelChoices lists ambiguous cancellation candidates by ID.
func formatCancelChoices(records []appointment.Record) string {
	var b strings.Builder
	b.WriteString("I found multiple appointments. Please specify which one you'd like to cancel by ID:\n")
	for i, rec := range records {
		fmt.Fprintf(&b, "\nAppointment %d:\n", i+1)
		fmt.Fprintf(&b, "- ID: %d\n", rec.ID)
		fmt.Fprintf(&b, "- Date: %s\n", rec.Date)
		fmt.Fprintf(&b, "- Time: %s\n", rec.Time)
		purpose := rec.Purpose
		if purpose == "" {
			purpose = appointment.DefaultPurpose
		}
		fmt.Fprintf(&b, "- Purpose: %s\n", purpose)
	}
	b.WriteString("\nPlease reply with the ID number of the appointment you want to cancel (e.g., 'Cancel appointment ID 5').")
	return b.String()
}
