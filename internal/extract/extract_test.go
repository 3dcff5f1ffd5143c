package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `Great, let me get that booked for you!

<APPOINTMENT_DETAILS>
name: Ann Example
email: ann@x.com
date: 3/15/2025
time: 2pm
purpose: checkup
action: book
</APPOINTMENT_DETAILS>

I'll confirm everything in a moment.`

func TestAppointmentDetailsFullBlock(t *testing.T) {
	d, clean := AppointmentDetails(sampleReply)
	require.NotNil(t, d)

	assert.Equal(t, "Ann Example", d.Name)
	assert.Equal(t, "ann@x.com", d.Email)
	assert.Equal(t, "2025-03-15", d.Date)
	assert.Equal(t, "2:00 PM", d.Time)
	assert.Equal(t, "checkup", d.Purpose)
	assert.Equal(t, ActionBook, d.Action)

	// The block is stripped; prose on both sides survives.
	assert.Contains(t, clean, "Great, let me get that booked for you!")
	assert.Contains(t, clean, "I'll confirm everything in a moment.")
	assert.NotContains(t, clean, "APPOINTMENT_DETAILS")
}

func TestAppointmentDetailsNoBlock(t *testing.T) {
	d, clean := AppointmentDetails("  Hello! How can I help you today?  ")
	assert.Nil(t, d)
	assert.Equal(t, "Hello! How can I help you today?", clean)
}

func TestAppointmentDetailsPartialBlock(t *testing.T) {
	reply := `Thanks!
<APPOINTMENT_DETAILS>
name: Bob
action: book
</APPOINTMENT_DETAILS>`
	d, clean := AppointmentDetails(reply)
	require.NotNil(t, d)

	assert.Equal(t, "Bob", d.Name)
	assert.Empty(t, d.Email)
	assert.False(t, d.Has("email"))
	assert.True(t, d.Has("name"))
	assert.Equal(t, ActionBook, d.Action)
	assert.Equal(t, "Thanks!", clean)
}

func TestAppointmentDetailsEmptyPurposeLine(t *testing.T) {
	reply := `<APPOINTMENT_DETAILS>
purpose:
action: book
</APPOINTMENT_DETAILS>`
	d, _ := AppointmentDetails(reply)
	require.NotNil(t, d)
	assert.True(t, d.Has("purpose"))
	assert.Empty(t, d.Purpose)
}

func TestAppointmentDetailsIdempotentOnCleanText(t *testing.T) {
	_, clean := AppointmentDetails(sampleReply)
	d2, clean2 := AppointmentDetails(clean)
	assert.Nil(t, d2)
	assert.Equal(t, clean, clean2)
}

func TestAppointmentDetailsCaseSensitiveTags(t *testing.T) {
	d, clean := AppointmentDetails("<appointment_details>name: x</appointment_details>")
	assert.Nil(t, d)
	assert.Equal(t, "<appointment_details>name: x</appointment_details>", clean)
}
