package format

import "math/rand/v2"

var greetings = []string{
	"Hello there! I'm your friendly appointment booking assistant. How can I help you today?",
	"Hi! I'm here to help you book or check appointments. What can I do for you?",
	"Welcome! I'm your appointment assistant. Need to schedule something or check your bookings?",
	"Hello! I'm ready to help with your appointments. What would you like to do today?",
	"Hi there! Looking to book an appointment or check your schedule? I'm here to help!",
}

// Greeting returns a randomized session-opening message.
func Greeting() string {
	return greetings[rand.IntN(len(greetings))]
}
