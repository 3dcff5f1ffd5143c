package assistant

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/appointment-assistant/internal/appointment"
	"github.com/wolfman30/appointment-assistant/internal/dialogue"
	"github.com/wolfman30/appointment-assistant/internal/format"
	"github.com/wolfman30/appointment-assistant/internal/llm"
	"github.com/wolfman30/appointment-assistant/internal/resolver"
)

// scriptedClient returns canned replies in order, simulating the generation
// service across a multi-turn conversation.
type scriptedClient struct {
	replies []string
	calls   int
	err     error
}

func (c *scriptedClient) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	if c.err != nil {
		return llm.Response{}, c.err
	}
	if c.calls >= len(c.replies) {
		return llm.Response{Text: "How else can I help?"}, nil
	}
	reply := c.replies[c.calls]
	c.calls++
	return llm.Response{Text: reply}, nil
}

func newTestService(t *testing.T, client llm.Client) (*Service, *appointment.SQLiteRepository) {
	t.Helper()
	repo, err := appointment.Open(filepath.Join(t.TempDir(), "assistant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	store := dialogue.NewMemoryStore()
	res := resolver.New(repo, nil)
	formatter := format.New(nil, nil) // deterministic templates in tests
	return New(store, res, formatter, client, nil, nil), repo
}

func TestHandleMessageFullBookingConversation(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"Happy to help! What's your name?\n<APPOINTMENT_DETAILS>\naction: book\n</APPOINTMENT_DETAILS>",
		"Nice to meet you!\n<APPOINTMENT_DETAILS>\nname: Ann\naction: book\n</APPOINTMENT_DETAILS>",
		"Got it all!\n<APPOINTMENT_DETAILS>\nname: Ann\nemail: ann@x.com\ndate: 2025-03-15\ntime: 2pm\npurpose: checkup\naction: book\n</APPOINTMENT_DETAILS>",
	}}
	svc, repo := newTestService(t, client)
	ctx := context.Background()

	reply := svc.HandleMessage(ctx, "s1", "Book an appointment")
	assert.Contains(t, reply, "tell me your name")

	reply = svc.HandleMessage(ctx, "s1", "I'm Ann")
	assert.Contains(t, reply, "email address")

	reply = svc.HandleMessage(ctx, "s1", "ann@x.com on 2025-03-15 at 2pm for a checkup")
	assert.Contains(t, reply, "booked your appointment successfully")
	assert.Contains(t, reply, "2:00 PM")

	records, err := repo.Find(ctx, appointment.Query{Email: "ann@x.com"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ann", records[0].Name)
}

func TestHandleMessageShortcutSkipsLLM(t *testing.T) {
	client := &scriptedClient{err: errors.New("must not be called")}
	svc, _ := newTestService(t, client)

	reply := svc.HandleMessage(context.Background(), "s1", "check appointment")
	assert.Contains(t, reply, "email address")
	assert.Zero(t, client.calls)
}

func TestHandleMessageShortcutWithKnownEmail(t *testing.T) {
	svc, repo := newTestService(t, &scriptedClient{})
	ctx := context.Background()
	_, err := repo.Create(ctx, "Ann", "ann@x.com", "2025-03-15", "2:00 PM", "checkup")
	require.NoError(t, err)

	// Teach the session the email, then use the shortcut.
	svc.HandleMessage(ctx, "s1", "my address is ann@x.com, look up my bookings")
	reply := svc.HandleMessage(ctx, "s1", "show appointment")
	assert.Contains(t, reply, "ann@x.com")
	assert.Contains(t, reply, "2025-03-15")
}

func TestHandleMessageSurvivesLLMFailure(t *testing.T) {
	svc, _ := newTestService(t, &scriptedClient{err: errors.New("model down")})

	reply := svc.HandleMessage(context.Background(), "s1", "hello there")
	assert.NotEmpty(t, reply)
}

func TestHandleMessageWithoutClient(t *testing.T) {
	svc, _ := newTestService(t, nil)

	reply := svc.HandleMessage(context.Background(), "s1", "hello there")
	assert.NotEmpty(t, reply)
}

func TestGreetingRecordsHistory(t *testing.T) {
	svc, _ := newTestService(t, &scriptedClient{})
	ctx := context.Background()

	greeting := svc.Greeting(ctx, "s1")
	assert.NotEmpty(t, greeting)

	session, err := svc.Session(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, session.History, 1)
	assert.Equal(t, dialogue.RoleAssistant, session.History[0].Role)
}

func TestSessionExposesDialogueState(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"Thanks Ann!\n<APPOINTMENT_DETAILS>\nname: Ann\nemail: ann@x.com\naction: book\n</APPOINTMENT_DETAILS>",
	}}
	svc, _ := newTestService(t, client)
	ctx := context.Background()

	svc.HandleMessage(ctx, "s1", "I'm Ann, ann@x.com")

	session, err := svc.Session(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", session.State.Name)
	assert.Equal(t, "ann@x.com", session.State.Email)
}
