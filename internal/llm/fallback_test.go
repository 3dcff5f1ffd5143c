package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	resp  Response
	err   error
	calls int
}

func (f *fakeClient) Complete(ctx context.Context, req Request) (Response, error) {
	f.calls++
	if f.err != nil {
		return Response{}, f.err
	}
	return f.resp, nil
}

func TestFallbackClientUsesPrimaryWhenHealthy(t *testing.T) {
	primary := &fakeClient{resp: Response{Text: "primary"}}
	fallback := &fakeClient{resp: Response{Text: "fallback"}}
	c := NewFallbackClient(primary, fallback, nil)

	resp, err := c.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "primary", resp.Text)
	assert.Zero(t, fallback.calls)
}

func TestFallbackClientFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &fakeClient{err: errors.New("quota exceeded")}
	fallback := &fakeClient{resp: Response{Text: "fallback"}}
	c := NewFallbackClient(primary, fallback, nil)

	resp, err := c.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", resp.Text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestFallbackClientReturnsFallbackError(t *testing.T) {
	primary := &fakeClient{err: errors.New("primary down")}
	fallback := &fakeClient{err: errors.New("fallback down")}
	c := NewFallbackClient(primary, fallback, nil)

	_, err := c.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fallback down")
}

func TestFallbackClientWithoutFallback(t *testing.T) {
	primary := &fakeClient{err: errors.New("primary down")}
	c := NewFallbackClient(primary, nil, nil)

	_, err := c.Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary down")
}
