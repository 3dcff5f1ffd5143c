package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wolfman30/appointment-assistant/internal/config"
	"github.com/wolfman30/appointment-assistant/internal/dialogue"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

func TestSplitOrigins(t *testing.T) {
	assert.Nil(t, splitOrigins(""))
	assert.Nil(t, splitOrigins("  "))
	assert.Equal(t, []string{"https://a.example"}, splitOrigins("https://a.example"))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		splitOrigins(" https://a.example , https://b.example ,"),
	)
}

func TestNewSessionStoreDefaultsToMemory(t *testing.T) {
	cfg := &config.Config{SessionTTL: time.Hour}
	store := newSessionStore(cfg, logging.New("error"))

	_, ok := store.(*dialogue.MemoryStore)
	assert.True(t, ok)
}

func TestNewLLMClientWithoutKey(t *testing.T) {
	cfg := &config.Config{}
	assert.Nil(t, newLLMClient(t.Context(), cfg, logging.New("error")))
}
