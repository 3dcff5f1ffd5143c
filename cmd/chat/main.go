// Command chat runs the assistant as an interactive terminal session against
// the local appointment store.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/wolfman30/appointment-assistant/internal/appointment"
	"github.com/wolfman30/appointment-assistant/internal/assistant"
	"github.com/wolfman30/appointment-assistant/internal/config"
	"github.com/wolfman30/appointment-assistant/internal/dialogue"
	"github.com/wolfman30/appointment-assistant/internal/format"
	"github.com/wolfman30/appointment-assistant/internal/llm"
	"github.com/wolfman30/appointment-assistant/internal/resolver"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New("error") // keep the terminal clean

	repo, err := appointment.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open appointment store: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	ctx := context.Background()

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		primary, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create gemini client: %v\n", err)
			os.Exit(1)
		}
		client = primary
	} else {
		fmt.Println("(no GEMINI_API_KEY set; only appointment lookups will work)")
	}

	service := assistant.New(
		dialogue.NewMemoryStore(),
		resolver.New(repo, logger),
		format.New(client, logger),
		client,
		logger,
		nil,
	)

	sessionID := uuid.NewString()
	fmt.Println(service.Greeting(ctx, sessionID))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			break
		}
		fmt.Println(service.HandleMessage(ctx, sessionID, line))
	}
}
