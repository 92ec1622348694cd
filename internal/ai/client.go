package ai

import (
	"context"

	gpt "github.com/m-ariany/gpt-chat-client"
)

// Completer is the narrow capability the enrichment pipeline needs from an
// AI provider: generate one structured completion for an instruction. The
// concrete provider stays swappable and mockable behind it.
type Completer interface {
	Complete(ctx context.Context, instruction string) (string, error)
}

// ClientConfig holds the provider connection settings.
type ClientConfig struct {
	ApiKey string
	ApiUrl string
	Model  string
}

type gptCompleter struct {
	client *gpt.Client
}

// NewCompleter creates a Completer backed by the chat-completion provider.
func NewCompleter(cnf ClientConfig) (Completer, error) {
	temperature := float32(0.2)
	client, err := gpt.NewClient(gpt.ClientConfig{
		ApiUrl:      cnf.ApiUrl,
		ApiKey:      cnf.ApiKey,
		Model:       cnf.Model,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, err
	}
	return &gptCompleter{client: client}, nil
}

func (c *gptCompleter) Complete(ctx context.Context, instruction string) (string, error) {
	// Clone per call — Instruct mutates the client's conversation state.
	client := c.client.Clone()
	client.Instruct(instruction)
	out, err := client.Prompt(ctx, "")
	if err != nil {
		return "", &ProviderError{Err: err}
	}
	return out, nil
}
