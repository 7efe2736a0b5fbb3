package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/boxbox/internal/briefing"
	"github.com/vbonduro/boxbox/internal/scoring"
)

const backendName = "claude"

// maxTokens leaves room for five short points.
const maxTokens = 512

type ClaudeBriefer struct {
	client *anthropic.Client
	model  string
}

// NewClaudeBriefer returns a Briefer backed by the Anthropic Messages API.
// baseURL may be empty to use the public endpoint.
func NewClaudeBriefer(apiKey, model, baseURL string) *ClaudeBriefer {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &ClaudeBriefer{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (b *ClaudeBriefer) Brief(ctx context.Context, report *scoring.Report) (*briefing.Briefing, error) {
	resp, err := b.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(b.model),
		System:    briefing.SystemPrompt,
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(briefing.BuildPrompt(report)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	var text strings.Builder
	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			text.WriteString(c.GetText())
		}
	}

	raw := text.String()
	return &briefing.Briefing{
		Backend: backendName,
		Points:  briefing.ParseResponse(raw),
		Raw:     raw,
	}, nil
}
