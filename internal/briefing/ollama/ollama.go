package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vbonduro/boxbox/internal/briefing"
	"github.com/vbonduro/boxbox/internal/scoring"
)

const backendName = "ollama"

type generateRequest struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type OllamaBriefer struct {
	host   string
	model  string
	client *http.Client
}

func NewOllamaBriefer(host, model string) *OllamaBriefer {
	return &OllamaBriefer{
		host:   host,
		model:  model,
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (b *OllamaBriefer) Brief(ctx context.Context, report *scoring.Report) (*briefing.Briefing, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  b.model,
		System: briefing.SystemPrompt,
		Prompt: briefing.BuildPrompt(report),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close ollama response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, errBody)
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &briefing.Briefing{
		Backend: backendName,
		Points:  briefing.ParseResponse(body.Response),
		Raw:     body.Response,
	}, nil
}
