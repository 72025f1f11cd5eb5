package llmsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/labhub/core"
)

// openrouterProvider talks to the OpenRouter API (OpenAI-compatible).
type openrouterProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

var _ core.LLMProvider = (*openrouterProvider)(nil)

type (
	orRequest struct {
		Model          string         `json:"model"`
		Messages       []orMessage    `json:"messages"`
		MaxTokens      int            `json:"max_tokens,omitempty"`
		Temperature    float64        `json:"temperature"`
		ResponseFormat *orResponseFmt `json:"response_format,omitempty"`
	}

	orMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	orResponseFmt struct {
		Type string `json:"type"`
	}

	orResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}
)

func (o *openrouterProvider) Name() string {
	return "openrouter/" + o.model
}

func (o *openrouterProvider) Complete(ctx context.Context, prompt string, opts core.CompletionOpts) (string, error) {
	messages := make([]orMessage, 0, 2)
	if opts.System != "" {
		messages = append(messages, orMessage{Role: "system", Content: opts.System})
	}
	messages = append(messages, orMessage{Role: "user", Content: prompt})

	req := orRequest{
		Model:       core.FirstNonEmpty(opts.Model, o.model),
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	if strings.EqualFold(opts.Format, "json") {
		req.ResponseFormat = &orResponseFmt{Type: "json_object"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "marshaling request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("X-Title", "LabHub")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "sending request")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("openrouter API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var orResp orResponse
	if err := json.Unmarshal(respBody, &orResp); err != nil {
		return "", errors.Wrap(err, "parsing response")
	}
	if orResp.Error != nil {
		return "", errors.Errorf("openrouter API error: %s", orResp.Error.Message)
	}
	if len(orResp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(orResp.Choices[0].Message.Content), nil
}
