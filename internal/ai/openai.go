package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	altai "github.com/sashabaranov/go-openai"

	"gridlens/internal/model"
)

// Minimal client wrapper around the OpenAI chat API, used only to refine
// column metadata for untyped datasets. Offline heuristics always run
// first; this is opt-in polish.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey, baseURL: baseURL, model: model, timeout: timeout}
}

type aiResponse struct {
	Columns []struct {
		Key   string `json:"key"`
		Label string `json:"label"`
		Kind  string `json:"kind"`
	} `json:"columns"`
}

// SuggestColumns asks the model for display labels and kinds given a few
// sample rows. Keys not present in the heuristic column set are dropped.
func (c *OpenAIClient) SuggestColumns(ctx context.Context, cols []model.Column, sample []model.Row) ([]model.Column, error) {
	if c == nil || c.apiKey == "" {
		return nil, errors.New("openai disabled")
	}
	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.call(ctx2, buildColumnsPrompt(cols, sample))
	if err != nil {
		return nil, err
	}
	var out aiResponse
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return nil, err
	}
	merged := make([]model.Column, 0, len(cols))
	for _, col := range cols {
		for _, s := range out.Columns {
			if s.Key != col.Key {
				continue
			}
			if s.Label != "" {
				col.Label = s.Label
			}
			switch model.Kind(s.Kind) {
			case model.KindString, model.KindNumber, model.KindBool, model.KindTime:
				col.Kind = model.Kind(s.Kind)
			}
		}
		merged = append(merged, col)
	}
	return merged, nil
}

func (c *OpenAIClient) call(ctx context.Context, prompt string) (string, error) {
	cfg := altai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cli := altai.NewClientWithConfig(cfg)
	resp, err := cli.CreateChatCompletion(ctx, altai.ChatCompletionRequest{
		Model: c.model,
		Messages: []altai.ChatCompletionMessage{
			{Role: altai.ChatMessageRoleSystem, Content: "You label tabular dataset columns and return ONLY strict JSON following the specified contract. No prose, no code fences."},
			{Role: altai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:    0.2,
		ResponseFormat: &altai.ChatCompletionResponseFormat{Type: altai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildColumnsPrompt(cols []model.Column, sample []model.Row) string {
	max := 20
	if len(sample) < max {
		max = len(sample)
	}
	var b strings.Builder
	b.WriteString("Given the dataset columns and sample rows below, return ONLY strict JSON matching this contract: ")
	b.WriteString(`{"columns":[{"key","label","kind"}]} where kind is one of string|number|bool|time.`)
	b.WriteString("\nColumns: ")
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.Key)
	}
	b.WriteString("\nRows:\n")
	for i := 0; i < max; i++ {
		enc, _ := json.Marshal(sample[i])
		b.Write(enc)
		b.WriteByte('\n')
	}
	return b.String()
}
