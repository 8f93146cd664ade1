// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gtpilot/gtpilot/internal/logging"
)

const (
	DefaultModel    = "gemini-2.5-pro"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultTimeout  = 60 * time.Second

	maxErrorBody = 200
)

// ErrEmptyResponse is returned when Gemini answers without any text.
var ErrEmptyResponse = errors.New("Gemini returned empty response")

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	Endpoint string
	// APIKey is read on every call so a cleared credential takes effect.
	APIKey func() string
	HTTP   *http.Client
}

// NewGeminiClient returns a client for endpoint (DefaultEndpoint when empty)
// whose requests time out after timeout (DefaultTimeout when zero).
func NewGeminiClient(endpoint string, timeout time.Duration, apiKey func() string) *GeminiClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiClient{
		Endpoint: strings.TrimRight(endpoint, "/"),
		APIKey:   apiKey,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// GenerateContent sends prompt to model and returns the concatenated text
// of the first candidate.
func (g *GeminiClient) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = DefaultModel
	}
	key := ""
	if g.APIKey != nil {
		key = g.APIKey()
	}
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", g.Endpoint, url.PathEscape(model), url.QueryEscape(key))

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := g.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	logging.Debugf("analysis: %s answered %d in %s", model, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, truncate(string(raw), maxErrorBody))
	}

	var gr geminiResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	if gr.Error != nil {
		return "", fmt.Errorf("Gemini error %d: %s", gr.Error.Code, gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
