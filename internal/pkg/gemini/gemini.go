package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/econlab/hypothesis-core/internal/config"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("gemini api key is not configured")

// Client is a minimal client for the Gemini generateContent REST API.
// Every call is attempted exactly once; callers decide how to degrade.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

func New(cfg config.GeminiConfig) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the first candidate's text, trimmed.
func (c *Client) Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, _ := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: maxOutputTokens,
		},
	})

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from gemini")
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("empty response from gemini")
	}
	return text, nil
}

// UnmarshalModelJSON decodes model output into out, stripping markdown code
// fences and tolerating leading or trailing prose around the JSON object.
func UnmarshalModelJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
			return nil
		}
	}

	return errors.New("invalid JSON in model output")
}
