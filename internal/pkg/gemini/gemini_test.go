package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econlab/hypothesis-core/internal/config"
)

func newTestClient(url string) *Client {
	return New(config.GeminiConfig{
		APIKey:   "test-key",
		Endpoint: url,
		Model:    "gemini-2.5-flash",
	})
}

func TestConfigured(t *testing.T) {
	assert.False(t, New(config.GeminiConfig{}).Configured())
	assert.True(t, New(config.GeminiConfig{APIKey: "k"}).Configured())
}

func TestGenerateNotConfigured(t *testing.T) {
	_, err := New(config.GeminiConfig{}).Generate(context.Background(), "p", 100)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerate(t *testing.T) {
	var captured generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  生成された文章  "}]}}]}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Generate(context.Background(), "プロンプト", 1024)
	require.NoError(t, err)
	assert.Equal(t, "生成された文章", text)

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 1)
	assert.Equal(t, "プロンプト", captured.Contents[0].Parts[0].Text)
	assert.Equal(t, 1024, captured.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 0.7, captured.GenerationConfig.Temperature)
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "p", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "p", 100)
	assert.Error(t, err)
}

func TestUnmarshalModelJSON(t *testing.T) {
	type out struct {
		Name string `json:"name"`
	}

	cases := []struct {
		name string
		raw  string
	}{
		{"plain", `{"name":"x"}`},
		{"fenced", "```json\n{\"name\":\"x\"}\n```"},
		{"bare fence", "```\n{\"name\":\"x\"}\n```"},
		{"surrounding prose", "以下が結果です。\n{\"name\":\"x\"}\nご確認ください。"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v out
			require.NoError(t, UnmarshalModelJSON(tc.raw, &v))
			assert.Equal(t, "x", v.Name)
		})
	}

	var v out
	assert.Error(t, UnmarshalModelJSON("no json here", &v))
}
