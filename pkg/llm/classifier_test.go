package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/eventscope/pkg/config"
	"github.com/umputun/eventscope/pkg/domain"
)

func chatServer(t *testing.T, answer string, onRequest func(req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if onRequest != nil {
			onRequest(req)
		}

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: answer}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Enabled:     true,
		Endpoint:    url + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.1,
		MaxTokens:   20,
		Timeout:     5 * time.Second,
	}
}

func TestClassifier_SuggestCategory(t *testing.T) {
	var got openai.ChatCompletionRequest
	server := chatServer(t, "LESUNG", func(req openai.ChatCompletionRequest) { got = req })

	classifier := NewClassifier(testConfig(server.URL))
	cat, err := classifier.SuggestCategory(context.Background(), "Abend mit Juli Zeh", "Die Autorin stellt ihr neues Buch vor")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryReading, cat)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 20, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, defaultSystemPrompt, got.Messages[0].Content)
	assert.Contains(t, got.Messages[1].Content, "Title: Abend mit Juli Zeh")
	assert.Contains(t, got.Messages[1].Content, "Description: Die Autorin stellt ihr neues Buch vor")
	assert.Contains(t, got.Messages[1].Content, "KONZERT")
}

func TestClassifier_SuggestCategory_CustomPrompt(t *testing.T) {
	var got openai.ChatCompletionRequest
	server := chatServer(t, "KINO", func(req openai.ChatCompletionRequest) { got = req })

	cfg := testConfig(server.URL)
	cfg.SystemPrompt = "custom prompt"
	cat, err := NewClassifier(cfg).SuggestCategory(context.Background(), "Sommerkino im Hof", "")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryCinema, cat)
	assert.Equal(t, "custom prompt", got.Messages[0].Content)
	assert.NotContains(t, got.Messages[1].Content, "Description:")
}

func TestClassifier_SuggestCategory_Errors(t *testing.T) {
	t.Run("empty title", func(t *testing.T) {
		var calls int32
		server := chatServer(t, "KONZERT", func(openai.ChatCompletionRequest) { atomic.AddInt32(&calls, 1) })
		_, err := NewClassifier(testConfig(server.URL)).SuggestCategory(context.Background(), "  ", "desc")
		require.Error(t, err)
		assert.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("unknown answer", func(t *testing.T) {
		server := chatServer(t, "POLKA", nil)
		_, err := NewClassifier(testConfig(server.URL)).SuggestCategory(context.Background(), "Tanzabend", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown category")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
		}))
		defer server.Close()
		_, err := NewClassifier(testConfig(server.URL)).SuggestCategory(context.Background(), "Tanzabend", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response from llm")
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": {"message": "internal error"}}`))
		}))
		defer server.Close()
		cfg := testConfig(server.URL)
		_, err := NewClassifier(cfg).SuggestCategory(context.Background(), "Tanzabend", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm request failed")
	})
}

func TestClassifier_BuildPrompt(t *testing.T) {
	c := NewClassifier(config.LLMConfig{Model: "m"})
	long := strings.Repeat("ä", maxDescriptionLen+50)
	prompt := c.buildPrompt("Title", long)
	assert.Contains(t, prompt, strings.Repeat("ä", maxDescriptionLen)+"...")
	assert.NotContains(t, prompt, strings.Repeat("ä", maxDescriptionLen+1))
	for _, cat := range domain.Categories {
		assert.Contains(t, prompt, string(cat))
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		content string
		want    domain.Category
		wantErr bool
	}{
		{content: "KONZERT", want: domain.CategoryConcert},
		{content: " konzert\n", want: domain.CategoryConcert},
		{content: `"THEATER".`, want: domain.CategoryTheater},
		{content: "Category: LESUNG", want: domain.CategoryReading},
		{content: "Die Kategorie ist KABARETT.", want: domain.CategoryComedy},
		{content: "KONZERT oder PARTY", wantErr: true},
		{content: "", wantErr: true},
		{content: "Keine Ahnung", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			got, err := parseCategory(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
