package recipeservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator(GeneratorConfig{})
	assert.NoError(t, err)
	assert.IsType(t, &OpenAIGenerator{}, g)
	assert.Equal(t, DefaultGeminiModel, g.(*OpenAIGenerator).model)

	g, err = NewGenerator(GeneratorConfig{Provider: "OpenAI", APIKey: "key"})
	assert.NoError(t, err)
	assert.IsType(t, &OpenAIGenerator{}, g)
	assert.Equal(t, DefaultOpenAIModel, g.(*OpenAIGenerator).model)

	_, err = NewGenerator(GeneratorConfig{Provider: "oracle"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestGeminiGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/openai/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.RawQuery)

		var body struct {
			Model string `json:"model"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultGeminiModel, body.Model)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"title\": \"Soup\"}"}}]}`))
	}))
	t.Cleanup(srv.Close)

	g, err := NewGenerator(GeneratorConfig{Provider: "gemini", APIKey: "secret", BaseURL: srv.URL + "/v1beta/openai/"})
	assert.NoError(t, err)

	text, err := g.Generate(context.Background(), "make soup")
	assert.NoError(t, err)
	assert.Equal(t, `{"title": "Soup"}`, text)
}

func TestGenerationErrorDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.Header.Get("Authorization") {
		case "Bearer sk-empty":
			w.Write([]byte(`{"choices": []}`))
		case "Bearer sk-slow":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"message": "quota exceeded", "type": "rate_limit"}}`))
		}
	}))
	t.Cleanup(srv.Close)

	testCases := []struct {
		name    string
		apiKey  string
		timeout time.Duration
		want    string
	}{
		{"Empty Answer", "sk-empty", time.Second, "the recipe provider returned an empty answer"},
		{"Rejected", "sk-quota", time.Second, "the recipe provider rejected the request with status 429"},
		{"Deadline", "sk-slow", 20 * time.Millisecond, "the recipe provider did not answer in time"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGenerator(GeneratorConfig{APIKey: tc.apiKey, BaseURL: srv.URL})
			assert.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), tc.timeout)
			defer cancel()

			_, err = g.Generate(ctx, "x")
			assert.Error(t, err)

			genErr := &GenerationError{Err: err}
			assert.Equal(t, tc.want, genErr.Details())
			assert.NotContains(t, genErr.Details(), tc.apiKey)
			assert.NotContains(t, genErr.Details(), srv.URL)
		})
	}

	assert.Equal(t, "the recipe provider could not be reached", (&GenerationError{Err: errors.New("dial tcp: refused")}).Details())
}

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "local-model", body.Model)
		assert.Len(t, body.Messages, 2)
		assert.Equal(t, "make soup", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "local-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"title\": \"Soup\"}"}, "finish_reason": "stop"}]
		}`))
	}))
	t.Cleanup(srv.Close)

	g := NewOpenAIGenerator("key", "local-model", srv.URL)
	text, err := g.Generate(context.Background(), "make soup")
	assert.NoError(t, err)
	assert.Equal(t, `{"title": "Soup"}`, text)
}
