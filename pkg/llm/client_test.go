package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ChatCompletion(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer ollama", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3.2:1b", body.Model)
		assert.Equal(t, 0.7, body.Temperature)
		assert.Equal(t, 1024, body.MaxTokens)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Hello there!"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/v1", "llama3.2:1b")

	reply, err := client.ChatCompletion(context.Background(), []Message{
		{Role: "user", Content: "Hi"},
	})
	req.NoError(err)
	assert.Equal(t, "Hello there!", reply)
}

func Test_ChatCompletion_TrailingSlashInBaseURL(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/v1/", "llama3.2:1b")

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "Hi"}})
	req.NoError(err)
}

func Test_ChatCompletion_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "missing-model")

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "Hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "model not found")
}

func Test_ChatCompletion_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3.2:1b")

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "Hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
