package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		response := generateResponse{}
		response.Candidates = []struct {
			Content content `json:"content"`
		}{
			{Content: content{Parts: []part{{Text: "¡Hola! ¿En qué puedo ayudarte?"}}}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key", "gemini-pro")

	reply, err := client.Generate(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "¡Hola! ¿En qué puedo ayudarte?", reply)

	assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	sent := gotBody.Contents[0].Parts[0].Text
	assert.True(t, strings.HasPrefix(sent, SystemPrompt), "system prompt must lead every message")
	assert.Contains(t, sent, "Cliente: hola")
}

func TestGenerate_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key", "gemini-pro")

	_, err := client.Generate(context.Background(), "hola")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key", "gemini-pro")

	_, err := client.Generate(context.Background(), "hola")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerate_UnreachableUpstream(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key", "gemini-pro")

	_, err := client.Generate(context.Background(), "hola")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key", "gemini-pro")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "hola")
	assert.Error(t, err)
}
