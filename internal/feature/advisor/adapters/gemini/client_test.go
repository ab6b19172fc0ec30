package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/advisor/domain/entity"
	"market_backend/internal/feature/advisor/usecase"
)

func newTestModel(t *testing.T, h http.HandlerFunc) *ChatModel {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	m, err := NewChatModel(context.Background(), "test-key", "", srv.URL)
	require.NoError(t, err)
	return m
}

func TestChatModel_Complete(t *testing.T) {
	t.Parallel()

	var body map[string]any
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+DefaultModel+":generateContent"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Consider index funds."}]}}]}`))
	})

	got, err := m.Complete(context.Background(), "be careful", []entity.Message{
		{Role: entity.RoleUser, Text: "hi"},
		{Role: entity.RoleAssistant, Text: "hello"},
		{Role: entity.RoleUser, Text: "advice?"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Consider index funds.", got)
	assert.Equal(t, "gemini", m.Provider())

	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 3)
	assert.Equal(t, "model", contents[1].(map[string]any)["role"])
	assert.Contains(t, body, "systemInstruction")
}

func TestChatModel_Complete_EmptyCandidates(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := m.Complete(context.Background(), "sys", []entity.Message{{Role: entity.RoleUser, Text: "hi"}})
	assert.ErrorIs(t, err, usecase.ErrInvalidResponse)
}

func TestChatModel_Complete_InvalidKey(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := m.Complete(context.Background(), "sys", []entity.Message{{Role: entity.RoleUser, Text: "hi"}})
	assert.ErrorIs(t, err, usecase.ErrInvalidAPIKey)
}

func TestChatModel_Complete_ServerError(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
	})

	_, err := m.Complete(context.Background(), "sys", []entity.Message{{Role: entity.RoleUser, Text: "hi"}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrInvalidAPIKey)
}
