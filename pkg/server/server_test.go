package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJKeo/game-nerd-bot/pkg/agent"
	"github.com/MJKeo/game-nerd-bot/pkg/provider/scripted"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(func() (*agent.Agent, error) {
		// The scripted provider without a script echoes the user message.
		return agent.New(agent.Config{Provider: scripted.New()})
	})
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, s *Server, title string) sessionResponse {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions", `{"title": "`+title+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateAndListSessions(t *testing.T) {
	s := newTestServer(t)

	sess := createSession(t, s, "RPG talk")
	assert.Len(t, sess.UID, 8)
	assert.Equal(t, "RPG talk", sess.Title)
	assert.NotZero(t, sess.CreatedTs)

	// Empty body falls back to the default title.
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var second sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, "New Chat", second.Title)
	assert.NotEqual(t, sess.UID, second.UID)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestChat(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, "chat")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+sess.UID+"/chat", `{"content": "hello nerdbot"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You said: hello nerdbot", resp.Reply)
}

func TestChat_Validation(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, "chat")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+sess.UID+"/chat", `{"content": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/sessions/nope/chat", `{"content": "hi"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMessages(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, "history")

	for _, content := range []string{"first question", "second question"} {
		rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+sess.UID+"/chat", `{"content": "`+content+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+sess.UID+"/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 4)

	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "first question", messages[0].Content)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "You said: first question", messages[1].Content)
	assert.Equal(t, "second question", messages[2].Content)
}

func TestSessionIsolation(t *testing.T) {
	s := newTestServer(t)
	first := createSession(t, s, "one")
	second := createSession(t, s, "two")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+first.UID+"/chat", `{"content": "private"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+second.UID+"/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var messages []messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	assert.Empty(t, messages)
}

func TestDeleteSession(t *testing.T) {
	s := newTestServer(t)
	sess := createSession(t, s, "doomed")

	rec := doJSON(t, s, http.MethodDelete, "/api/v1/sessions/"+sess.UID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/sessions/"+sess.UID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+sess.UID+"/chat", `{"content": "anyone?"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
