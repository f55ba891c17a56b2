package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canela-backend/internal/service"
)

func postChat(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewChatHandler(service.NewChatService())
	err := h.Message(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestChatMessage(t *testing.T) {
	rec := postChat(t, `{"message":"Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to Canela Ceylon")
}

func TestChatMessageRequiresText(t *testing.T) {
	rec := postChat(t, `{"message":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message is required")
}

func TestChatHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/chat/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewChatHandler(service.NewChatService())
	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
