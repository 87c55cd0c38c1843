package handlers

import (
	"errors"
	"net/http"
	"testing"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/chatbot"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestChat(t *testing.T) {
	s := newTestServer(t)
	patient := s.login("patient@hospital.com", "patient123", "patient")

	s.completer.reply = "This sounds like a job for pediatrics or cardiology."
	rec, env := s.do(http.MethodPost, "/chatbot", gin.H{"message": "my child has chest pain"}, patient)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, s.completer.reply, env.Response)
	assert.Equal(t, []string{"Cardiology", "Pediatrics"}, env.Departments)
}

func TestChatGreeting(t *testing.T) {
	s := newTestServer(t)
	patient := s.login("patient@hospital.com", "patient123", "patient")

	rec, env := s.do(http.MethodGet, "/chatbot", nil, patient)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, chatbot.Greeting, env.Response)
	assert.Empty(t, env.Departments)
}

func TestChat_MissingMessage(t *testing.T) {
	s := newTestServer(t)
	patient := s.login("patient@hospital.com", "patient123", "patient")

	rec, env := s.do(http.MethodPost, "/chatbot", gin.H{"message": ""}, patient)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "message is required", env.Message)
}

func TestChat_UpstreamUnavailable(t *testing.T) {
	s := newTestServer(t)
	patient := s.login("patient@hospital.com", "patient123", "patient")

	s.completer.err = errors.New("dial tcp: secret-host refused")
	rec, env := s.do(http.MethodPost, "/chatbot", gin.H{"message": "headache"}, patient)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, apperr.MsgUpstream, env.Message)
	assert.NotContains(t, rec.Body.String(), "secret-host")
}
