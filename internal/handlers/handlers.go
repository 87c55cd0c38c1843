// Package handlers serves the hospital HTTP API with gin.
package handlers

import (
	"hospital-gin/internal/access"
	"hospital-gin/internal/auth"
	"hospital-gin/internal/chatbot"
	"hospital-gin/internal/database"
	"hospital-gin/internal/session"

	"go.uber.org/zap"
)

// CookieConfig names the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Deps are the collaborators the handlers need.
type Deps struct {
	Store    database.Store
	Sessions *session.Manager
	Auth     *auth.Service
	Gate     *access.Gate
	Chatbot  *chatbot.Bridge
	Cookie   CookieConfig
	Logger   *zap.Logger
}

type Handler struct {
	store    database.Store
	sessions *session.Manager
	auth     *auth.Service
	gate     *access.Gate
	chatbot  *chatbot.Bridge
	cookie   CookieConfig
	logger   *zap.Logger
}

func New(d Deps) *Handler {
	if d.Cookie.Name == "" {
		d.Cookie.Name = "hms_session"
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Handler{
		store:    d.Store,
		sessions: d.Sessions,
		auth:     d.Auth,
		gate:     d.Gate,
		chatbot:  d.Chatbot,
		cookie:   d.Cookie,
		logger:   d.Logger,
	}
}
