package handlers

import (
	"errors"
	"net/http"
	"time"

	"hospital-gin/internal/apperr"
	"hospital-gin/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if s, ok := session.FromContext(c.Request.Context()); ok {
			fields = append(fields, zap.Int("user_id", s.UserID), zap.String("role", string(s.Role)))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// LoadSession resolves the session cookie once per request and puts the
// session into the request context. A rotated session gets a fresh cookie.
func (h *Handler) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(h.cookie.Name)
		if err != nil || id == "" {
			c.Next()
			return
		}

		s, err := h.sessions.Resolve(c.Request.Context(), id)
		if errors.Is(err, session.ErrNoSession) {
			h.clearCookie(c)
			c.Next()
			return
		}
		if err != nil {
			h.fail(c, apperr.Persistence(err))
			return
		}
		if s.ID != id {
			h.setCookie(c, s.ID)
		}

		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), s))
		c.Next()
	}
}

// RequireAuth rejects requests without a live session.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentSession(c); !ok {
			h.fail(c, apperr.Unauthenticated("Authentication required"))
			return
		}
		c.Next()
	}
}

// RequirePage rejects sessions whose role may not open page.
func (h *Handler) RequirePage(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, _ := currentSession(c)
		if err := h.gate.RequirePage(s, page); err != nil {
			h.fail(c, err)
			return
		}
		c.Next()
	}
}

// RequireAction rejects sessions below the minimum role for action.
func (h *Handler) RequireAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, _ := currentSession(c)
		if err := h.gate.RequireAction(s, action); err != nil {
			h.fail(c, err)
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) (*session.Session, bool) {
	return session.FromContext(c.Request.Context())
}

func (h *Handler) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, id, int(h.sessions.IdleTimeout().Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *Handler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
