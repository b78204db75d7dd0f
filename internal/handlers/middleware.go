package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gage_backend/internal/config"
	"gage_backend/internal/models"
	"gage_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const sessionCtxKey = "session"

// sessionMiddleware authenticates the request with a bearer token or, in
// cookie mode, the session cookie. A header always takes precedence.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, errMsg := h.extractToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
		return
	}

	sess, err := h.services.ParseToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenRevoked) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}
		if h.log != nil {
			h.log.Errorw("session_check_failed", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error": "session store unavailable",
		})
		return
	}

	// store in Gin context
	c.Set(sessionCtxKey, sess)
	c.Next()
}

func (h *Handler) extractToken(c *gin.Context) (string, string) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return "", "invalid Authorization header format"
		}
		return strings.TrimSpace(parts[1]), ""
	}
	if h.opts.AuthMode == config.AuthModeCookie {
		if v, err := c.Cookie(h.opts.CookieName); err == nil && v != "" {
			return v, ""
		}
		return "", "not authenticated"
	}
	return "", "missing Authorization header"
}

// currentSession returns the session stored by sessionMiddleware.
func currentSession(c *gin.Context) models.Session {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return models.Session{}
	}
	sess, _ := v.(models.Session)
	return sess
}

// requestLogger writes one structured line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"ip", c.ClientIP(),
	)
}
