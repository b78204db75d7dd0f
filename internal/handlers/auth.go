package handlers

import (
	"net/http"
	"time"

	"gage_backend/internal/config"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Log in
// @Description  Bearer mode returns the token; cookie mode sets an HttpOnly session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	tok, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", input.Email, "err", err)
		}
		h.respondServiceError(c, err, "auth_login_error")
		return
	}

	if h.opts.AuthMode == config.AuthModeCookie {
		maxAge := int(time.Until(tok.ExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.opts.CookieName, tok.Value, maxAge, "/", "", h.opts.CookieSecure, true)
		c.JSON(http.StatusOK, gin.H{
			"status":     "logged_in",
			"email":      tok.Session.Email,
			"expires_at": tok.ExpiresAt,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      tok.Value,
		"expires_at": tok.ExpiresAt,
	})
}

// @Summary      Log out
// @Description  Revokes the current token until it expires and clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	sess := currentSession(c)
	if err := h.services.Logout(c.Request.Context(), sess); err != nil {
		h.respondServiceError(c, err, "auth_logout_failed", "email", sess.Email)
		return
	}
	if h.opts.AuthMode == config.AuthModeCookie {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.CookieSecure, true)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.Session
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c))
}
