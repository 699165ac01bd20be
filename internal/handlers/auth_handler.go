package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"uniportal/internal/middleware"
	"uniportal/internal/models"
	"uniportal/internal/services"
	"uniportal/internal/token"
)

type AuthHandler struct {
	Service *services.LoginService
	Codec   *token.Codec
}

func NewAuthHandler(login *services.LoginService, codec *token.Codec) *AuthHandler {
	return &AuthHandler{Service: login, Codec: codec}
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", c.Request.TLS != nil, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}

// pendingClaims returns the live pending-MFA claims or nil.
func (h *AuthHandler) pendingClaims(c *gin.Context) *token.Claims {
	raw, err := c.Cookie(middleware.MfaPendingCookie)
	if err != nil {
		return nil
	}
	claims := h.Codec.Parse(raw)
	if claims == nil || claims.Kind != token.KindMfaPending {
		return nil
	}
	return claims
}

// @Summary      Sign in
// @Description  Verifies credentials; answers with either a full session or an MFA challenge
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Service.Login(req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAccountDisabled):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("[auth][login] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong, please try again"})
		}
		return
	}

	if res.RequiresMfa {
		// only one of the two cookies may be live at a time
		h.clearCookie(c, middleware.SessionCookie)
		h.setCookie(c, middleware.MfaPendingCookie, res.Token, int(token.MfaPendingTTL.Seconds()))
		c.JSON(http.StatusOK, gin.H{"success": true, "requires_mfa": true})
		return
	}

	h.clearCookie(c, middleware.MfaPendingCookie)
	h.setCookie(c, middleware.SessionCookie, res.Token, int(token.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "user": res.User})
}

// @Summary      Verify login code
// @Description  Promotes a pending login to a full session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "6-digit code"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/mfa/verify [post]
func (h *AuthHandler) VerifyMfa(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// cheap shape check before the ledger is touched
	if len(req.Code) != 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Code must be 6 digits"})
		return
	}

	pending := h.pendingClaims(c)
	if pending == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": services.ErrNoPendingLogin.Error()})
		return
	}

	res, err := h.Service.VerifyMfa(pending.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCodeIncorrect),
			errors.Is(err, services.ErrCodeUsed),
			errors.Is(err, services.ErrCodeExpired):
			// pending cookie stays; the client may retry or resend
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, services.ErrAccountDisabled):
			h.clearCookie(c, middleware.MfaPendingCookie)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("[auth][mfa] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong, please try again"})
		}
		return
	}

	h.clearCookie(c, middleware.MfaPendingCookie)
	h.setCookie(c, middleware.SessionCookie, res.Token, int(token.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "user": res.User})
}

// @Summary      Resend login code
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/mfa/resend [post]
func (h *AuthHandler) ResendMfa(c *gin.Context) {
	pending := h.pendingClaims(c)
	if pending == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": services.ErrNoPendingLogin.Error()})
		return
	}

	if err := h.Service.ResendMfa(pending.UserID); err != nil {
		log.Printf("[auth][mfa] resend failed user_id=%d: %v", pending.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send code, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Code sent"})
}

// @Summary      Sign out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearCookie(c, middleware.SessionCookie)
	h.clearCookie(c, middleware.MfaPendingCookie)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Signed out"})
}
