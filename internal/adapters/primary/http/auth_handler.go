package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webwebweb5/societify/internal/core/ports"
)

const cookieMaxAge = 15 * 24 * 60 * 60 // aligné sur l'expiry du token

// AuthHandler expose signup/login/logout et le user courant.
type AuthHandler struct {
	identity ports.IdentityService
	tokens   ports.TokenProvider
	secure   bool // cookies Secure en prod
}

func NewAuthHandler(identity ports.IdentityService, tokens ports.TokenProvider, secure bool) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens, secure: secure}
}

func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/sign-up", h.signUp)
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
	rg.GET("/getCurrentUser", RequireAuth(h.tokens), h.getCurrentUser)
}

func (h *AuthHandler) signUp(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		FullName string `json:"fullName" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.identity.Register(c.Request.Context(), ports.RegisterCmd{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.setAuthCookie(c, result.Token)
	c.JSON(http.StatusCreated, mapUser(result.User))
}

func (h *AuthHandler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.identity.Login(c.Request.Context(), ports.LoginCmd{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.setAuthCookie(c, result.Token)
	c.JSON(http.StatusOK, mapUser(result.User))
}

func (h *AuthHandler) logout(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) getCurrentUser(c *gin.Context) {
	user, err := h.identity.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUser(user))
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	// httpOnly : le token n'est jamais lisible en JS
	c.SetCookie(authCookieName, token, cookieMaxAge, "/", "", h.secure, true)
}
