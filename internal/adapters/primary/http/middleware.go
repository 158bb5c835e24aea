package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webwebweb5/societify/internal/core/ports"
)

const (
	authCookieName = "jwt"
	userIDKey      = "userID" // clef gin context
)

// RequireAuth lit le cookie de session, valide le token et injecte l'ID
// utilisateur dans le contexte gin. Pas de cookie ou token invalide => 401.
func RequireAuth(tokens ports.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(authCookieName)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: no token provided"})
			return
		}

		userID, err := tokens.Validate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID récupère l'ID injecté par RequireAuth.
func currentUserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	s, _ := id.(string)
	return s
}
