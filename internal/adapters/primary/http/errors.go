package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webwebweb5/societify/internal/core/domain"
)

// writeError traduit les sentinelles du domaine en statuts HTTP, avec le body
// JSON {"error": "..."}. Tout ce qui n'est pas reconnu devient un 500 opaque :
// le détail part dans les logs, jamais chez le client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrSelfReference),
		errors.Is(err, domain.ErrEmptyPost),
		errors.Is(err, domain.ErrEmptyComment),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrUsernameAlreadyTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrNotPostOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrDependencyUnavailable):
		slog.Error("dependency failure", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "a dependency is temporarily unavailable, please try again"})

	default:
		slog.Error("unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
