package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/webwebweb5/societify/internal/core/ports"
)

// Handlers regroupe les handlers à monter sur le routeur.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Posts         *PostHandler
	Notifications *NotificationHandler
}

// NewRouter assemble le routeur gin et la chaîne de middlewares HTTP
// (CORS puis OTEL en racine). Toutes les routes hors auth passent par
// RequireAuth.
func NewRouter(env, serviceName string, tokens ports.TokenProvider, h Handlers) http.Handler {
	if env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")

	h.Auth.Register(api.Group("/auth"))

	authed := api.Group("", RequireAuth(tokens))
	h.Users.Register(authed.Group("/users"))
	h.Posts.Register(authed.Group("/posts"))
	h.Notifications.Register(authed.Group("/notifications"))

	// Chaîne de middlewares autour du routeur
	var handler http.Handler = r

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "baggage", "sentry-trace"},
		AllowCredentials: true,
	})
	handler = c.Handler(handler)

	handler = otelhttp.NewHandler(handler, serviceName, otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
	}))

	return handler
}
