package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	authHandler "github.com/suryamp/echo-chat/internal/handler/auth"
	chatHandler "github.com/suryamp/echo-chat/internal/handler/chat"
	middlewarePkg "github.com/suryamp/echo-chat/internal/middleware"
	authService "github.com/suryamp/echo-chat/internal/service/auth"
	chatService "github.com/suryamp/echo-chat/internal/service/chat"
)

// NewRouter wires HTTP routes to core services. Auth endpoints are open;
// everything else under /api requires a bearer token.
func NewRouter(authSvc *authService.Service, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.Route("/api", func(api chi.Router) {
		authHandler.New(authSvc).RegisterRoutes(api)

		api.Group(func(protected chi.Router) {
			protected.Use(middlewarePkg.Auth(authSvc))
			chatHandler.New(chatSvc).RegisterRoutes(protected)
		})
	})

	return r
}
