package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/istanbulcare/backend/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the content API.
//
// Routes:
//
//	POST /auth/register           → account creation
//	POST /auth/login              → token issuance
//
//	GET  /api/v1/services         → active catalog
//	GET  /api/v1/services/{slug}  → active service by slug
//	GET  /api/v1/blog/posts       → paginated posts, newest first
//	GET  /api/v1/blog/posts/{slug}
//	GET  /api/v1/header           → navigation read model
//	POST /api/v1/leads            → lead capture
//
//	/admin/** (guarded by RequireAdmin):
//	  services, blog posts, header columns and items, leads, users
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs each request
func NewRouter(
	authHandler *AuthHandler,
	publicHandler *PublicHandler,
	adminHandler *AdminHandler,
	guard *middleware.Authenticator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/services", publicHandler.ListServices)
		r.Get("/services/{slug}", publicHandler.GetService)
		r.Get("/blog/posts", publicHandler.ListPosts)
		r.Get("/blog/posts/{slug}", publicHandler.GetPost)
		r.Get("/header", publicHandler.GetHeader)
		r.Post("/leads", publicHandler.CreateLead)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(guard.RequireAdmin)

		r.Post("/services", adminHandler.CreateService)
		r.Get("/services", adminHandler.ListServices)
		r.Get("/services/{id}", adminHandler.GetService)
		r.Put("/services/{id}", adminHandler.UpdateService)
		r.Delete("/services/{id}", adminHandler.DeleteService)

		r.Post("/blog/posts", adminHandler.CreatePost)
		r.Get("/blog/posts", adminHandler.ListPosts)
		r.Get("/blog/posts/{id}", adminHandler.GetPost)
		r.Put("/blog/posts/{id}", adminHandler.UpdatePost)
		r.Delete("/blog/posts/{id}", adminHandler.DeletePost)

		r.Post("/header/columns", adminHandler.CreateColumn)
		r.Get("/header/columns", adminHandler.ListColumns)
		r.Get("/header/columns/{id}", adminHandler.GetColumn)
		r.Put("/header/columns/{id}", adminHandler.UpdateColumn)
		r.Delete("/header/columns/{id}", adminHandler.DeleteColumn)

		r.Post("/header/items", adminHandler.CreateItem)
		r.Get("/header/items", adminHandler.ListItems)
		r.Get("/header/items/{id}", adminHandler.GetItem)
		r.Put("/header/items/{id}", adminHandler.UpdateItem)
		r.Delete("/header/items/{id}", adminHandler.DeleteItem)

		r.Get("/leads", adminHandler.ListLeads)

		r.Get("/users", adminHandler.ListUsers)
		r.Put("/users/{id}", adminHandler.UpdateUser)
	})

	return r
}
