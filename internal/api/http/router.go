package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/booksfrog/booksfrog/internal/api/http/handlers"
	"github.com/booksfrog/booksfrog/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tokens         *handlers.TokensHandler
	Books          *handlers.BooksHandler
	Categories     *handlers.CategoriesHandler
	Favorites      *handlers.FavoritesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The auth middleware runs on every /api
// route and only resolves identities; RequireAuth on the protected groups does
// the enforcement.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)

	api.Get("/categories", cfg.Categories.List)
	api.Get("/categories/:id", cfg.Categories.Get)
	api.Get("/categories/:id/books", cfg.Categories.Books)

	api.Get("/books/latest", cfg.Books.Latest)
	api.Get("/books/:id", cfg.Books.Get)
	// Identity-aware but public: non-premium content is free to read.
	api.Get("/books/:id/content", cfg.Books.Content)

	protected := api.Group("", auth.RequireAuth())

	protected.Post("/categories", cfg.Categories.Create)
	protected.Put("/categories/:id", cfg.Categories.Update)
	protected.Delete("/categories/:id", cfg.Categories.Delete)

	protected.Post("/books", cfg.Books.Create)
	protected.Put("/books/:id", cfg.Books.Update)
	protected.Delete("/books/:id", cfg.Books.Delete)
	protected.Post("/books/:id/assign-category", cfg.Books.AssignCategory)

	protected.Post("/tokens/grant", cfg.Tokens.Grant)
	protected.Post("/tokens/amount", cfg.Tokens.Credit)
	protected.Post("/tokens/spend", cfg.Tokens.Spend)
	protected.Get("/tokens/:userId/timeleft", cfg.Tokens.TimeLeft)
	protected.Get("/tokens/:userId", cfg.Tokens.Balance)

	protected.Post("/favorites/:bookId", cfg.Favorites.Add)
	protected.Delete("/favorites/:bookId", cfg.Favorites.Remove)
	protected.Get("/favorites/book-ids", cfg.Favorites.BookIDs)
	protected.Get("/favorites/full-details", cfg.Favorites.Details)

	protected.Get("/users/:id", cfg.Users.Get)
	protected.Put("/users/:id", cfg.Users.Update)
	protected.Delete("/users/:id", cfg.Users.Delete)
}
