package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/media-discovery/internal/api/http/handlers"
	"github.com/spec-kit/media-discovery/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Prefix    string
	Health    *handlers.HealthHandler
	Users     *handlers.UsersHandler
	Reviews   *handlers.ReviewsHandler
	Favorites *handlers.FavoritesHandler
	Media     *handlers.MediaHandler
	Gate      *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group(cfg.Prefix)
	gate := cfg.Gate

	user := api.Group("/user")
	user.Post("/signup", cfg.Users.Signup)
	user.Post("/signin", cfg.Users.Signin)
	user.Put("/update-password", gate.Require(cfg.Users.UpdatePassword))
	user.Get("/info", gate.Require(cfg.Users.Info))

	user.Get("/favorites", gate.Require(cfg.Favorites.List))
	user.Post("/favorites", gate.Require(cfg.Favorites.Add))
	user.Delete("/favorites/:favoriteId", gate.Require(cfg.Favorites.Remove))

	api.Get("/reviews", gate.Require(cfg.Reviews.List))
	api.Post("/reviews", gate.Require(cfg.Reviews.Create))
	api.Delete("/reviews/:reviewId", gate.Require(cfg.Reviews.Remove))

	api.Get("/person/:personId", cfg.Media.Person)
	api.Get("/person/:personId/medias", cfg.Media.PersonMedias)

	// Fixed segments first so they are not captured as a category.
	media := api.Group("/:mediaType")
	media.Get("/genres", cfg.Media.Genres)
	media.Get("/search", cfg.Media.Search)
	media.Get("/detail/:mediaId", gate.Optional(cfg.Media.Detail))
	media.Get("/:mediaCategory", cfg.Media.List)
}
