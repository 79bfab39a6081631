package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/thahbeeb/artsfest-api/handlers"
	"github.com/thahbeeb/artsfest-api/middleware"
)

// SetupRoutes wires the full API surface. Reads are public; every write sits
// behind JWT authentication plus the admin role.
func SetupRoutes(
	router *chi.Mux,
	corsOrigins []string,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	scoreHandler *handlers.ScoreHandler,
	teamHandler *handlers.TeamHandler,
	itemHandler *handlers.ItemHandler,
	newsHandler *handlers.NewsHandler,
	galleryHandler *handlers.GalleryHandler,
	liveHandler *handlers.LiveHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Post("/auth/login", authHandler.Login)
		r.Get("/live", liveHandler.Serve)

		r.Route("/scores", func(r chi.Router) {
			r.Get("/", scoreHandler.ListScores)
			r.Get("/totals/teams", scoreHandler.TeamTotals)
			r.Get("/totals/teams-group", scoreHandler.TeamTotalsGroup)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(middleware.RequireAdmin)

				r.Post("/", scoreHandler.CreateScore)
				r.Post("/publish", scoreHandler.BulkPublish)
				r.Put("/{scoreID}", scoreHandler.UpdateScore)
				r.Delete("/{scoreID}", scoreHandler.DeleteScore)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.ListTeams)
			r.Get("/{teamID}", teamHandler.GetTeamByID)
			r.Get("/{teamID}/participants", teamHandler.ListParticipants)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(middleware.RequireAdmin)

				r.Post("/", teamHandler.CreateTeam)
				r.Put("/{teamID}", teamHandler.UpdateTeam)
				r.Delete("/{teamID}", teamHandler.DeleteTeam)
				r.Post("/{teamID}/members-upload", teamHandler.UploadMembers)
			})
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.ListItems)
			r.Get("/{itemID}", itemHandler.GetItemByID)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(middleware.RequireAdmin)

				r.Post("/", itemHandler.CreateItem)
				r.Put("/{itemID}", itemHandler.UpdateItem)
				r.Delete("/{itemID}", itemHandler.DeleteItem)
			})
		})

		r.Route("/news", func(r chi.Router) {
			r.Get("/", newsHandler.ListNews)
			r.Get("/{newsID}", newsHandler.GetNewsByID)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(middleware.RequireAdmin)

				r.Post("/", newsHandler.CreateNews)
				r.Put("/{newsID}", newsHandler.UpdateNews)
				r.Delete("/{newsID}", newsHandler.DeleteNews)
				r.Post("/{newsID}/image", newsHandler.UploadImage)
			})
		})

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", galleryHandler.ListGalleryItems)
			r.Get("/{galleryID}", galleryHandler.GetGalleryItemByID)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(middleware.RequireAdmin)

				r.Post("/", galleryHandler.CreateGalleryItem)
				r.Put("/{galleryID}", galleryHandler.UpdateGalleryItem)
				r.Delete("/{galleryID}", galleryHandler.DeleteGalleryItem)
			})
		})
	})
}
