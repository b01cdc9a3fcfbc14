package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.withRateLimit(s.registerHandler))
		r.Post("/login", s.withRateLimit(s.loginHandler))
		r.Post("/logout", s.logoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/me", s.meHandler)
			r.Get("/frameworks-catalog", s.frameworkCatalogHandler)
			r.Get("/dashboard", s.dashboardHandler)
			r.Get("/shared-lists", s.sharedListsHandler)

			r.Route("/lists", func(r chi.Router) {
				r.Get("/", s.getListsHandler)
				r.Post("/", s.createListHandler)
				r.Post("/import", s.importListHandler)

				r.Route("/{listID}", func(r chi.Router) {
					r.Put("/", s.updateListHandler)
					r.Delete("/", s.deleteListHandler)
					r.Get("/export", s.exportListHandler)
					r.Post("/save-template", s.saveTemplateHandler)

					r.Get("/items", s.getItemsHandler)
					r.Post("/items", s.createItemHandler)
					r.Put("/items/reorder", s.reorderItemsHandler)
					r.Post("/items/bulk-delete", s.bulkDeleteItemsHandler)
					r.Post("/items/bulk-move", s.bulkMoveItemsHandler)
					r.Put("/items/{itemID}", s.updateItemHandler)
					r.Delete("/items/{itemID}", s.deleteItemHandler)
					r.Put("/items/{itemID}/toggle", s.toggleItemHandler)

					r.Get("/frameworks", s.getListFrameworksHandler)
					r.Post("/frameworks", s.attachFrameworkHandler)
					r.Delete("/frameworks/{key}", s.detachFrameworkHandler)
					r.Get("/framework-data/{key}", s.getFrameworkDataHandler)
					r.Put("/framework-data/{key}/batch", s.batchFrameworkDataHandler)

					r.Get("/share", s.getSharesHandler)
					r.Post("/share", s.shareListHandler)
					r.Delete("/share/{shareID}", s.unshareHandler)
				})
			})

			r.Route("/items/{itemID}", func(r chi.Router) {
				r.Put("/framework-data/{key}", s.setItemFrameworkDataHandler)
				r.Post("/tags/{tagID}", s.assignTagHandler)
				r.Delete("/tags/{tagID}", s.removeTagHandler)
				r.Get("/comments", s.getCommentsHandler)
				r.Post("/comments", s.createCommentHandler)
			})

			r.Delete("/comments/{commentID}", s.deleteCommentHandler)

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", s.getTagsHandler)
				r.Post("/", s.createTagHandler)
				r.Delete("/{tagID}", s.deleteTagHandler)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", s.getTemplatesHandler)
				r.Post("/{templateID}/create-list", s.createListFromTemplateHandler)
				r.Delete("/{templateID}", s.deleteTemplateHandler)
			})
		})
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.db.Health()
	code := http.StatusOK
	if stats["status"] != "up" {
		code = http.StatusServiceUnavailable
	}
	respondWithJSON(w, code, stats)
}
