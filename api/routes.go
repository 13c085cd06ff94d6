package api

import (
	"github.com/go-chi/chi/v5"
)

// Cached view paths. Detail views append the entity id.
const (
	viewProjects      = "/projects"
	viewProjectDetail = "/project/"
	viewTechnologies  = "/technologies"
	viewSkills        = "/skills"
	viewProfile       = "/profile"
)

// setupRoutes wires the public read surface and the authenticated
// mutation surface. Reads bypass the session check entirely.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.health())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/technologies", handlers.projectHandler.getAllTechnologies())

		r.Get("/skills", handlers.skillHandler.getAllSkills())
		r.Get("/skills/{category}", handlers.skillHandler.getSkillsByCategory())

		r.Get("/profile", handlers.profileHandler.getProfile())
	})

	// Authenticated mutation routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/skill", handlers.skillHandler.createSkill())
		r.Put("/skill/{skillID}", handlers.skillHandler.updateSkill())
		r.Delete("/skill/{skillID}", handlers.skillHandler.deleteSkill())

		r.Put("/profile", handlers.profileHandler.updateProfile())

		r.Post("/upload", handlers.uploadHandler.upload())
	})
}
