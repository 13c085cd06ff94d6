package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi-dev/portfolio-site-backend/cache"
	"github.com/mkobayashi-dev/portfolio-site-backend/database"
	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
	"github.com/mkobayashi-dev/portfolio-site-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	views       *cache.Views
}

func newProjectHandler(projectRepo *database.ProjectRepo, views *cache.Views) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		views:       views,
	}
}

// ProjectCollection represents the full project listing, newest first.
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// TechnologyCollection is the sorted set of technologies across all projects.
type TechnologyCollection struct {
	Technologies []string `json:"technologies"`
}

// invalidateViews drops every cached view that can embed a project.
func (h projectHandler) invalidateViews(id uuid.UUID) {
	h.views.Invalidate(viewProjects, viewTechnologies, viewProjectDetail+id.String())
}

// getAllProjects retrieves all projects, newest first
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, ok := h.views.Get(r.URL.Path); ok {
			h.responder.WriteJSON(w, cached)
			return
		}

		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		response := ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		}

		h.views.Set(r.URL.Path, response)
		h.responder.WriteJSON(w, response)
	}
}

// getProject retrieves a specific project by ID
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseProjectID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if cached, ok := h.views.Get(r.URL.Path); ok {
			h.responder.WriteJSON(w, cached)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		h.views.Set(r.URL.Path, project)
		h.responder.WriteJSON(w, project)
	}
}

// getAllTechnologies retrieves the sorted unique technology names
func (h projectHandler) getAllTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, ok := h.views.Get(r.URL.Path); ok {
			h.responder.WriteJSON(w, cached)
			return
		}

		technologies, err := h.projectRepo.FindAllTechnologies()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find technologies", "projects", err))
			return
		}

		response := TechnologyCollection{Technologies: technologies}

		h.views.Set(r.URL.Path, response)
		h.responder.WriteJSON(w, response)
	}
}

// createProject creates a new project owned by the session user
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("no authenticated user"))
			return
		}

		var input ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if err := checkInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			ID:              uuid.New(),
			Name:            input.Name,
			Description:     input.Description,
			LongDescription: input.LongDescription,
			Technologies:    input.Technologies,
			Screenshots:     input.Screenshots,
			DemoLink:        input.DemoLink,
			GithubLink:      input.GithubLink,
			Featured:        input.Featured,
			CreatedAt:       time.Now().UTC(),
			UserID:          userID,
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		// The write is confirmed, stale views can go
		h.invalidateViews(project.ID)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, mutationResponse{Success: true, Data: project})
	}
}

// updateProject applies a shallow patch to an existing project
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseProjectID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		var patch ProjectPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project patch body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if err := checkInput(patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if fields := patch.fields(); len(fields) > 0 {
			if err := h.projectRepo.Patch(projectID, fields); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
				return
			}
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.invalidateViews(projectID)

		h.responder.WriteJSON(w, mutationResponse{Success: true, Data: updated})
	}
}

// deleteProject deletes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseProjectID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		deleted, err := h.projectRepo.Delete(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}
		if !deleted {
			// Repeat deletes land here too: structured not-found, not a fault
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		h.invalidateViews(projectID)

		h.responder.WriteJSON(w, mutationResponse{Success: true, Message: "project deleted successfully"})
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, *errs.ApiErr) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}
