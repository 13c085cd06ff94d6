package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi-dev/portfolio-site-backend/cache"
	"github.com/mkobayashi-dev/portfolio-site-backend/database"
	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
	"github.com/mkobayashi-dev/portfolio-site-backend/models"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
	views     *cache.Views
}

func newSkillHandler(skillRepo *database.SkillRepo, views *cache.Views) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
		views:     views,
	}
}

// SkillCollection represents a list of skills
type SkillCollection struct {
	Skills []*models.Skill `json:"skills"`
	Total  int             `json:"total"`
}

// invalidateViews drops the skills listing and every per-category view.
func (h skillHandler) invalidateViews() {
	h.views.InvalidatePrefix(viewSkills)
}

// getAllSkills retrieves all skills ordered by category, then level
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, ok := h.views.Get(r.URL.Path); ok {
			h.responder.WriteJSON(w, cached)
			return
		}

		skills, err := h.skillRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skills", "skills", err))
			return
		}

		response := SkillCollection{Skills: skills, Total: len(skills)}

		h.views.Set(r.URL.Path, response)
		h.responder.WriteJSON(w, response)
	}
}

// getSkillsByCategory retrieves the skills of one category, highest level first
func (h skillHandler) getSkillsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")
		if !models.IsValidSkillCategory(category) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("category", "unknown skill category"))
			return
		}

		if cached, ok := h.views.Get(r.URL.Path); ok {
			h.responder.WriteJSON(w, cached)
			return
		}

		skills, err := h.skillRepo.FindByCategory(category)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skills", "skills", err))
			return
		}

		response := SkillCollection{Skills: skills, Total: len(skills)}

		h.views.Set(r.URL.Path, response)
		h.responder.WriteJSON(w, response)
	}
}

// createSkill creates a new skill owned by the session user
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("no authenticated user"))
			return
		}

		var input SkillInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("skill", err))
			return
		}

		if err := checkInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill := models.Skill{
			ID:       uuid.New(),
			Name:     input.Name,
			Level:    clampLevel(input.Level),
			Icon:     input.Icon,
			Category: input.Category,
			UserID:   userID,
		}

		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create skill", "skill", err))
			return
		}

		h.invalidateViews()

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, mutationResponse{Success: true, Data: skill})
	}
}

// updateSkill applies a shallow patch to an existing skill
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, apiErr := parseSkillID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skill", "skill", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("skill"))
			return
		}

		var patch SkillPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill patch body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("skill", err))
			return
		}

		if err := checkInput(patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if fields := patch.fields(); len(fields) > 0 {
			if err := h.skillRepo.Patch(skillID, fields); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update skill", "skill", err))
				return
			}
		}

		updated, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated skill", "skill", err))
			return
		}

		h.invalidateViews()

		h.responder.WriteJSON(w, mutationResponse{Success: true, Data: updated})
	}
}

// deleteSkill deletes a skill by ID
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, apiErr := parseSkillID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		deleted, err := h.skillRepo.Delete(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete skill", "skill", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("skill"))
			return
		}

		h.invalidateViews()

		h.responder.WriteJSON(w, mutationResponse{Success: true, Message: "skill deleted successfully"})
	}
}

func parseSkillID(r *http.Request) (uuid.UUID, *errs.ApiErr) {
	skillIDStr := chi.URLParam(r, "skillID")
	if skillIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing skillID")
	}

	skillID, err := uuid.Parse(skillIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid skillID")
	}
	return skillID, nil
}
