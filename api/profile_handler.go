package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi-dev/portfolio-site-backend/cache"
	"github.com/mkobayashi-dev/portfolio-site-backend/database"
	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	views       *cache.Views
}

func newProfileHandler(profileRepo *database.ProfileRepo, views *cache.Views) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		views:       views,
	}
}

// getProfile retrieves the site owner's public profile
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, ok := h.views.Get(r.URL.Path); ok {
			h.responder.WriteJSON(w, cached)
			return
		}

		profile, err := h.profileRepo.FindAny()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find profile", "profile", err))
			return
		}

		if profile == nil {
			h.responder.WriteError(w, errs.NewNotFound("profile"))
			return
		}

		h.views.Set(r.URL.Path, profile)
		h.responder.WriteJSON(w, profile)
	}
}

// updateProfile upserts the session user's profile with a shallow patch
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("no authenticated user"))
			return
		}

		var patch ProfilePatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile patch body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("profile", err))
			return
		}

		if err := checkInput(patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profileRepo.Upsert(userID, patch.fields())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update profile", "profile", err))
			return
		}

		h.views.Invalidate(viewProfile)

		h.responder.WriteJSON(w, mutationResponse{Success: true, Data: profile})
	}
}
