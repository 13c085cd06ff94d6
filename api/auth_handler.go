package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi-dev/portfolio-site-backend/auth"
	"github.com/mkobayashi-dev/portfolio-site-backend/database"
	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
	"github.com/mkobayashi-dev/portfolio-site-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	issuer    auth.TokenIssuer
}

func newAuthHandler(userRepo *database.UserRepo, issuer auth.TokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		issuer:    issuer,
	}
}

// LoginResponse carries the session token the admin UI attaches to
// subsequent mutation requests.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// login verifies email + password and issues a session token
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		if err := checkInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(input.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		// Same failure for unknown email and wrong password
		if user == nil || !auth.CheckPassword(user.PasswordHash, input.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.issuer.Generate(user.ID, user.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign session token", err))
			return
		}

		h.responder.WriteJSON(w, LoginResponse{Token: token, User: user})
	}
}
