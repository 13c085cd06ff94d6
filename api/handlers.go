package api

import (
	"time"

	"github.com/mkobayashi-dev/portfolio-site-backend/auth"
	"github.com/mkobayashi-dev/portfolio-site-backend/cache"
	"github.com/mkobayashi-dev/portfolio-site-backend/database"
	"github.com/mkobayashi-dev/portfolio-site-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, views *cache.Views, uploader *storage.Uploader, issuer auth.TokenIssuer, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo(), views),
		skillHandler:   newSkillHandler(database.SkillRepo(), views),
		profileHandler: newProfileHandler(database.ProfileRepo(), views),
		uploadHandler:  newUploadHandler(uploader),
		authHandler:    newAuthHandler(database.UserRepo(), issuer),
		healthHandler:  newHealthHandler(startupTime),
	}
}
