package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkobayashi-dev/portfolio-site-backend/models"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Find returns the profile for a user, or nil when none has been saved yet.
func (r *ProfileRepo) Find(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAny returns whichever profile exists. The public profile page is not
// tied to a session, and a portfolio site has a single owner.
func (r *ProfileRepo) FindAny() (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the user's profile row if it does not exist, otherwise
// patches only the provided columns. Exactly one row per user either way.
func (r *ProfileRepo) Upsert(userID uuid.UUID, fields map[string]any) (*models.Profile, error) {
	existing, err := r.Find(userID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		profile := models.Profile{UserID: userID}
		applyProfileFields(&profile, fields)
		if err := r.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}

	if len(fields) > 0 {
		if err := r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.Find(userID)
}

func applyProfileFields(profile *models.Profile, fields map[string]any) {
	for column, value := range fields {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch column {
		case "name":
			profile.Name = s
		case "title":
			profile.Title = s
		case "bio":
			profile.Bio = s
		case "email":
			profile.Email = s
		case "github":
			profile.Github = s
		case "linkedin":
			profile.Linkedin = s
		case "twitter":
			profile.Twitter = s
		case "avatar":
			profile.Avatar = s
		}
	}
}
