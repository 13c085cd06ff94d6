package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio project with its metadata and screenshots.
// Screenshots keep their insertion order; the first entry is the hero image.
type Project struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name            string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description     string    `json:"description" db:"description" gorm:"type:text;not null"`
	LongDescription string    `json:"long_description,omitempty" db:"long_description" gorm:"type:text"`
	Technologies    []string  `json:"technologies" db:"technologies" gorm:"serializer:json;not null"`
	Screenshots     []string  `json:"screenshots" db:"screenshots" gorm:"serializer:json"`
	DemoLink        string    `json:"demo_link,omitempty" db:"demo_link" gorm:"type:text"`
	GithubLink      string    `json:"github_link,omitempty" db:"github_link" gorm:"type:text"`
	Featured        bool      `json:"featured" db:"featured" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UserID          uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
}
