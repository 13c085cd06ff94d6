package database

import (
	"gorm.io/gorm"

	"github.com/mkobayashi-dev/portfolio-site-backend/models"
)

type Database struct {
	projectRepo *ProjectRepo
	skillRepo   *SkillRepo
	profileRepo *ProfileRepo
	userRepo    *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo: NewProjectRepo(db),
		skillRepo:   NewSkillRepo(db),
		profileRepo: NewProfileRepo(db),
		userRepo:    NewUserRepo(db),
	}
}

// AutoMigrate creates or updates the schema for every model owned by this system.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Skill{},
		&models.Profile{},
	)
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}
