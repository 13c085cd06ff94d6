package database

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkobayashi-dev/portfolio-site-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects, newest first.
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when no such project exists.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindAllTechnologies returns the sorted set of technology names used
// across every project.
func (r *ProjectRepo) FindAllTechnologies() ([]string, error) {
	var projects []*models.Project
	if err := r.db.Select("technologies").Find(&projects).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var technologies []string
	for _, project := range projects {
		for _, tech := range project.Technologies {
			if _, ok := seen[tech]; !ok {
				seen[tech] = struct{}{}
				technologies = append(technologies, tech)
			}
		}
	}
	sort.Strings(technologies)
	return technologies, nil
}

// Add inserts a new project into the database.
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Patch applies a shallow update: only the given columns change, everything
// else keeps its stored value. CreatedAt is never part of a patch.
// Map-based Updates bypass the model's JSON serializer, so slice columns
// (technologies, screenshots) are encoded here before they reach SQL.
func (r *ProjectRepo) Patch(id uuid.UUID, fields map[string]any) error {
	columns := make(map[string]any, len(fields))
	for column, value := range fields {
		if slice, ok := value.([]string); ok {
			encoded, err := json.Marshal(slice)
			if err != nil {
				return err
			}
			columns[column] = string(encoded)
			continue
		}
		columns[column] = value
	}
	return r.db.Model(&models.Project{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes a project by id and reports whether a row was deleted.
func (r *ProjectRepo) Delete(id uuid.UUID) (bool, error) {
	result := r.db.Delete(&models.Project{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
