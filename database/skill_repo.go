package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkobayashi-dev/portfolio-site-backend/models"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills ordered by category, then level descending.
func (r *SkillRepo) FindAll() ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.Order("category ASC").Order("level DESC").Find(&skills).Error
	return skills, err
}

// FindByCategory returns the skills in one category, highest level first.
func (r *SkillRepo) FindByCategory(category string) ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.Where("category = ?", category).Order("level DESC").Find(&skills).Error
	return skills, err
}

// FindByID returns a skill by its ID, or nil when no such skill exists.
func (r *SkillRepo) FindByID(id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// Add inserts a new skill into the database.
func (r *SkillRepo) Add(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

// Patch applies a shallow update to a skill.
func (r *SkillRepo) Patch(id uuid.UUID, fields map[string]any) error {
	return r.db.Model(&models.Skill{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a skill by id and reports whether a row was deleted.
func (r *SkillRepo) Delete(id uuid.UUID) (bool, error) {
	result := r.db.Delete(&models.Skill{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
