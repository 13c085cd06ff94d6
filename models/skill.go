package models

import "github.com/google/uuid"

// Skill categories as rendered on the profile page.
const (
	SkillCategoryFrontend = "frontend"
	SkillCategoryBackend  = "backend"
	SkillCategoryDatabase = "database"
	SkillCategoryDevops   = "devops"
	SkillCategoryOther    = "other"
)

// SkillCategories lists every valid skill category.
var SkillCategories = []string{
	SkillCategoryFrontend,
	SkillCategoryBackend,
	SkillCategoryDatabase,
	SkillCategoryDevops,
	SkillCategoryOther,
}

// IsValidSkillCategory reports whether category is one of the fixed set.
func IsValidSkillCategory(category string) bool {
	for _, c := range SkillCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Skill represents a single skill entry with a 0-100 proficiency level.
// Icon is a key into the frontend's icon lookup, not a binary asset.
type Skill struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name     string    `json:"name" db:"name" gorm:"type:text;not null"`
	Level    int       `json:"level" db:"level" gorm:"not null"`
	Icon     string    `json:"icon" db:"icon" gorm:"type:text"`
	Category string    `json:"category" db:"category" gorm:"type:text;not null;index"`
	UserID   uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
}
