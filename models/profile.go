package models

import "github.com/google/uuid"

// Profile holds the site owner's public profile. There is exactly one row
// per user; the user id doubles as the primary key.
type Profile struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;primaryKey;not null"`
	Name     string    `json:"name" db:"name" gorm:"type:text;not null"`
	Title    string    `json:"title" db:"title" gorm:"type:text"`
	Bio      string    `json:"bio" db:"bio" gorm:"type:text"`
	Email    string    `json:"email" db:"email" gorm:"type:text"`
	Github   string    `json:"github,omitempty" db:"github" gorm:"type:text"`
	Linkedin string    `json:"linkedin,omitempty" db:"linkedin" gorm:"type:text"`
	Twitter  string    `json:"twitter,omitempty" db:"twitter" gorm:"type:text"`
	Avatar   string    `json:"avatar,omitempty" db:"avatar" gorm:"type:text"`
}
