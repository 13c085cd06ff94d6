package api

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/mkobayashi-dev/portfolio-site-backend/errs"
)

// validate is the shared schema validator for every input and patch
// struct. Validation at this boundary is authoritative; any client-side
// checks are a convenience only.
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput runs struct validation and translates the first failure into
// a per-field error for the form.
func checkInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		if first.Tag() == "required" {
			return errs.NewMissingRequiredFieldError(first.Field())
		}
		return errs.NewInvalidFieldError(first.Field(), "failed on '"+first.Tag()+"' constraint")
	}
	return errs.NewMalformedPayloadError("input", err)
}

// ProjectInput is the payload for creating a project.
type ProjectInput struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	LongDescription string   `json:"long_description"`
	Technologies    []string `json:"technologies" validate:"required,min=1"`
	Screenshots     []string `json:"screenshots"`
	DemoLink        string   `json:"demo_link"`
	GithubLink      string   `json:"github_link"`
	Featured        bool     `json:"featured"`
}

// ProjectPatch is a shallow patch: only non-nil fields are applied.
type ProjectPatch struct {
	Name            *string   `json:"name" validate:"omitempty,min=1"`
	Description     *string   `json:"description" validate:"omitempty,min=1"`
	LongDescription *string   `json:"long_description"`
	Technologies    *[]string `json:"technologies" validate:"omitempty,min=1"`
	Screenshots     *[]string `json:"screenshots"`
	DemoLink        *string   `json:"demo_link"`
	GithubLink      *string   `json:"github_link"`
	Featured        *bool     `json:"featured"`
}

func (p ProjectPatch) fields() map[string]any {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.LongDescription != nil {
		fields["long_description"] = *p.LongDescription
	}
	if p.Technologies != nil {
		fields["technologies"] = *p.Technologies
	}
	if p.Screenshots != nil {
		fields["screenshots"] = *p.Screenshots
	}
	if p.DemoLink != nil {
		fields["demo_link"] = *p.DemoLink
	}
	if p.GithubLink != nil {
		fields["github_link"] = *p.GithubLink
	}
	if p.Featured != nil {
		fields["featured"] = *p.Featured
	}
	return fields
}

// SkillInput is the payload for creating a skill.
type SkillInput struct {
	Name     string `json:"name" validate:"required"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
	Category string `json:"category" validate:"required,oneof=frontend backend database devops other"`
}

// SkillPatch is a shallow patch for a skill.
type SkillPatch struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Level    *int    `json:"level"`
	Icon     *string `json:"icon"`
	Category *string `json:"category" validate:"omitempty,oneof=frontend backend database devops other"`
}

func (p SkillPatch) fields() map[string]any {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Level != nil {
		fields["level"] = clampLevel(*p.Level)
	}
	if p.Icon != nil {
		fields["icon"] = *p.Icon
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	return fields
}

// clampLevel pins a skill level into [0,100]. The level comes from a
// slider in the admin UI; out-of-range submissions are clamped rather
// than rejected.
func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// ProfilePatch is a shallow patch for the owner's profile. The update is
// an upsert: a first-time save creates the row.
type ProfilePatch struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Title    *string `json:"title"`
	Bio      *string `json:"bio"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Github   *string `json:"github"`
	Linkedin *string `json:"linkedin"`
	Twitter  *string `json:"twitter"`
	Avatar   *string `json:"avatar"`
}

func (p ProfilePatch) fields() map[string]any {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Bio != nil {
		fields["bio"] = *p.Bio
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Github != nil {
		fields["github"] = *p.Github
	}
	if p.Linkedin != nil {
		fields["linkedin"] = *p.Linkedin
	}
	if p.Twitter != nil {
		fields["twitter"] = *p.Twitter
	}
	if p.Avatar != nil {
		fields["avatar"] = *p.Avatar
	}
	return fields
}

// LoginInput is the payload for the sign-in endpoint.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
