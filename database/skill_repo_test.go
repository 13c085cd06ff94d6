package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkobayashi-dev/portfolio-site-backend/models"
)

func newSkill(name, category string, level int) *models.Skill {
	return &models.Skill{
		ID:       uuid.New(),
		Name:     name,
		Level:    level,
		Icon:     "devicon-" + name,
		Category: category,
		UserID:   uuid.New(),
	}
}

func TestSkillRepoOrdering(t *testing.T) {
	repo := NewSkillRepo(newTestDB(t))

	for _, s := range []*models.Skill{
		newSkill("go", models.SkillCategoryBackend, 90),
		newSkill("react", models.SkillCategoryFrontend, 85),
		newSkill("rust", models.SkillCategoryBackend, 60),
		newSkill("css", models.SkillCategoryFrontend, 95),
	} {
		require.NoError(t, repo.Add(s))
	}

	skills, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, skills, 4)

	// category ascending, level descending within category
	assert.Equal(t, "go", skills[0].Name)
	assert.Equal(t, "rust", skills[1].Name)
	assert.Equal(t, "css", skills[2].Name)
	assert.Equal(t, "react", skills[3].Name)
}

func TestSkillRepoFindByCategory(t *testing.T) {
	repo := NewSkillRepo(newTestDB(t))

	require.NoError(t, repo.Add(newSkill("go", models.SkillCategoryBackend, 60)))
	require.NoError(t, repo.Add(newSkill("node", models.SkillCategoryBackend, 80)))
	require.NoError(t, repo.Add(newSkill("react", models.SkillCategoryFrontend, 85)))

	skills, err := repo.FindByCategory(models.SkillCategoryBackend)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "node", skills[0].Name)
	assert.Equal(t, "go", skills[1].Name)
}

func TestSkillRepoPatchAndDelete(t *testing.T) {
	repo := NewSkillRepo(newTestDB(t))

	skill := newSkill("go", models.SkillCategoryBackend, 70)
	require.NoError(t, repo.Add(skill))

	require.NoError(t, repo.Patch(skill.ID, map[string]any{"level": 95}))

	found, err := repo.FindByID(skill.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 95, found.Level)
	assert.Equal(t, "go", found.Name)

	deleted, err := repo.Delete(skill.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(skill.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
