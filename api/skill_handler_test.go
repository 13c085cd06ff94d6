package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSkillInput() map[string]any {
	return map[string]any{
		"name":     "Go",
		"level":    90,
		"icon":     "devicon-go",
		"category": "backend",
	}
}

func TestCreateSkill(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodPost, "/skill", api.token, validSkillInput())
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	data := dataField(t, decodeBody(t, res))
	assert.Equal(t, "Go", data["name"])
	assert.Equal(t, float64(90), data["level"])
	assert.Equal(t, api.userID.String(), data["user_id"])
}

func TestSkillLevelClamped(t *testing.T) {
	api := newTestAPI(t)

	t.Run("on create", func(t *testing.T) {
		input := validSkillInput()
		input["level"] = 150
		res := api.do(t, http.MethodPost, "/skill", api.token, input)
		require.Equal(t, http.StatusCreated, res.Code)

		data := dataField(t, decodeBody(t, res))
		assert.Equal(t, float64(100), data["level"])
	})

	t.Run("on update", func(t *testing.T) {
		res := api.do(t, http.MethodPost, "/skill", api.token, validSkillInput())
		require.Equal(t, http.StatusCreated, res.Code)
		id := dataField(t, decodeBody(t, res))["id"].(string)

		res = api.do(t, http.MethodPut, "/skill/"+id, api.token, map[string]any{"level": -20})
		require.Equal(t, http.StatusOK, res.Code)

		data := dataField(t, decodeBody(t, res))
		assert.Equal(t, float64(0), data["level"])
	})
}

func TestCreateSkillInvalidCategory(t *testing.T) {
	api := newTestAPI(t)

	input := validSkillInput()
	input["category"] = "wizardry"
	res := api.do(t, http.MethodPost, "/skill", api.token, input)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSkillsByCategory(t *testing.T) {
	api := newTestAPI(t)

	for _, in := range []map[string]any{
		{"name": "Go", "level": 60, "category": "backend"},
		{"name": "Node", "level": 85, "category": "backend"},
		{"name": "React", "level": 95, "category": "frontend"},
	} {
		res := api.do(t, http.MethodPost, "/skill", api.token, in)
		require.Equal(t, http.StatusCreated, res.Code)
	}

	res := api.do(t, http.MethodGet, "/skills/backend", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	skills := decodeBody(t, res)["skills"].([]any)
	require.Len(t, skills, 2)
	// Highest level first
	assert.Equal(t, "Node", skills[0].(map[string]any)["name"])

	res = api.do(t, http.MethodGet, "/skills/wizardry", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestDeleteSkill(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodPost, "/skill", api.token, validSkillInput())
	require.Equal(t, http.StatusCreated, res.Code)
	id := dataField(t, decodeBody(t, res))["id"].(string)

	res = api.do(t, http.MethodDelete, "/skill/"+id, api.token, nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = api.do(t, http.MethodDelete, "/skill/"+id, api.token, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestSkillMutationsRequireAuth(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodPost, "/skill", "", validSkillInput())
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
