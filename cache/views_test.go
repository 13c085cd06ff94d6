package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewsSetGet(t *testing.T) {
	views := NewViews()

	_, ok := views.Get("/projects")
	assert.False(t, ok)

	views.Set("/projects", "listing")

	cached, ok := views.Get("/projects")
	assert.True(t, ok)
	assert.Equal(t, "listing", cached)
}

func TestViewsInvalidate(t *testing.T) {
	views := NewViews()
	views.Set("/projects", "listing")
	views.Set("/technologies", "techs")
	views.Set("/profile", "profile")

	views.Invalidate("/projects", "/technologies")

	_, ok := views.Get("/projects")
	assert.False(t, ok)
	_, ok = views.Get("/technologies")
	assert.False(t, ok)
	_, ok = views.Get("/profile")
	assert.True(t, ok)
}

func TestViewsInvalidatePrefix(t *testing.T) {
	views := NewViews()
	views.Set("/skills", "all")
	views.Set("/skills/backend", "backend")
	views.Set("/skills/frontend", "frontend")
	views.Set("/profile", "profile")

	views.InvalidatePrefix("/skills")

	assert.Equal(t, 1, views.Len())
	_, ok := views.Get("/profile")
	assert.True(t, ok)
}
