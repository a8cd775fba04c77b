package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/provreplay/internal/config"
)

func modelWith(plugins ...*config.PluginDefinition) *config.Model {
	model := &config.Model{Plugins: make(map[string]*config.PluginDefinition)}
	for _, p := range plugins {
		model.Plugins[p.ID] = p
	}
	return model
}

func simpleAction(pluginID, id string) *config.ActionDefinition {
	return &config.ActionDefinition{
		PluginID: pluginID,
		ID:       id,
		Inputs:   []*config.ArgDefinition{{Name: "table"}},
		Outputs:  []*config.ArgDefinition{{Name: "out"}},
	}
}

func TestLookup(t *testing.T) {
	r := New()
	r.PopulateFromModel(modelWith(&config.PluginDefinition{
		ID:      "diversity",
		Actions: []*config.ActionDefinition{simpleAction("diversity", "alpha")},
	}))

	t.Run("finds registered actions", func(t *testing.T) {
		def, ok := r.Lookup("diversity", "alpha")
		require.True(t, ok)
		assert.Equal(t, "alpha", def.ID)
	})

	t.Run("misses unknown actions", func(t *testing.T) {
		_, ok := r.Lookup("diversity", "beta")
		assert.False(t, ok)
		_, ok = r.Lookup("nope", "alpha")
		assert.False(t, ok)
	})

	t.Run("plugin accessor", func(t *testing.T) {
		_, ok := r.Plugin("diversity")
		assert.True(t, ok)
		assert.Equal(t, 1, r.Len())
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("clean registry passes", func(t *testing.T) {
		r := New()
		r.PopulateFromModel(modelWith(&config.PluginDefinition{
			ID:      "p",
			Actions: []*config.ActionDefinition{simpleAction("p", "a"), simpleAction("p", "b")},
		}))
		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("duplicate action ids are rejected", func(t *testing.T) {
		r := New()
		r.PopulateFromModel(modelWith(&config.PluginDefinition{
			ID:      "p",
			Actions: []*config.ActionDefinition{simpleAction("p", "a"), simpleAction("p", "a")},
		}))
		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declared more than once")
	})

	t.Run("input and parameter sharing a name is rejected", func(t *testing.T) {
		r := New()
		r.PopulateFromModel(modelWith(&config.PluginDefinition{
			ID: "p",
			Actions: []*config.ActionDefinition{{
				PluginID:   "p",
				ID:         "a",
				Inputs:     []*config.ArgDefinition{{Name: "depth"}},
				Parameters: []*config.ArgDefinition{{Name: "depth"}},
				Outputs:    []*config.ArgDefinition{{Name: "out"}},
			}},
		}))
		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "collides")
	})

	t.Run("duplicate output names are rejected", func(t *testing.T) {
		r := New()
		r.PopulateFromModel(modelWith(&config.PluginDefinition{
			ID: "p",
			Actions: []*config.ActionDefinition{{
				PluginID: "p",
				ID:       "a",
				Outputs:  []*config.ArgDefinition{{Name: "out"}, {Name: "out"}},
			}},
		}))
		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `output "out"`)
	})

	t.Run("all problems are reported together", func(t *testing.T) {
		r := New()
		r.PopulateFromModel(modelWith(&config.PluginDefinition{
			ID: "p",
			Actions: []*config.ActionDefinition{
				{
					PluginID:   "p",
					ID:         "a",
					Inputs:     []*config.ArgDefinition{{Name: "x"}},
					Parameters: []*config.ArgDefinition{{Name: "x"}},
				},
				{
					PluginID: "p",
					ID:       "b",
					Outputs:  []*config.ArgDefinition{{Name: "o"}, {Name: "o"}},
				},
			},
		}))
		err := r.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "collides")
		assert.Contains(t, err.Error(), "declared more than once")
	})
}
