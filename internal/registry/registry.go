package registry

import (
	"fmt"

	"github.com/vk/provreplay/internal/config"
)

// Registry holds the plugin and action definitions for a single application
// instance.
type Registry struct {
	plugins map[string]*config.PluginDefinition
	actions map[string]*config.ActionDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		plugins: make(map[string]*config.PluginDefinition),
		actions: make(map[string]*config.ActionDefinition),
	}
}

// actionKey builds the lookup key for an action within a plugin.
func actionKey(pluginID, actionID string) string {
	return fmt.Sprintf("%s/%s", pluginID, actionID)
}

// PopulateFromModel copies the loaded manifest definitions from the config
// model into the registry for fast lookup during rendering. Duplicate action
// identifiers are retained as-is here and rejected by Validate.
func (r *Registry) PopulateFromModel(model *config.Model) {
	for id, plugin := range model.Plugins {
		r.plugins[id] = plugin
		for _, action := range plugin.Actions {
			r.actions[actionKey(plugin.ID, action.ID)] = action
		}
	}
}

// Lookup returns the live signature for the given (plugin, action) pair.
// The second return is false when the current environment has no such
// action, which callers must treat as recoverable: rendering proceeds from
// the recorded signature instead.
func (r *Registry) Lookup(pluginID, actionID string) (*config.ActionDefinition, bool) {
	def, ok := r.actions[actionKey(pluginID, actionID)]
	return def, ok
}

// Plugin returns the definition for a single plugin, if present.
func (r *Registry) Plugin(pluginID string) (*config.PluginDefinition, bool) {
	def, ok := r.plugins[pluginID]
	return def, ok
}

// Len reports the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}
