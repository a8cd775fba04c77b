package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/provreplay/internal/config"
	"github.com/vk/provreplay/internal/ctxlog"
)

// Validate performs an integrity check over every registered plugin. It
// collects all problems rather than stopping at the first, so a bad manifest
// set is reported in one pass.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.From(ctx)

	for _, plugin := range r.plugins {
		seen := make(map[string]struct{})
		for _, action := range plugin.Actions {
			if _, dup := seen[action.ID]; dup {
				errs = append(errs, fmt.Sprintf(
					"plugin %q: action %q declared more than once", plugin.ID, action.ID))
				continue
			}
			seen[action.ID] = struct{}{}

			errs = append(errs, validateAction(plugin.ID, action)...)

			if len(action.Outputs) == 0 {
				logger.Warn("Action declares no outputs; rendered invocations will have nothing to bind.",
					"plugin", plugin.ID, "action", action.ID)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// validateAction checks a single signature for internal name collisions.
// Inputs and parameters share the call-site argument namespace, so a name
// may appear in at most one of the two, and only once.
func validateAction(pluginID string, action *config.ActionDefinition) []string {
	var errs []string

	names := make(map[string]string)
	record := func(kind string, args []*config.ArgDefinition) {
		for _, arg := range args {
			if prev, ok := names[arg.Name]; ok {
				errs = append(errs, fmt.Sprintf(
					"plugin %q, action %q: %s %q collides with %s of the same name",
					pluginID, action.ID, kind, arg.Name, prev))
				continue
			}
			names[arg.Name] = kind
		}
	}
	record("input", action.Inputs)
	record("parameter", action.Parameters)

	outputs := make(map[string]struct{})
	for _, out := range action.Outputs {
		if _, dup := outputs[out.Name]; dup {
			errs = append(errs, fmt.Sprintf(
				"plugin %q, action %q: output %q declared more than once",
				pluginID, action.ID, out.Name))
		}
		outputs[out.Name] = struct{}{}
	}

	return errs
}
