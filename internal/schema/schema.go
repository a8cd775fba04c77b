// Package schema declares the HCL shapes of plugin manifest files. These
// structs are decode targets for gohcl only; the rest of the application
// consumes the format-agnostic model in the config package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// ArgBlock represents one `input`, `parameter`, or `output` block inside an
// action declaration.
type ArgBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type,optional"`
	Description string         `hcl:"description,optional"`
}

// ActionBlock represents an `action` block: a single callable unit and its
// declared signature. Block order inside the file is preserved by gohcl,
// which is how declaration order reaches the model.
type ActionBlock struct {
	ID          string      `hcl:"action_id,label"`
	Description string      `hcl:"description,optional"`
	Inputs      []*ArgBlock `hcl:"input,block"`
	Parameters  []*ArgBlock `hcl:"parameter,block"`
	Outputs     []*ArgBlock `hcl:"output,block"`
}

// PluginBlock represents a `plugin` block and the actions it provides.
type PluginBlock struct {
	ID          string         `hcl:"plugin_id,label"`
	Description string         `hcl:"description,optional"`
	Actions     []*ActionBlock `hcl:"action,block"`
}

// ManifestConfig represents the top-level structure of a manifest file.
type ManifestConfig struct {
	Plugins []*PluginBlock `hcl:"plugin,block"`
	Body    hcl.Body       `hcl:",remain"`
}
