package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/provreplay/internal/config"
	"github.com/vk/provreplay/internal/schema"
)

// translatePlugin converts the HCL-specific plugin schema into the agnostic
// model, preserving declaration order throughout.
func translatePlugin(block *schema.PluginBlock) (*config.PluginDefinition, error) {
	def := &config.PluginDefinition{
		ID:          block.ID,
		Description: block.Description,
	}
	for _, action := range block.Actions {
		translated, err := translateAction(block.ID, action)
		if err != nil {
			return nil, fmt.Errorf("plugin %q: %w", block.ID, err)
		}
		def.Actions = append(def.Actions, translated)
	}
	return def, nil
}

// translateAction converts one action block into its live signature.
func translateAction(pluginID string, block *schema.ActionBlock) (*config.ActionDefinition, error) {
	def := &config.ActionDefinition{
		PluginID:    pluginID,
		ID:          block.ID,
		Description: block.Description,
	}

	var err error
	if def.Inputs, err = translateArgs(block.Inputs); err != nil {
		return nil, fmt.Errorf("action %q: %w", block.ID, err)
	}
	if def.Parameters, err = translateArgs(block.Parameters); err != nil {
		return nil, fmt.Errorf("action %q: %w", block.ID, err)
	}
	if def.Outputs, err = translateArgs(block.Outputs); err != nil {
		return nil, fmt.Errorf("action %q: %w", block.ID, err)
	}
	return def, nil
}

func translateArgs(blocks []*schema.ArgBlock) ([]*config.ArgDefinition, error) {
	args := make([]*config.ArgDefinition, 0, len(blocks))
	for _, b := range blocks {
		argType := cty.DynamicPseudoType
		if b.Type != nil {
			resolved, diags := typeexpr.TypeConstraint(b.Type)
			if diags.HasErrors() {
				return nil, fmt.Errorf("arg %q: invalid type expression: %w", b.Name, diags)
			}
			argType = resolved
		}
		args = append(args, &config.ArgDefinition{
			Name:        b.Name,
			Type:        argType,
			Description: b.Description,
		})
	}
	return args, nil
}
