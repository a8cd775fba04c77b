package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of every plugin
// manifest the loader found.
type Model struct {
	Plugins map[string]*PluginDefinition
}

// PluginDefinition is the format-agnostic representation of one plugin
// manifest and the actions it declares.
type PluginDefinition struct {
	ID          string
	Description string
	Actions     []*ActionDefinition
}

// ActionDefinition is the live signature of a single action: ordered
// inputs, ordered parameters, and ordered outputs.
//
// Order is load-bearing. Declaration order decides the unpacking order of
// rendered output bindings, so the definition keeps slices rather than maps.
type ActionDefinition struct {
	PluginID    string
	ID          string
	Description string
	Inputs      []*ArgDefinition
	Parameters  []*ArgDefinition
	Outputs     []*ArgDefinition
}

// ArgDefinition describes one declared input, parameter, or output.
type ArgDefinition struct {
	Name        string
	Type        cty.Type
	Description string
}

// InputNames returns the declared input names in declaration order.
func (d *ActionDefinition) InputNames() []string {
	return argNames(d.Inputs)
}

// ParameterNames returns the declared parameter names in declaration order.
func (d *ActionDefinition) ParameterNames() []string {
	return argNames(d.Parameters)
}

// OutputNames returns the declared output names in declaration order.
func (d *ActionDefinition) OutputNames() []string {
	return argNames(d.Outputs)
}

// HasArg reports whether name is declared as an input or a parameter of the
// live signature. Recorded argument names absent from this combined set are
// signature drift.
func (d *ActionDefinition) HasArg(name string) bool {
	for _, in := range d.Inputs {
		if in.Name == name {
			return true
		}
	}
	for _, p := range d.Parameters {
		if p.Name == name {
			return true
		}
	}
	return false
}

func argNames(args []*ArgDefinition) []string {
	names := make([]string, 0, len(args))
	for _, a := range args {
		names = append(names, a.Name)
	}
	return names
}
