package render

// OutputStyle is the strategy for binding an action's outputs.
type OutputStyle int

const (
	// StyleIndividual destructures outputs into one variable each.
	StyleIndividual OutputStyle = iota
	// StyleCollective binds every output to a single results handle and
	// extracts the recorded ones afterwards.
	StyleCollective
)

// DecideOutputStyle picks the binding strategy for an invocation. Grouping
// kicks in when provenance recorded more outputs than the configured
// threshold, or when the live signature declares more than five outputs
// regardless of how many were recorded.
func DecideOutputStyle(knownOutputs, declaredOutputs, threshold int) OutputStyle {
	if knownOutputs > threshold || declaredOutputs > 5 {
		return StyleCollective
	}
	return StyleIndividual
}

// OutputPair associates one declared output name with the usage variable
// provenance recorded for it. Variable is nil when the record is missing.
type OutputPair struct {
	Name     string
	Variable UsageVariable
}

// OutputSet is an ordered mapping from declared output name to an optional
// usage variable.
type OutputSet []OutputPair

// Lookup returns the variable recorded for name, if any.
func (s OutputSet) Lookup(name string) (UsageVariable, bool) {
	for _, pair := range s {
		if pair.Name == name && pair.Variable != nil {
			return pair.Variable, true
		}
	}
	return nil, false
}

// Known counts the outputs provenance actually recorded.
func (s OutputSet) Known() int {
	known := 0
	for _, pair := range s {
		if pair.Variable != nil {
			known++
		}
	}
	return known
}

// BindOutputs produces the destructuring targets for an invocation in the
// action's declared output order, never provenance's. Outputs absent from
// the set bind to the conventional "_" placeholder. A single-entry result
// gains an empty trailing entry so that joining with ", " leaves a trailing
// separator, which keeps a lone target unambiguous as a one-element group.
func BindOutputs(declared []string, outputs OutputSet) []string {
	targets := make([]string, 0, len(declared))
	for _, name := range declared {
		if v, ok := outputs.Lookup(name); ok {
			targets = append(targets, v.ToInterfaceName())
		} else {
			targets = append(targets, "_")
		}
	}
	if len(targets) == 1 {
		targets = append(targets, "")
	}
	return targets
}
