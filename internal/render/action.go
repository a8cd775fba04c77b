package render

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/provreplay/internal/config"
)

const (
	indent = "    "

	// collectiveHandle is the conventional variable that groups every
	// output of an invocation when individual binding is disabled.
	collectiveHandle = "action_results"

	// DefaultCollectionThreshold is the recorded-output count above which
	// outputs are grouped under the collective handle.
	DefaultCollectionThreshold = 2

	// runtimeModule is the host scripting interface the generated code
	// imports from.
	runtimeModule = "replay_api"

	saveResultsLine = "# SAVE: comment out the following with '# ' to skip saving Results to disk"
	saveResultLine  = "# SAVE: comment out the following with '# ' to skip saving this Result to disk"
)

// driftWarning precedes an argument whose recorded name is missing from the
// live signature. The warning is indented to sit inside the call.
var driftWarning = []string{
	indent + "# FIXME: The following parameter name was not found in your current",
	indent + "# environment. This may occur when the plugin version you have installed",
	indent + "# does not match the version used in the original analysis. Please see",
	indent + "# the docs and correct the parameter name before running.",
}

// InputOpt is one recorded argument of an invocation: a name bound either
// to a usage variable or to a literal value. Exactly one of Variable and
// Literal is meaningful; Variable wins when non-nil.
type InputOpt struct {
	Name     string
	Variable UsageVariable
	Literal  cty.Value
}

// InputOptions is the ordered argument list recorded for one invocation.
type InputOptions []InputOpt

// Renderer templates action invocations and the extension renderings
// (metadata loading, format imports) into a ScriptAssembler.
type Renderer struct {
	asm                 *ScriptAssembler
	collectionThreshold int
}

// NewRenderer creates a Renderer bound to asm using the default collection
// threshold.
func NewRenderer(asm *ScriptAssembler) *Renderer {
	return &Renderer{asm: asm, collectionThreshold: DefaultCollectionThreshold}
}

// SetCollectionThreshold overrides the recorded-output count above which
// outputs bind to the collective handle.
func (r *Renderer) SetCollectionThreshold(n int) {
	r.collectionThreshold = n
}

// Assembler returns the assembler this renderer appends to.
func (r *Renderer) Assembler() *ScriptAssembler { return r.asm }

// RenderAction emits the body lines for one action invocation. There is no
// failure path: signature drift degrades to an inline warning comment, and
// outputs missing from provenance bind to a placeholder.
func (r *Renderer) RenderAction(action *config.ActionDefinition, opts InputOptions, outputs OutputSet) {
	declared := action.OutputNames()
	style := DecideOutputStyle(outputs.Known(), len(declared), r.collectionThreshold)

	var lhs string
	if style == StyleCollective {
		lhs = collectiveHandle
	} else {
		lhs = strings.TrimSpace(strings.Join(BindOutputs(declared, outputs), ", "))
	}

	lines := []string{
		fmt.Sprintf("%s = %s_actions.%s(", lhs, action.PluginID, action.ID),
	}

	for _, opt := range opts {
		if !action.HasArg(opt.Name) {
			lines = append(lines, driftWarning...)
		}
		lines = append(lines, fmt.Sprintf("%s%s=%s,", indent, opt.Name, renderArgValue(opt)))
	}
	lines = append(lines, ")")

	if style == StyleCollective {
		for _, name := range declared {
			if v, ok := outputs.Lookup(name); ok {
				lines = append(lines, fmt.Sprintf("%s = %s.%s", v.ToInterfaceName(), collectiveHandle, name))
			}
		}
	}

	lines = append(lines, saveResultsLine)
	for _, pair := range outputs {
		if pair.Variable == nil {
			continue
		}
		name := pair.Variable.ToInterfaceName()
		lines = append(lines, fmt.Sprintf("%s.save('%s')", name, name))
	}
	lines = append(lines, "")

	r.asm.RecordImport(runtimeModule+".plugins", action.PluginID+"_actions")
	r.asm.AddLines(lines)
}

// renderArgValue renders one recorded argument value. Variable references
// render as their interface name (raw literals by definition render
// verbatim); recorded literals render through FormatLiteral.
func renderArgValue(opt InputOpt) string {
	if opt.Variable != nil {
		return opt.Variable.ToInterfaceName()
	}
	return FormatLiteral(opt.Literal)
}
