package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vk/provreplay/internal/config"
	"github.com/vk/provreplay/internal/ctxlog"
	"github.com/vk/provreplay/internal/provenance"
	"github.com/vk/provreplay/internal/registry"
	"github.com/vk/provreplay/internal/render"
)

// Options configures a Driver. Zero values fall back to sensible defaults.
type Options struct {
	ToolName            string
	Version             string
	CollectionThreshold int
	// Now supplies the header timestamp; tests pin it.
	Now func() time.Time
}

// Driver synthesizes one replay script per Synthesize call. It owns the
// assembler and namer for the script being generated; callers serialize
// access, one driver per script.
type Driver struct {
	registry *registry.Registry
	asm      *render.ScriptAssembler
	renderer *render.Renderer
	namer    *render.Namer
	opts     Options

	// artifactVars maps produced artifacts to the variables bound to them,
	// so later consumers reference the same identifier.
	artifactVars map[uuid.UUID]render.UsageVariable
	// metadataVars dedupes metadata loads by recorded metadata name.
	metadataVars map[string]render.UsageVariable
}

// New creates a Driver reading live signatures from reg.
func New(reg *registry.Registry, opts Options) *Driver {
	if opts.ToolName == "" {
		opts.ToolName = "provreplay"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	asm := render.NewScriptAssembler()
	renderer := render.NewRenderer(asm)
	if opts.CollectionThreshold > 0 {
		renderer.SetCollectionThreshold(opts.CollectionThreshold)
	}

	return &Driver{
		registry:     reg,
		asm:          asm,
		renderer:     renderer,
		namer:        render.NewNamer(),
		opts:         opts,
		artifactVars: make(map[uuid.UUID]render.UsageVariable),
		metadataVars: make(map[string]render.UsageVariable),
	}
}

// Assembler exposes the underlying assembler, mainly for callers that want
// flush/reset control across multiple graphs.
func (d *Driver) Assembler() *render.ScriptAssembler { return d.asm }

// Synthesize renders the full replay script for a provenance graph: header,
// one body section per invocation in topological order, and the footer
// enumerating the parsed artifacts.
func (d *Driver) Synthesize(ctx context.Context, graph *provenance.Graph) (string, error) {
	logger := ctxlog.From(ctx)

	order, err := graph.TopologicalOrder()
	if err != nil {
		return "", fmt.Errorf("ordering provenance graph: %w", err)
	}

	d.asm.BuildHeader(d.opts.ToolName, d.opts.Version, d.opts.Now())

	for _, node := range order {
		switch node.Kind {
		case provenance.NodeImport:
			d.renderImport(graph, node)
		case provenance.NodeAction:
			d.renderAction(ctx, graph, node)
		default:
			logger.Warn("Skipping invocation of unknown kind.", "invocation", node.ID)
		}
	}

	d.asm.BuildFooter(graph.ParsedArtifactIDs())

	logger.Debug("Replay script synthesized.", "invocations", len(order))
	return d.asm.Render(false), nil
}

// renderImport templates the import of raw data as an artifact.
func (d *Driver) renderImport(graph *provenance.Graph, node *provenance.Node) {
	artifactID := node.Outputs[0].ArtifactID
	artifact, _ := graph.Artifact(artifactID)

	base := artifact.Name
	if base == "" {
		base = artifact.SemanticType
	}

	var view *render.ViewType
	if node.Format != "" {
		view = &render.ViewType{Name: node.Format, Module: node.FormatModule}
	}

	v := d.renderer.ImportFromFormat(d.namer.Unique(base), artifact.SemanticType, view)
	d.artifactVars[artifactID] = v
}

// renderAction templates one recorded action invocation against its live
// signature, degrading to the recorded signature when the action is not
// available in the current environment.
func (d *Driver) renderAction(ctx context.Context, graph *provenance.Graph, node *provenance.Node) {
	logger := ctxlog.From(ctx)

	live, ok := d.registry.Lookup(node.PluginID, node.ActionID)
	if !ok {
		logger.Warn("Action not found in the current environment; rendering from the recorded signature.",
			"plugin", node.PluginID, "action", node.ActionID)
		d.asm.Comment(fmt.Sprintf(
			"NOTE: plugin '%s' providing action '%s' is not installed in your current "+
				"environment. The call below was reconstructed from provenance alone; "+
				"install the plugin and verify the signature before running.",
			node.PluginID, node.ActionID))
		live = signatureFromRecord(node)
	}

	opts := make(render.InputOptions, 0, len(node.Inputs))
	for _, input := range node.Inputs {
		opts = append(opts, d.inputOpt(input))
	}

	outputs := d.bindRecordedOutputs(graph, node, live)
	d.renderer.RenderAction(live, opts, outputs)
}

// inputOpt translates one recorded argument into its rendering form.
func (d *Driver) inputOpt(input provenance.Input) render.InputOpt {
	switch input.Kind {
	case provenance.InputArtifact:
		return render.InputOpt{Name: input.Name, Variable: d.artifactVars[input.ArtifactID]}
	case provenance.InputMetadata:
		v, ok := d.metadataVars[input.Metadata.Name]
		if !ok {
			v = d.renderer.InitMetadata(d.namer.Unique(input.Metadata.Name), input.Metadata.DumpedFile)
			d.metadataVars[input.Metadata.Name] = v
		}
		return render.InputOpt{Name: input.Name, Variable: v}
	default:
		return render.InputOpt{Name: input.Name, Literal: input.Literal}
	}
}

// bindRecordedOutputs builds the OutputSet for an invocation: the live
// signature's declared outputs in declared order, each paired with the
// recorded variable when provenance captured one. Recorded outputs the live
// signature no longer declares are appended afterwards so their artifacts
// still get named variables and save statements.
func (d *Driver) bindRecordedOutputs(
	graph *provenance.Graph, node *provenance.Node, live *config.ActionDefinition,
) render.OutputSet {
	recorded := make(map[string]uuid.UUID, len(node.Outputs))
	for _, out := range node.Outputs {
		recorded[out.Name] = out.ArtifactID
	}

	var set render.OutputSet
	bind := func(name string, artifactID uuid.UUID) render.UsageVariable {
		base := name
		if artifact, ok := graph.Artifact(artifactID); ok && artifact.Name != "" {
			base = artifact.Name
		}
		v := render.NewArtifactVariable(d.namer.Unique(base))
		d.artifactVars[artifactID] = v
		return v
	}

	declared := make(map[string]struct{})
	for _, name := range live.OutputNames() {
		declared[name] = struct{}{}
		pair := render.OutputPair{Name: name}
		if artifactID, ok := recorded[name]; ok {
			pair.Variable = bind(name, artifactID)
		}
		set = append(set, pair)
	}

	for _, out := range node.Outputs {
		if _, ok := declared[out.Name]; ok {
			continue
		}
		set = append(set, render.OutputPair{Name: out.Name, Variable: bind(out.Name, out.ArtifactID)})
	}

	return set
}

// signatureFromRecord reconstructs a best-effort signature for an action
// the registry does not know, using only what provenance captured.
func signatureFromRecord(node *provenance.Node) *config.ActionDefinition {
	def := &config.ActionDefinition{
		PluginID: node.PluginID,
		ID:       node.ActionID,
	}
	for _, input := range node.Inputs {
		arg := &config.ArgDefinition{Name: input.Name}
		if input.Kind == provenance.InputLiteral {
			def.Parameters = append(def.Parameters, arg)
		} else {
			def.Inputs = append(def.Inputs, arg)
		}
	}
	for _, out := range node.Outputs {
		def.Outputs = append(def.Outputs, &config.ArgDefinition{Name: out.Name})
	}
	return def
}
