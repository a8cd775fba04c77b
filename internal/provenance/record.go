package provenance

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vk/provreplay/internal/ctxlog"
)

// recordFile is the YAML shape of a provenance record: one entry per parsed
// artifact, each naming the invocation that produced it.
type recordFile struct {
	Artifacts []recordArtifact `yaml:"artifacts"`
}

type recordArtifact struct {
	UUID         string       `yaml:"uuid"`
	Name         string       `yaml:"name"`
	SemanticType string       `yaml:"semantic_type"`
	Origin       recordOrigin `yaml:"origin"`
}

// recordOrigin holds exactly one of its alternatives.
type recordOrigin struct {
	Import *recordImport `yaml:"import"`
	Action *recordAction `yaml:"action"`
}

type recordImport struct {
	Format       string `yaml:"format"`
	FormatModule string `yaml:"format_module"`
}

type recordAction struct {
	Invocation string         `yaml:"invocation"`
	Plugin     string         `yaml:"plugin"`
	Action     string         `yaml:"action"`
	Inputs     []recordArg    `yaml:"inputs"`
	Outputs    []recordOutput `yaml:"outputs"`
}

// recordArg binds an argument name to exactly one of: an artifact
// reference, a metadata reference, or a literal value.
type recordArg struct {
	Name     string `yaml:"name"`
	Artifact string `yaml:"artifact"`
	Metadata string `yaml:"metadata"`
	File     string `yaml:"file"`
	Value    any    `yaml:"value"`
}

type recordOutput struct {
	Name     string `yaml:"name"`
	Artifact string `yaml:"artifact"`
}

// ParseFile reads a provenance record from disk and builds the DAG.
func ParseFile(ctx context.Context, path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading provenance record %s: %w", path, err)
	}
	graph, err := Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("provenance record %s: %w", path, err)
	}
	return graph, nil
}

// Parse builds the provenance DAG from a YAML record. It validates artifact
// identifiers, merges artifacts that share an invocation, resolves artifact
// references into edges, and rejects dangling references and cycles.
func Parse(ctx context.Context, data []byte) (*Graph, error) {
	logger := ctxlog.From(ctx)

	var record recordFile
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	if len(record.Artifacts) == 0 {
		return nil, fmt.Errorf("record lists no artifacts")
	}

	graph := newGraph()

	// First pass: register artifacts and their producing invocations.
	for _, entry := range record.Artifacts {
		id, err := uuid.Parse(entry.UUID)
		if err != nil {
			return nil, fmt.Errorf("artifact %q: invalid uuid: %w", entry.UUID, err)
		}
		if _, dup := graph.artifacts[id]; dup {
			return nil, fmt.Errorf("artifact %s listed more than once", id)
		}

		node, err := graph.nodeForOrigin(id, entry)
		if err != nil {
			return nil, err
		}

		outputName, err := outputNameFor(node, id)
		if err != nil {
			return nil, err
		}

		graph.artifacts[id] = &Artifact{
			ID:           id,
			Name:         entry.Name,
			SemanticType: entry.SemanticType,
			Producer:     node,
			OutputName:   outputName,
		}
	}

	// Second pass: resolve artifact references into edges.
	for _, node := range graph.nodes {
		if err := graph.linkInputs(node); err != nil {
			return nil, err
		}
	}

	if err := graph.detectCycles(); err != nil {
		return nil, err
	}

	logger.Debug("Provenance record parsed.",
		"artifacts", len(graph.artifacts), "invocations", len(graph.nodes))
	return graph, nil
}

// nodeForOrigin returns the invocation node producing the given artifact,
// creating or extending it as needed.
func (g *Graph) nodeForOrigin(id uuid.UUID, entry recordArtifact) (*Node, error) {
	switch {
	case entry.Origin.Import != nil && entry.Origin.Action != nil:
		return nil, fmt.Errorf("artifact %s: origin declares both import and action", id)

	case entry.Origin.Import != nil:
		imp := entry.Origin.Import
		node := &Node{
			ID:           "import:" + id.String(),
			Kind:         NodeImport,
			SemanticType: entry.SemanticType,
			Format:       imp.Format,
			FormatModule: imp.FormatModule,
			Outputs:      []Output{{Name: entry.Name, ArtifactID: id}},
		}
		g.nodes[node.ID] = node
		return node, nil

	case entry.Origin.Action != nil:
		return g.mergeActionNode(id, entry.Origin.Action)

	default:
		return nil, fmt.Errorf("artifact %s: origin declares neither import nor action", id)
	}
}

// mergeActionNode creates the invocation node on first mention and checks
// that later mentions agree with it.
func (g *Graph) mergeActionNode(id uuid.UUID, action *recordAction) (*Node, error) {
	if action.Invocation == "" {
		return nil, fmt.Errorf("artifact %s: action origin has no invocation id", id)
	}

	if existing, ok := g.nodes[action.Invocation]; ok {
		if existing.Kind != NodeAction {
			return nil, fmt.Errorf("invocation %q: reused by an action origin", action.Invocation)
		}
		if existing.PluginID != action.Plugin || existing.ActionID != action.Action {
			return nil, fmt.Errorf(
				"invocation %q: recorded as %s.%s and %s.%s by different artifacts",
				action.Invocation, existing.PluginID, existing.ActionID, action.Plugin, action.Action)
		}
		return existing, nil
	}

	node := &Node{
		ID:       action.Invocation,
		Kind:     NodeAction,
		PluginID: action.Plugin,
		ActionID: action.Action,
	}

	for _, arg := range action.Inputs {
		input, err := translateArg(arg)
		if err != nil {
			return nil, fmt.Errorf("invocation %q, argument %q: %w", action.Invocation, arg.Name, err)
		}
		node.Inputs = append(node.Inputs, input)
	}
	for _, out := range action.Outputs {
		outID, err := uuid.Parse(out.Artifact)
		if err != nil {
			return nil, fmt.Errorf("invocation %q, output %q: invalid uuid: %w",
				action.Invocation, out.Name, err)
		}
		node.Outputs = append(node.Outputs, Output{Name: out.Name, ArtifactID: outID})
	}

	g.nodes[node.ID] = node
	return node, nil
}

// translateArg converts a recorded argument into the domain representation,
// enforcing that exactly one binding form is present.
func translateArg(arg recordArg) (Input, error) {
	bindings := 0
	if arg.Artifact != "" {
		bindings++
	}
	if arg.Metadata != "" {
		bindings++
	}
	if arg.Value != nil {
		bindings++
	}
	if bindings > 1 {
		return Input{}, fmt.Errorf("bound to more than one of artifact, metadata, value")
	}

	switch {
	case arg.Artifact != "":
		ref, err := uuid.Parse(arg.Artifact)
		if err != nil {
			return Input{}, fmt.Errorf("invalid artifact reference: %w", err)
		}
		return Input{Name: arg.Name, Kind: InputArtifact, ArtifactID: ref}, nil
	case arg.Metadata != "":
		return Input{
			Name:     arg.Name,
			Kind:     InputMetadata,
			Metadata: MetadataRef{Name: arg.Metadata, DumpedFile: arg.File},
		}, nil
	default:
		literal, err := toCtyValue(arg.Value)
		if err != nil {
			return Input{}, err
		}
		return Input{Name: arg.Name, Kind: InputLiteral, Literal: literal}, nil
	}
}

// outputNameFor finds which declared output of the producer the artifact is.
func outputNameFor(node *Node, id uuid.UUID) (string, error) {
	for _, out := range node.Outputs {
		if out.ArtifactID == id {
			return out.Name, nil
		}
	}
	return "", fmt.Errorf("artifact %s: not listed among the outputs of invocation %q", id, node.ID)
}

// linkInputs resolves a node's artifact references to their producers and
// records the dependency edges.
func (g *Graph) linkInputs(node *Node) error {
	seen := make(map[string]struct{})
	for _, input := range node.Inputs {
		if input.Kind != InputArtifact {
			continue
		}
		artifact, ok := g.artifacts[input.ArtifactID]
		if !ok {
			return fmt.Errorf("invocation %q: argument %q references unknown artifact %s",
				node.ID, input.Name, input.ArtifactID)
		}
		producer := artifact.Producer
		if producer.ID == node.ID {
			return fmt.Errorf("invocation %q: consumes its own output %s", node.ID, input.ArtifactID)
		}
		if _, dup := seen[producer.ID]; dup {
			continue
		}
		seen[producer.ID] = struct{}{}
		node.Deps = append(node.Deps, producer)
	}
	return nil
}
