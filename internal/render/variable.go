package render

import (
	"strconv"
	"strings"
	"unicode"
)

// VariableKind is the semantic category of a usage variable.
type VariableKind int

const (
	// KindArtifact marks a variable holding a data artifact.
	KindArtifact VariableKind = iota
	// KindMetadata marks a variable holding loaded metadata.
	KindMetadata
	// KindRaw marks a literal fragment that renders verbatim, never quoted.
	KindRaw
)

// UsageVariable is the narrow capability the renderer needs from a value
// used or produced during replay: a script-safe name and a category. The
// surrounding framework owns construction and lifecycle.
type UsageVariable interface {
	ToInterfaceName() string
	Kind() VariableKind
}

// Variable is the standard UsageVariable implementation for artifacts and
// metadata.
type Variable struct {
	name string
	kind VariableKind
}

// NewArtifactVariable creates an artifact-kind variable with the given
// interface name. The name must already be unique; use a Namer.
func NewArtifactVariable(name string) *Variable {
	return &Variable{name: name, kind: KindArtifact}
}

// NewMetadataVariable creates a metadata-kind variable with the given
// interface name.
func NewMetadataVariable(name string) *Variable {
	return &Variable{name: name, kind: KindMetadata}
}

// ToInterfaceName returns the variable's rendered identifier.
func (v *Variable) ToInterfaceName() string { return v.name }

// Kind returns the variable's semantic category.
func (v *Variable) Kind() VariableKind { return v.kind }

// RawLiteral is a fragment of source text that must appear in the generated
// script exactly as written, without quoting. It is used for placeholder
// text such as "<your data here>" that the user is expected to replace.
type RawLiteral struct {
	Value string
}

// Raw wraps a string as a RawLiteral.
func Raw(value string) RawLiteral { return RawLiteral{Value: value} }

// ToInterfaceName returns the wrapped text unmodified.
func (r RawLiteral) ToInterfaceName() string { return r.Value }

// Kind returns KindRaw.
func (r RawLiteral) Kind() VariableKind { return KindRaw }

// Namer hands out canonical, script-safe identifiers and guarantees that no
// two callers receive the same one within a script.
type Namer struct {
	taken map[string]struct{}
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{taken: make(map[string]struct{})}
}

// Unique sanitizes base into a valid identifier and reserves it. If the
// sanitized form is already reserved, a numeric suffix is appended.
func (n *Namer) Unique(base string) string {
	name := sanitizeIdentifier(base)
	if _, ok := n.taken[name]; ok {
		for i := 1; ; i++ {
			candidate := name + "_" + strconv.Itoa(i)
			if _, ok := n.taken[candidate]; !ok {
				name = candidate
				break
			}
		}
	}
	n.taken[name] = struct{}{}
	return name
}

// sanitizeIdentifier maps arbitrary text to a script-safe identifier:
// every run of non-alphanumeric characters becomes one underscore, and a
// leading digit is prefixed.
func sanitizeIdentifier(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			lastUnderscore = r == '_'
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "var"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "_" + out
	}
	return out
}
