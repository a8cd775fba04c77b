package render

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Shebang is the interpreter line for generated scripts.
const Shebang = "#!/usr/bin/env python"

// HeaderBoundary is the visual boundary bracketing the header and footer.
var HeaderBoundary = "# " + strings.Repeat("-", 77)

// supportLine tells users where to go when a reproduced script misbehaves.
const supportLine = "# For user support, open an issue at https://github.com/vk/provreplay/issues."

// HowTo is the fixed usage note rendered into every header.
var HowTo = []string{
	"#",
	"# This script was generated from recorded provenance. Review it before",
	"# running: file paths and metadata must be pointed at your own data, and",
	"# annotated parameters may need correcting if your installed plugin",
	"# versions differ from those used in the original analysis.",
	"#",
}

// HeaderOpts configures BuildHeader. Empty optional fields are omitted from
// the output.
type HeaderOpts struct {
	ToolName  string
	Version   string
	Now       time.Time
	Shebang   string
	Boundary  string
	Copyright []string
	ExtraText []string
}

// BuildHeader constructs the header lines for a replay script: optional
// shebang and opening boundary, the timestamped attribution line, optional
// copyright block, the support line, optional extra text, and a closing
// boundary mirroring the opening one.
func BuildHeader(opts HeaderOpts) []string {
	var header []string

	if opts.Shebang != "" {
		header = append(header, opts.Shebang)
	}
	if opts.Boundary != "" {
		header = append(header, opts.Boundary)
	}

	header = append(header, fmt.Sprintf(
		"# Auto-generated by %s v.%s at %s on %s",
		opts.ToolName, opts.Version,
		opts.Now.Format("03:04:05 PM"), opts.Now.Format("02 Jan, 2006"),
	))

	header = append(header, opts.Copyright...)
	header = append(header, supportLine)
	header = append(header, opts.ExtraText...)

	if opts.Boundary != "" {
		header = append(header, opts.Boundary)
	}
	return header
}

// BuildFooter constructs the footer enumerating the source artifact
// identifiers that were parsed to produce the script. Identifiers are
// deduplicated and sorted, then paired two per line with a lone trailing
// identifier when the count is odd.
func BuildFooter(ids []string, boundary string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)

	var pairs []string
	for i := 0; i < len(unique); i += 2 {
		if i == len(unique)-1 {
			pairs = append(pairs, fmt.Sprintf("# %s", unique[i]))
		} else {
			pairs = append(pairs, fmt.Sprintf("# %s \t %s", unique[i], unique[i+1]))
		}
	}

	footer := []string{
		boundary,
		"# The following source artifacts were parsed to produce this script:",
	}
	footer = append(footer, pairs...)
	footer = append(footer, boundary, "")
	return footer
}

// BuildHeader assembles the standard header into the assembler's header
// buffer.
func (a *ScriptAssembler) BuildHeader(toolName, version string, now time.Time) {
	a.AppendHeader(BuildHeader(HeaderOpts{
		ToolName:  toolName,
		Version:   version,
		Now:       now,
		Shebang:   Shebang,
		Boundary:  HeaderBoundary,
		ExtraText: HowTo,
	}))
}

// BuildFooter assembles the standard footer into the assembler's footer
// buffer.
func (a *ScriptAssembler) BuildFooter(ids []string) {
	a.AppendFooter(BuildFooter(ids, HeaderBoundary))
}
