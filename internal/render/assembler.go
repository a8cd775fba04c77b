package render

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// commentWidth is the column budget for wrapped comments, including the
// comment marker and its trailing space.
const commentWidth = 79

// ScriptAssembler accumulates the pieces of one replay script: header,
// body, footer, and imports. State is two-tiered. The session tier (header,
// body, footer, local imports, the init-data diagnostic map) is cleared by
// a flush; the process tier (global imports) survives flushes so that a
// symbol already imported by an earlier render in the same process is not
// emitted again, and is cleared only by an explicit full reset.
type ScriptAssembler struct {
	localImports  *ImportRegistry
	globalImports *ImportRegistry

	header   []string
	recorder []string
	footer   []string

	// initDataRefs tracks where each initialized variable came from, for
	// diagnostics. Keyed by interface name.
	initDataRefs map[string]string
}

// NewScriptAssembler creates an assembler with empty state in both tiers.
func NewScriptAssembler() *ScriptAssembler {
	a := &ScriptAssembler{
		localImports:  NewImportRegistry(),
		globalImports: NewImportRegistry(),
	}
	a.Reset(true)
	return a
}

// Reset clears the session tier. When resetGlobalImports is true the
// process tier is cleared as well.
func (a *ScriptAssembler) Reset(resetGlobalImports bool) {
	a.localImports.Reset()
	a.header = nil
	a.recorder = nil
	a.footer = nil
	a.initDataRefs = make(map[string]string)
	if resetGlobalImports {
		a.globalImports.Reset()
	}
}

// AddLines appends lines to the body buffer.
func (a *ScriptAssembler) AddLines(lines []string) {
	a.recorder = append(a.recorder, lines...)
}

// AppendHeader appends lines to the header buffer.
func (a *ScriptAssembler) AppendHeader(lines []string) {
	a.header = append(a.header, lines...)
}

// AppendFooter appends lines to the footer buffer.
func (a *ScriptAssembler) AppendFooter(lines []string) {
	a.footer = append(a.footer, lines...)
}

// RecordImport registers an import obligation. Obligations already known to
// the process tier are skipped entirely, so re-rendered scripts in one
// process do not repeat imports a caller has already seen.
func (a *ScriptAssembler) RecordImport(module, symbol string) {
	if a.globalImports.Has(module, symbol) {
		return
	}
	a.localImports.Record(module, symbol)
	a.globalImports.Record(module, symbol)
}

// NoteInitData records the origin of an initialized variable for
// diagnostics.
func (a *ScriptAssembler) NoteInitData(interfaceName, origin string) {
	a.initDataRefs[interfaceName] = origin
}

// InitDataRefs exposes the diagnostic origin map.
func (a *ScriptAssembler) InitDataRefs() map[string]string {
	return a.initDataRefs
}

// Comment wraps text into comment lines no wider than the column budget,
// never splitting a word, and appends them to the body followed by one
// blank line.
func (a *ScriptAssembler) Comment(text string) {
	wrapped := wordwrap.WrapString(text, uint(commentWidth-len("# ")))
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = "# " + lines[i]
	}
	lines = append(lines, "")
	a.AddLines(lines)
}

// Render freezes the accumulated state into the final document: header,
// blank separator, sorted local imports, blank separator, body, then the
// footer behind its own blank separator. Empty sections contribute nothing,
// separators included. When flush is true the session tier is cleared after
// assembly; global imports persist.
func (a *ScriptAssembler) Render(flush bool) string {
	var doc []string

	if len(a.header) > 0 {
		doc = append(doc, a.header...)
		doc = append(doc, "")
	}
	if imports := a.localImports.Materialize(); len(imports) > 0 {
		doc = append(doc, imports...)
		doc = append(doc, "")
	}
	doc = append(doc, a.recorder...)
	if len(a.footer) > 0 {
		doc = append(doc, "")
		doc = append(doc, a.footer...)
	}

	rendered := strings.Join(doc, "\n")
	if flush {
		a.Reset(false)
	}
	return rendered
}
