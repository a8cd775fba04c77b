package render

import (
	"fmt"
	"sort"
)

// ImportRecord identifies one import obligation: a symbol pulled from a
// module. Two records are the same obligation when both fields match.
type ImportRecord struct {
	Module string
	Symbol string
}

// ImportRegistry tracks import obligations with set semantics: recording
// the same obligation twice has no further effect, and materialization
// orders the result lexically regardless of insertion order.
type ImportRegistry struct {
	records map[ImportRecord]struct{}
}

// NewImportRegistry creates an empty registry.
func NewImportRegistry() *ImportRegistry {
	return &ImportRegistry{records: make(map[ImportRecord]struct{})}
}

// Record adds an import obligation. It is idempotent and never fails.
func (r *ImportRegistry) Record(module, symbol string) {
	r.records[ImportRecord{Module: module, Symbol: symbol}] = struct{}{}
}

// Has reports whether the obligation is already recorded.
func (r *ImportRegistry) Has(module, symbol string) bool {
	_, ok := r.records[ImportRecord{Module: module, Symbol: symbol}]
	return ok
}

// Len reports the number of distinct obligations.
func (r *ImportRegistry) Len() int { return len(r.records) }

// Reset drops every recorded obligation.
func (r *ImportRegistry) Reset() {
	r.records = make(map[ImportRecord]struct{})
}

// Materialize returns the deduplicated import statements, lexically sorted.
func (r *ImportRegistry) Materialize() []string {
	lines := make([]string, 0, len(r.records))
	for rec := range r.records {
		lines = append(lines, fmt.Sprintf("from %s import %s", rec.Module, rec.Symbol))
	}
	sort.Strings(lines)
	return lines
}
