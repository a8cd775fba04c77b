// Package replay drives script synthesis: it walks a provenance DAG in
// topological order and renders each invocation through the render package,
// producing the final executable document.
package replay
