// Package render is the synthesis core: it turns recorded action
// invocations into the lines of an executable replay script.
//
// The package is split along the same seams as the rendered document. The
// ScriptAssembler owns the accumulating line buffers and the two-tier import
// state; the Renderer templates individual action invocations into those
// buffers, choosing between flat and collection-style output binding and
// annotating signature drift inline; BuildHeader and BuildFooter produce the
// boilerplate that brackets the body.
//
// Nothing in this package performs I/O or executes anything. Every operation
// appends to in-memory buffers, and Render is a pure read of the
// accumulated state aside from the optional flush. A single assembler is
// not safe for concurrent use; callers keep one per script.
package render
