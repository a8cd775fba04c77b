// Package registry provides the live action lookup used during script
// synthesis.
//
// The Registry holds the action signatures declared by plugin manifests as
// they exist in the current environment. Provenance records carry their own
// idea of those signatures; the two may diverge, and the renderer treats the
// registry's copy as authoritative while annotating the differences.
//
// The registry is populated once at startup and then validated so that
// malformed manifests (duplicate identifiers, colliding argument names) are
// rejected before any rendering begins.
package registry
