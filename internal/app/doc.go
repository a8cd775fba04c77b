// Package app wires the application together: it owns configuration,
// logger construction, manifest loading, registry population, and the run
// loop that turns a provenance record into a rendered script.
package app
