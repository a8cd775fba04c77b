// Package provenance models the recorded computational history a replay
// script is synthesized from: a DAG of action invocations and the artifacts
// they produced and consumed.
//
// Records are read from YAML files listing artifacts with their producing
// invocation. Parsing validates identifiers, resolves artifact references
// between invocations into graph edges, and rejects cycles, so downstream
// code can assume a well-formed DAG.
package provenance
