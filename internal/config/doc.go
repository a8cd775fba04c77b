// Package config defines the format-agnostic model of plugin and action
// signatures, along with the Loader interface for reading manifests from
// various sources.
//
// The config.Model is the single source of truth for the registry: the
// signatures it holds are the "live" ones, which may legitimately differ
// from what a provenance record captured at analysis time. Concrete loader
// implementations, such as for HCL, live in separate packages.
package config
