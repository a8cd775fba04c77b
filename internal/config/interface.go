package config

import (
	"context"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads plugin manifests from the given paths (files or
	// directories), translates them into the format-agnostic model, and
	// returns it.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
