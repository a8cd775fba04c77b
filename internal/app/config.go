package app

import (
	"fmt"
)

// AppConfig holds everything an App instance needs to run.
type AppConfig struct {
	// ProvenancePath is the YAML provenance record to replay.
	ProvenancePath string
	// PluginsPath is the directory of plugin manifests to load live
	// signatures from.
	PluginsPath string
	// OutputPath is where the rendered script is written; empty means
	// stdout.
	OutputPath string

	LogFormat string
	LogLevel  string

	// CollectionThreshold is the recorded-output count above which an
	// invocation's outputs are grouped; 0 keeps the renderer default.
	CollectionThreshold int
}

// NewConfig validates a raw AppConfig and returns it.
func NewConfig(c AppConfig) (*AppConfig, error) {
	if c.ProvenancePath == "" {
		return nil, fmt.Errorf("provenance record path is required")
	}
	if c.CollectionThreshold < 0 {
		return nil, fmt.Errorf("collection threshold must not be negative")
	}
	return &c, nil
}
