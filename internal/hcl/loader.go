package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/provreplay/internal/config"
	"github.com/vk/provreplay/internal/ctxlog"
	"github.com/vk/provreplay/internal/schema"
)

// Loader loads plugin manifests written in HCL.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with a fresh HCL parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load implements config.Loader. Each path may be a single .hcl file or a
// directory that is walked recursively.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.From(ctx)

	model := &config.Model{Plugins: make(map[string]*config.PluginDefinition)}

	var files []string
	for _, path := range paths {
		found, err := findManifestFiles(path)
		if err != nil {
			return nil, fmt.Errorf("discovering manifests under %s: %w", path, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found.", "paths", paths)
		return model, nil
	}
	logger.Debug("Found manifest files to load.", "files", files)

	for _, file := range files {
		manifest, err := l.parseFile(file)
		if err != nil {
			return nil, err
		}
		for _, block := range manifest.Plugins {
			def, err := translatePlugin(block)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
			if existing, ok := model.Plugins[def.ID]; ok {
				// Multiple files may extend one plugin; actions accumulate.
				existing.Actions = append(existing.Actions, def.Actions...)
				continue
			}
			model.Plugins[def.ID] = def
		}
		logger.Debug("Loaded manifest file.", "file", file)
	}

	logger.Info("Plugin manifests loaded.", "plugins", len(model.Plugins))
	return model, nil
}

// parseFile decodes one manifest file into its schema representation.
func (l *Loader) parseFile(path string) (*schema.ManifestConfig, error) {
	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL file %s: %w", path, diags)
	}

	var manifest schema.ManifestConfig
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, diags)
	}
	return &manifest, nil
}

// findManifestFiles resolves a path into the list of .hcl files beneath it.
func findManifestFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
