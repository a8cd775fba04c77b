package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/provreplay/internal/ctxlog"
	"github.com/vk/provreplay/internal/provenance"
	"github.com/vk/provreplay/internal/replay"
)

// Run executes one synthesis cycle: parse the provenance record, replay it
// through the renderer, and deliver the script to the configured output.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	graph, err := provenance.ParseFile(ctx, a.config.ProvenancePath)
	if err != nil {
		return fmt.Errorf("failed to parse provenance record: %w", err)
	}
	a.logger.Info("Provenance record parsed.",
		"invocations", graph.Len(), "artifacts", len(graph.ParsedArtifactIDs()))

	driver := replay.New(a.registry, replay.Options{
		ToolName:            Name,
		Version:             Version,
		CollectionThreshold: a.config.CollectionThreshold,
	})
	script, err := driver.Synthesize(ctx, graph)
	if err != nil {
		return fmt.Errorf("failed to synthesize replay script: %w", err)
	}

	if a.config.OutputPath != "" {
		if err := os.WriteFile(a.config.OutputPath, []byte(script+"\n"), 0o755); err != nil {
			return fmt.Errorf("failed to write script to %s: %w", a.config.OutputPath, err)
		}
		a.logger.Info("Replay script written.", "path", a.config.OutputPath)
		return nil
	}

	if _, err := fmt.Fprintln(a.outW, script); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
