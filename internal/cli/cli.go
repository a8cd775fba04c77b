package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/provreplay/internal/app"
	"github.com/vk/provreplay/internal/render"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated AppConfig,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.AppConfig, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("provreplay", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
provreplay - Synthesize an executable replay script from recorded provenance.

Usage:
  provreplay [options] [RECORD_PATH]

Arguments:
  RECORD_PATH
    Path to a provenance record (.yaml) describing the artifacts to replay.

Options:
`)
		flagSet.PrintDefaults()
	}

	recordFlag := flagSet.String("provenance", "", "Path to the provenance record file.")
	pFlag := flagSet.String("p", "", "Path to the provenance record file (shorthand).")
	pluginsFlag := flagSet.String("plugins-path", "plugins", "Path to the directory containing plugin manifests.")
	outputFlag := flagSet.String("o", "", "Write the rendered script to this file instead of stdout.")
	thresholdFlag := flagSet.Int("collection-threshold", render.DefaultCollectionThreshold,
		"Recorded-output count above which outputs are grouped into a single results variable.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *recordFlag != "" {
		path = *recordFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Provenance record path determined.", "path", path)

	if path == "" {
		slog.Debug("No record path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.AppConfig{
		ProvenancePath:      path,
		PluginsPath:         *pluginsFlag,
		OutputPath:          *outputFlag,
		LogFormat:           logFormat,
		LogLevel:            logLevel,
		CollectionThreshold: *thresholdFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
