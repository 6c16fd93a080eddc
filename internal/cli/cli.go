package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/killweb/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("killweb", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
killweb - Monte Carlo estimation of kill chain success across a component graph.

Usage:
  killweb [options] [CONFIG_PATH]
  killweb -inspect URL -component NAME

Arguments:
  CONFIG_PATH
    Path to a killweb file (.json, .yaml, .yml or .hcl).

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the killweb file.")
	cFlag := flagSet.String("c", "", "Path to the killweb file (shorthand).")
	tasksFlag := flagSet.String("tasks", "tasks", "Directory containing task manifests.")
	iterationsFlag := flagSet.Int("iterations", 1000, "Number of Monte Carlo trials per kill chain. 0 skips the simulation.")
	topFlag := flagSet.Int("top", 5, "Number of best kill chains to print. 0 prints all.")
	selectFlag := flagSet.String("select", "", "Only print ranked kill chains containing this component.")
	reportFlag := flagSet.String("report", "", "Print detailed statistics for one kill chain, e.g. \"Radar, Missile\".")
	seedFlag := flagSet.Uint64("seed", 0, "Seed for the random stream. 0 picks a random seed.")
	saveFlag := flagSet.String("save", "", "Write the killweb to this file after the run.")
	saveNameFlag := flagSet.String("save-name", app.DefaultSaveName, "Killweb name used when saving.")
	serveFlag := flagSet.String("serve", "", "Serve the graph view on this address, e.g. \":8080\". Blocks until interrupted.")
	inspectFlag := flagSet.String("inspect", "", "URL of a running view server to query.")
	componentFlag := flagSet.String("component", "", "Component to inspect with -inspect.")
	silentFlag := flagSet.Bool("silent", false, "Suppress every diagnostic message.")
	sFlag := flagSet.Bool("s", false, "Suppress every diagnostic message (shorthand).")
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
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Config path determined.", "path", path)

	if path == "" && *inspectFlag == "" {
		slog.Debug("No config path provided, printing usage and exiting.")
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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:        path,
		TasksPath:         *tasksFlag,
		Iterations:        *iterationsFlag,
		TopN:              *topFlag,
		SelectedComponent: *selectFlag,
		ReportPath:        *reportFlag,
		Seed:              *seedFlag,
		SavePath:          *saveFlag,
		SaveName:          *saveNameFlag,
		ServeAddr:         *serveFlag,
		InspectURL:        *inspectFlag,
		InspectComponent:  *componentFlag,
		Silent:            *silentFlag || *sFlag,
		LogFormat:         logFormat,
		LogLevel:          logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
