package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/masmgr/revwalk-go/config"
	"github.com/masmgr/revwalk-go/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "revwalk",
		Usage:   "Incremental revision history reader for Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			LogCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: defaultAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.IntFlag{
			Name:    "max",
			Aliases: []string{"n"},
			Usage:   "Maximum number of revisions to read (default: from config, -1 for all)",
		},
		&cli.BoolFlag{
			Name:  "left-right",
			Usage: "Mark which side of a symmetric difference each revision is on",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Author glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Author glob patterns to exclude (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "bug-patterns",
			Usage: "Regex patterns marking bug fix subjects (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
		},
		&cli.IntFlag{
			Name:  "top",
			Usage: "Number of revisions to show (0 for all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "show-body",
			Usage: "Include message bodies in the report",
		},
		&cli.IntFlag{
			Name:  "window-days",
			Usage: "Window size in days for author burst detection",
		},
		&cli.BoolFlag{
			Name:  "no-time-offset",
			Usage: "Report timestamps exactly as recorded by git",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "Print snapshot sizes to stderr while reading",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Exit with an error when any record could not be read cleanly",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "log-json",
			Usage: "Write logs as JSON",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if c.IsSet("max") {
		cfg.Walk.MaxResults = c.Int("max")
	}
	if windowDays := c.Int("window-days"); windowDays > 0 {
		cfg.Burst.WindowDays = windowDays
	}
	if c.Bool("no-time-offset") {
		cfg.Walk.LegacyTimestampOffset = false
	}
	if format := c.String("format"); format != "" {
		cfg.Output.Format = format
	}
	if c.IsSet("top") {
		cfg.Output.Top = c.Int("top")
	}
	if c.Bool("show-body") {
		cfg.Output.ShowBody = true
	}

	return cfg, nil
}

// newLogger builds the diagnostic logger. Warnings and errors are always
// shown; verbose adds the debug trace of the walk.
func newLogger(w io.Writer, verbose, asJSON bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// defaultAction treats bare arguments as revision selectors for the log
// command.
func defaultAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	return logAction(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
