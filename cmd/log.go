package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// LogCmd returns the log command.
func LogCmd() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Aliases:   []string{"l"},
		Usage:     "Read revision history incrementally and report it",
		ArgsUsage: "[revision selector...]",
		Flags:     commonFlags(),
		Action:    logAction,
	}
}

func logAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	fixes, err := detectBugfixes(ctx.Revisions, resolveBugPatterns(c, ctx.Config))
	if err != nil {
		return err
	}

	report := buildRevisionReport(ctx, fixes)
	if err := writeRevisionReport(c, ctx, report); err != nil {
		return err
	}

	if c.Bool("strict") {
		if err := ctx.Result.Err(); err != nil {
			return fmt.Errorf("history was not read cleanly: %w", err)
		}
	}
	return nil
}
