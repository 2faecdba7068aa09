package cmd

import (
	"fmt"

	"github.com/masmgr/revwalk-go/config"
	"github.com/masmgr/revwalk-go/internal/bugfix"
	"github.com/masmgr/revwalk-go/internal/git"
	"github.com/urfave/cli/v2"
)

func resolveBugPatterns(c *cli.Context, cfg *config.Config) []string {
	patterns := c.StringSlice("bug-patterns")
	if len(patterns) > 0 {
		return patterns
	}
	return cfg.Bugfix.Patterns
}

func detectBugfixes(revs []git.Revision, patterns []string) (*bugfix.BugfixResult, error) {
	detector, err := bugfix.NewDetector(patterns)
	if err != nil {
		return nil, fmt.Errorf("invalid bug pattern: %w", err)
	}
	return detector.Detect(revs), nil
}
