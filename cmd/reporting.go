package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/revwalk-go/internal/aggregation"
	"github.com/masmgr/revwalk-go/internal/bugfix"
	"github.com/masmgr/revwalk-go/internal/output"
)

func buildRevisionReport(ctx *CommandContext, fixes *bugfix.BugfixResult) *output.RevisionReport {
	items := make([]output.RevisionItem, len(ctx.Revisions))
	for i, rev := range ctx.Revisions {
		items[i] = output.RevisionItem{
			Revision: rev,
			Bugfix:   fixes.IsBugfixRevision(rev.ID),
		}
	}
	return &output.RevisionReport{
		RepoPath:    ctx.RepoPath,
		Selector:    ctx.Selector(),
		GeneratedAt: time.Now(),
		Duration:    ctx.Result.Duration,
		Generations: ctx.Result.Generations,
		Walked:      ctx.Result.Count(),
		Items:       items,
		Authors:     aggregation.NewAuthorMetricsAggregator(ctx.Config.Burst.WindowDays).Process(ctx.Revisions, fixes.IsBugfixRevision),
		Anomalies:   ctx.AnomalyMessages(),
	}
}

func writeRevisionReport(c *cli.Context, ctx *CommandContext, report *output.RevisionReport) error {
	opts := ctx.OutputOptions(c)
	writer := output.NewRevisionReportWriter(opts.Format)
	return writer.Write(report, opts)
}
