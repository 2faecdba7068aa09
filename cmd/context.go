package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/masmgr/revwalk-go/config"
	"github.com/masmgr/revwalk-go/internal/git"
	"github.com/masmgr/revwalk-go/internal/output"
	"github.com/urfave/cli/v2"
)

// newExecutable creates the history tool runner; tests replace it.
var newExecutable = func(path string) git.Executable {
	return git.GitExecutable{Path: path}
}

// CommandContext holds common state for command execution.
// It encapsulates config loading, the revision walk and author filtering.
type CommandContext struct {
	Config    *config.Config
	RepoPath  string
	Spec      *git.RevSpecifier
	Logger    *slog.Logger
	Result    *git.WalkResult
	Revisions []git.Revision // final snapshot after author filtering
}

// NewCommandContext creates a context from CLI flags and walks the
// selected revisions.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger := newLogger(c.App.ErrWriter, c.Bool("verbose"), c.Bool("log-json"))
	spec := buildRevSpecifier(c.Args().Slice(), c.Bool("left-right"), cfg.Walk.DefaultRevision)

	filter, err := git.NewAuthorFilter(cfg.Filters.Include, cfg.Filters.Exclude)
	if err != nil {
		return nil, err
	}

	var onSnapshot git.SnapshotFunc
	if c.Bool("progress") {
		onSnapshot = progressPrinter(c.App.ErrWriter)
	}

	repoPath := c.String("repo")
	revList := git.NewRevList(git.RevListOptions{
		RepoPath:               repoPath,
		Executable:             newExecutable(cfg.Walk.GitPath),
		Logger:                 logger,
		OnSnapshot:             onSnapshot,
		PublishEvery:           cfg.Walk.PublishEvery,
		DisableTimestampOffset: !cfg.Walk.LegacyTimestampOffset,
	})

	res, err := revList.Walk(c.Context, spec, cfg.Walk.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return &CommandContext{
		Config:    cfg,
		RepoPath:  repoPath,
		Spec:      spec,
		Logger:    logger,
		Result:    res,
		Revisions: filter.Apply(res.Snapshot),
	}, nil
}

// buildRevSpecifier turns positional arguments into a specifier, falling
// back to defaultRevision when none are given.
func buildRevSpecifier(args []string, leftRight bool, defaultRevision string) *git.RevSpecifier {
	spec := git.ParseRevSpecifier(args)
	if len(spec.Parameters) == 0 && defaultRevision != "" {
		spec.Parameters = []string{defaultRevision}
	}
	if leftRight {
		spec.LeftRight = true
	}
	return spec
}

// Selector returns the revision selector as typed.
func (ctx *CommandContext) Selector() string {
	return strings.Join(ctx.Spec.Parameters, " ")
}

// HasRevisions returns true if the walk produced any revisions.
func (ctx *CommandContext) HasRevisions() bool {
	return len(ctx.Revisions) > 0
}

// AnomalyMessages returns every problem of the walk as text.
func (ctx *CommandContext) AnomalyMessages() []string {
	var msgs []string
	if ctx.Result.Aborted != nil {
		msgs = append(msgs, "aborted: "+ctx.Result.Aborted.Error())
	}
	for _, a := range ctx.Result.Anomalies {
		msgs = append(msgs, a.Error())
	}
	if ctx.Result.ExitErr != nil {
		msgs = append(msgs, ctx.Result.ExitErr.Error())
	}
	return msgs
}

// OutputOptions creates OutputOptions from the merged configuration.
func (ctx *CommandContext) OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(ctx.Config.Output.Format),
		Top:        ctx.Config.Output.Top,
		OutputPath: c.String("output"),
		ShowBody:   ctx.Config.Output.ShowBody,
	}
}

func progressPrinter(w io.Writer) git.SnapshotFunc {
	if w == nil {
		w = os.Stderr
	}
	label := color.New(color.FgCyan).SprintFunc()
	return func(s git.Snapshot) {
		state := "partial"
		if s.Final {
			state = "final"
		}
		fmt.Fprintf(w, "%s generation %d: %d revisions (%s)\n", label("progress"), s.Generation, s.Len(), state)
	}
}
