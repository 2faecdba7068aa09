package output

import (
	"fmt"
	"strings"

	"github.com/masmgr/revwalk-go/internal/git"
)

// MarkdownRevisionWriter writes revision reports as Markdown.
type MarkdownRevisionWriter struct{}

// Write outputs the revision report as Markdown.
func (w *MarkdownRevisionWriter) Write(report *RevisionReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Revision Walk Results")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Selector:** `%s`\n\n", selectorLabel(report.Selector))
	fmt.Fprintf(out, "**Revisions:** %d (walked %d, bug fixes %d)\n\n", len(report.Items), report.Walked, report.BugfixCount())

	fmt.Fprintln(out, "## Revisions")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| # | ID | Side | Date | Author | Parents | Subject |")
	fmt.Fprintln(out, "|---|----|------|------|--------|---------|---------|")

	for i, item := range items {
		rev := item.Revision
		subject := escapeMarkdown(rev.Subject)
		if item.Bugfix {
			subject = getBugfixEmoji() + " " + subject
		}
		fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s | %d | %s |\n",
			i+1, rev.ShortID(), signLabel(rev.Sign), rev.When().UTC().Format("2006-01-02 15:04"),
			escapeMarkdown(rev.Author), len(rev.Parents), subject)
	}

	if options.ShowBody {
		for _, item := range items {
			body := strings.TrimSpace(item.Revision.Body)
			if body == "" {
				continue
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "### %s %s\n\n", item.Revision.ShortID(), escapeMarkdown(item.Revision.Subject))
			fmt.Fprintln(out, "```")
			fmt.Fprintln(out, body)
			fmt.Fprintln(out, "```")
		}
	}

	if authors := report.topAuthors(authorRows); len(authors) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Authors")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "**Entropy:** %.3f, **Top share:** %.1f%%\n\n", report.Authors.Entropy, report.Authors.OwnershipRatio*100)
		fmt.Fprintln(out, "| Author | Revisions | Merges | Fixes | Burst | Last |")
		fmt.Fprintln(out, "|--------|-----------|--------|-------|-------|------|")
		for _, a := range authors {
			fmt.Fprintf(out, "| %s | %d | %d | %d | %.2f | %s |\n",
				escapeMarkdown(a.Name), a.RevisionCount, a.MergeCount, a.BugfixCount,
				a.BurstScore, a.LastAt.UTC().Format("2006-01-02"))
		}
	}

	if len(report.Anomalies) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Problems")
		fmt.Fprintln(out)
		for _, a := range report.Anomalies {
			fmt.Fprintf(out, "- %s\n", escapeMarkdown(a))
		}
	}

	return nil
}

func getBugfixEmoji() string {
	return "\U0001F41B"
}

func signLabel(s git.Sign) string {
	switch s {
	case git.SignLeft:
		return "left"
	case git.SignRight:
		return "right"
	case git.SignBoundary:
		return "boundary"
	case git.SignUninteresting:
		return "excluded"
	default:
		return ""
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
