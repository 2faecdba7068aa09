package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// authorRows is how many authors the console and Markdown summaries list.
const authorRows = 10

// ConsoleRevisionWriter writes revision reports to the console.
type ConsoleRevisionWriter struct{}

// Write outputs the revision report as a table.
func (w *ConsoleRevisionWriter) Write(report *RevisionReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Revision Walk Results")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Selector: %s\n", selectorLabel(report.Selector))
	fmt.Fprintf(out, "Revisions: %d (walked %d, bug fixes %d)\n\n", len(report.Items), report.Walked, report.BugfixCount())

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tID\tSide\tDate\tAuthor\tParents\tSubject")
	fixColor := color.New(color.FgRed).SprintFunc()
	for i, item := range items {
		rev := item.Revision
		subject := truncateMessage(rev.Subject, 60)
		if item.Bugfix {
			subject = fixColor("[fix] ") + subject
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			i+1,
			rev.ShortID(),
			rev.Sign.String(),
			rev.When().UTC().Format("2006-01-02 15:04"),
			truncateMessage(rev.Author, 24),
			len(rev.Parents),
			subject,
		)
		if options.ShowBody && strings.TrimSpace(rev.Body) != "" {
			for _, line := range strings.Split(strings.TrimRight(rev.Body, "\n"), "\n") {
				fmt.Fprintf(tw, "\t\t\t\t\t\t    %s\n", line)
			}
		}
	}

	tw.Flush()

	if authors := report.topAuthors(authorRows); len(authors) > 0 {
		fmt.Fprintln(out)
		color.New(color.FgGreen).Fprintf(out, "Authors (entropy %.3f, top share %.1f%%)\n",
			report.Authors.Entropy, report.Authors.OwnershipRatio*100)
		atw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(atw, "Author\tRevisions\tMerges\tFixes\tBurst\tLast")
		for _, a := range authors {
			fmt.Fprintf(atw, "%s\t%d\t%d\t%d\t%.2f\t%s\n",
				truncateMessage(a.Name, 24), a.RevisionCount, a.MergeCount, a.BugfixCount,
				a.BurstScore, a.LastAt.UTC().Format("2006-01-02"))
		}
		atw.Flush()
	}

	if len(report.Anomalies) > 0 {
		warn := color.New(color.FgYellow)
		fmt.Fprintln(out)
		warn.Fprintf(out, "%d problem(s) while reading history:\n", len(report.Anomalies))
		for _, a := range report.Anomalies {
			fmt.Fprintf(out, "  - %s\n", a)
		}
	}

	return nil
}

func truncateMessage(msg string, maxLen int) string {
	r := []rune(msg)
	if len(r) <= maxLen {
		return msg
	}
	return string(r[:maxLen-3]) + "..."
}
