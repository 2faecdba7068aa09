package output

import (
	"time"

	"github.com/masmgr/revwalk-go/internal/aggregation"
	"github.com/masmgr/revwalk-go/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ RevisionReportWriter = (*ConsoleRevisionWriter)(nil)
	_ RevisionReportWriter = (*JSONRevisionWriter)(nil)
	_ RevisionReportWriter = (*CSVRevisionWriter)(nil)
	_ RevisionReportWriter = (*MarkdownRevisionWriter)(nil)
	_ RevisionReportWriter = (*CIRevisionWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	ShowBody   bool
}

// RevisionItem is one revision in a report.
type RevisionItem struct {
	Revision git.Revision
	Bugfix   bool
}

// RevisionReport holds the result of one revision walk.
type RevisionReport struct {
	RepoPath    string
	Selector    string
	GeneratedAt time.Time
	Duration    time.Duration
	Generations int
	Walked      int // revisions decoded before filtering
	Items       []RevisionItem
	Authors     *aggregation.AuthorSummary // nil when not computed
	Anomalies   []string
}

// BugfixCount returns the number of items marked as bug fixes.
func (r *RevisionReport) BugfixCount() int {
	n := 0
	for _, item := range r.Items {
		if item.Bugfix {
			n++
		}
	}
	return n
}

// topAuthors returns up to n of the most active authors.
func (r *RevisionReport) topAuthors(n int) []*aggregation.AuthorMetrics {
	if r.Authors == nil {
		return nil
	}
	return limitTop(r.Authors.Authors, n)
}

// RevisionReportWriter writes revision reports.
type RevisionReportWriter interface {
	Write(report *RevisionReport, options OutputOptions) error
}

// NewRevisionReportWriter creates a report writer for the specified format.
func NewRevisionReportWriter(format OutputFormat) RevisionReportWriter {
	switch format {
	case FormatJSON:
		return &JSONRevisionWriter{}
	case FormatCSV:
		return &CSVRevisionWriter{}
	case FormatMarkdown:
		return &MarkdownRevisionWriter{}
	case FormatCI:
		return &CIRevisionWriter{}
	default:
		return &ConsoleRevisionWriter{}
	}
}
