package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONRevisionWriter writes revision reports as JSON.
type JSONRevisionWriter struct{}

// JSONRevisionReport is the JSON output structure for a revision walk.
type JSONRevisionReport struct {
	RepoPath    string             `json:"repo"`
	Selector    string             `json:"selector"`
	GeneratedAt string             `json:"generatedAt"`
	DurationMs  int64              `json:"durationMs"`
	Generations int                `json:"generations"`
	Walked      int                `json:"walked"`
	Total       int                `json:"total"`
	BugfixCount int                `json:"bugfixCount"`
	Items       []JSONRevisionItem `json:"items"`
	Authors     *JSONAuthorSummary `json:"authors,omitempty"`
	Anomalies   []string           `json:"anomalies,omitempty"`
}

// JSONAuthorSummary is the JSON output structure for the author breakdown.
type JSONAuthorSummary struct {
	Entropy        float64          `json:"entropy"`
	OwnershipRatio float64          `json:"ownershipRatio"`
	Items          []JSONAuthorItem `json:"items"`
}

// JSONAuthorItem is the JSON output structure for a single author.
type JSONAuthorItem struct {
	Name        string  `json:"name"`
	Revisions   int     `json:"revisions"`
	Merges      int     `json:"merges"`
	Bugfixes    int     `json:"bugfixes"`
	BugfixRatio float64 `json:"bugfixRatio"`
	BurstScore  float64 `json:"burstScore"`
	First       string  `json:"first"`
	Last        string  `json:"last"`
}

// JSONRevisionItem is the JSON output structure for a single revision.
type JSONRevisionItem struct {
	ID        string   `json:"id"`
	Parents   []string `json:"parents"`
	Author    string   `json:"author"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body,omitempty"`
	Encoding  string   `json:"encoding,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Date      string   `json:"date"`
	Sign      string   `json:"sign,omitempty"`
	Bugfix    bool     `json:"bugfix"`
}

// Write outputs the revision report as JSON.
func (w *JSONRevisionWriter) Write(report *RevisionReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	jsonItems := make([]JSONRevisionItem, len(items))
	for i, item := range items {
		rev := item.Revision
		parents := rev.Parents
		if parents == nil {
			parents = []string{}
		}
		jsonItems[i] = JSONRevisionItem{
			ID:        rev.ID,
			Parents:   parents,
			Author:    rev.Author,
			Subject:   rev.Subject,
			Encoding:  rev.Encoding,
			Timestamp: rev.TimestampMillis,
			Date:      formatTimestamp(rev.When()),
			Sign:      rev.Sign.String(),
			Bugfix:    item.Bugfix,
		}
		if options.ShowBody {
			jsonItems[i].Body = rev.Body
		}
	}

	jsonReport := JSONRevisionReport{
		RepoPath:    report.RepoPath,
		Selector:    selectorLabel(report.Selector),
		GeneratedAt: formatTimestamp(report.GeneratedAt),
		DurationMs:  report.Duration.Milliseconds(),
		Generations: report.Generations,
		Walked:      report.Walked,
		Total:       len(report.Items),
		BugfixCount: report.BugfixCount(),
		Items:       jsonItems,
		Anomalies:   report.Anomalies,
	}

	if report.Authors != nil {
		summary := &JSONAuthorSummary{
			Entropy:        report.Authors.Entropy,
			OwnershipRatio: report.Authors.OwnershipRatio,
			Items:          make([]JSONAuthorItem, len(report.Authors.Authors)),
		}
		for i, a := range report.Authors.Authors {
			summary.Items[i] = JSONAuthorItem{
				Name:        a.Name,
				Revisions:   a.RevisionCount,
				Merges:      a.MergeCount,
				Bugfixes:    a.BugfixCount,
				BugfixRatio: a.BugfixRatio(),
				BurstScore:  a.BurstScore,
				First:       formatTimestamp(a.FirstAt),
				Last:        formatTimestamp(a.LastAt),
			}
		}
		jsonReport.Authors = summary
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
