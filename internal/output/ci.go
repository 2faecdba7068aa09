package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIRevisionWriter writes revision reports as NDJSON (one JSON object per line) for CI pipelines.
type CIRevisionWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type          string  `json:"type"`
	Total         int     `json:"total"`
	Walked        int     `json:"walked"`
	BugfixCount   int     `json:"bugfixCount"`
	MergeCount    int     `json:"mergeCount"`
	AnomalyCount  int     `json:"anomalyCount"`
	Generations   int     `json:"generations"`
	AuthorCount   int     `json:"authorCount"`
	AuthorEntropy float64 `json:"authorEntropy"`
}

// CIRevisionEntry represents a single revision in CI output.
type CIRevisionEntry struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Author    string `json:"author"`
	Timestamp int64  `json:"timestamp"`
	Subject   string `json:"subject"`
	Sign      string `json:"sign,omitempty"`
	Merge     bool   `json:"merge"`
	Bugfix    bool   `json:"bugfix"`
}

// Write outputs the revision report as NDJSON.
func (w *CIRevisionWriter) Write(report *RevisionReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	var bugfixCount, mergeCount int
	for _, item := range items {
		if item.Bugfix {
			bugfixCount++
		}
		if item.Revision.IsMerge() {
			mergeCount++
		}
	}

	summary := CISummary{
		Type:         "summary",
		Total:        len(items),
		Walked:       report.Walked,
		BugfixCount:  bugfixCount,
		MergeCount:   mergeCount,
		AnomalyCount: len(report.Anomalies),
		Generations:  report.Generations,
	}
	if report.Authors != nil {
		summary.AuthorCount = len(report.Authors.Authors)
		summary.AuthorEntropy = report.Authors.Entropy
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, item := range items {
		rev := item.Revision
		entry := CIRevisionEntry{
			Type:      "revision",
			ID:        rev.ID,
			Author:    rev.Author,
			Timestamp: rev.TimestampMillis,
			Subject:   rev.Subject,
			Sign:      rev.Sign.String(),
			Merge:     rev.IsMerge(),
			Bugfix:    item.Bugfix,
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
