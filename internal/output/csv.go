package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
)

// CSVRevisionWriter writes revision reports as CSV.
type CSVRevisionWriter struct{}

// Write outputs the revision report as CSV.
func (w *CSVRevisionWriter) Write(report *RevisionReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"ID", "Parents", "Author", "Date", "Timestamp", "Sign", "Encoding", "Bugfix", "Subject"}
	if options.ShowBody {
		headers = append(headers, "Body")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, item := range items {
		rev := item.Revision
		row := []string{
			rev.ID,
			strings.Join(rev.Parents, " "),
			rev.Author,
			formatTimestamp(rev.When()),
			strconv.FormatInt(rev.TimestampMillis, 10),
			rev.Sign.String(),
			rev.Encoding,
			strconv.FormatBool(item.Bugfix),
			rev.Subject,
		}
		if options.ShowBody {
			row = append(row, rev.Body)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
