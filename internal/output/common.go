package output

import (
	"io"
	"os"
	"strings"
	"time"
)

const (
	reportDateTimeLayout = "2006-01-02T15:04:05"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(reportDateTimeLayout)
}

func selectorLabel(selector string) string {
	if strings.TrimSpace(selector) == "" {
		return "HEAD"
	}
	return selector
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
