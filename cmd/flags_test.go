package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/masmgr/revwalk-go/internal/output"
)

func TestGetOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  output.OutputFormat
	}{
		{input: "json", want: output.FormatJSON},
		{input: "csv", want: output.FormatCSV},
		{input: "markdown", want: output.FormatMarkdown},
		{input: "md", want: output.FormatMarkdown},
		{input: "ci", want: output.FormatCI},
		{input: "ndjson", want: output.FormatCI},
		{input: "unknown", want: output.FormatConsole},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := getOutputFormat(tt.input); got != tt.want {
				t.Fatalf("getOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildRevSpecifier(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		leftRight     bool
		wantParams    []string
		wantLeftRight bool
	}{
		{name: "DefaultRevision", args: nil, wantParams: []string{"HEAD"}},
		{name: "ExplicitRevision", args: []string{"main"}, wantParams: []string{"main"}},
		{name: "SymmetricDifference", args: []string{"main...topic"}, wantParams: []string{"main...topic"}, wantLeftRight: true},
		{name: "FlagEnablesLeftRight", args: []string{"main..topic"}, leftRight: true, wantParams: []string{"main..topic"}, wantLeftRight: true},
		{name: "LeftRightArgument", args: []string{"--left-right", "a...b"}, wantParams: []string{"a...b"}, wantLeftRight: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := buildRevSpecifier(tt.args, tt.leftRight, "HEAD")
			if strings.Join(spec.Parameters, " ") != strings.Join(tt.wantParams, " ") {
				t.Errorf("Parameters = %v, want %v", spec.Parameters, tt.wantParams)
			}
			if spec.LeftRight != tt.wantLeftRight {
				t.Errorf("LeftRight = %v, want %v", spec.LeftRight, tt.wantLeftRight)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("QuietByDefault", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, false, false)
		if logger.Enabled(context.Background(), slog.LevelInfo) {
			t.Error("info should be disabled without verbose")
		}
		logger.Warn("record anomaly")
		if !strings.Contains(buf.String(), "record anomaly") {
			t.Errorf("warning not logged: %q", buf.String())
		}
	})

	t.Run("Verbose", func(t *testing.T) {
		logger := newLogger(&bytes.Buffer{}, true, false)
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug should be enabled with verbose")
		}
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, false, true).Warn("record anomaly", "index", 3)
		if !strings.HasPrefix(buf.String(), "{") {
			t.Errorf("expected JSON log line, got %q", buf.String())
		}
	})
}
