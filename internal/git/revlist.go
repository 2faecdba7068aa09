package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultPublishEvery is how many records are decoded between checkpoint
// snapshots.
const DefaultPublishEvery = 1000

// prettyFormat lists the fields of one record, separated by 0x01.
const prettyFormat = "--pretty=format:%H%x01%e%x01%an%x01%s%x01%b%x01%P%x01%at"

// RevListOptions configures a RevList.
type RevListOptions struct {
	RepoPath   string     // resolved to its work tree root; empty means the process working directory
	Executable Executable // defaults to GitExecutable{}
	Logger     *slog.Logger
	OnSnapshot SnapshotFunc

	PublishEvery           int
	DisableTimestampOffset bool
	Now                    func() time.Time
}

// RevList walks revision history through git log's incremental output.
type RevList struct {
	opts     RevListOptions
	exec     Executable
	logger   *slog.Logger
	now      func() time.Time
	repoDir  string
	resolved bool
	latest   Snapshot
}

// NewRevList creates a RevList with defaults applied.
func NewRevList(opts RevListOptions) *RevList {
	l := &RevList{opts: opts, exec: opts.Executable, logger: opts.Logger, now: opts.Now}
	if l.exec == nil {
		l.exec = GitExecutable{}
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.opts.PublishEvery <= 0 {
		l.opts.PublishEvery = DefaultPublishEvery
	}
	return l
}

// WalkResult is the outcome of one walk: the final snapshot plus every
// problem met on the way.
type WalkResult struct {
	Snapshot    Snapshot
	Generations int // resync markers seen + 1
	Published   int // snapshots handed out, the final one included
	Anomalies   []*Anomaly
	Aborted     error // set when decoding stopped early
	ExitErr     error // the tool's exit status, not interpreted
	Duration    time.Duration
}

// Count returns the number of revisions in the final snapshot.
func (r *WalkResult) Count() int {
	return r.Snapshot.Len()
}

// Err joins every problem of the walk, or returns nil for a clean one.
func (r *WalkResult) Err() error {
	errs := make([]error, 0, len(r.Anomalies)+2)
	if r.Aborted != nil {
		errs = append(errs, r.Aborted)
	}
	if r.ExitErr != nil {
		errs = append(errs, r.ExitErr)
	}
	for _, a := range r.Anomalies {
		errs = append(errs, a)
	}
	return errors.Join(errs...)
}

// LogArgs builds the git log arguments for spec.
func LogArgs(spec *RevSpecifier, maxResults int) []string {
	format := prettyFormat
	if spec.HasLeftRight() {
		format += "%x01%m"
	}

	args := []string{"log", "-z", "--early-output", "--topo-order", "--children"}
	if maxResults > 0 {
		args = append(args, "-"+strconv.Itoa(maxResults))
	}
	args = append(args, format)

	if spec.HasLeftRight() && !slices.Contains(spec.Parameters, "--left-right") {
		args = append(args, "--left-right")
	}
	if spec == nil || len(spec.Parameters) == 0 {
		return append(args, "HEAD")
	}
	return append(args, spec.Parameters...)
}

// Revisions returns the most recently published snapshot.
func (l *RevList) Revisions() Snapshot {
	return l.latest
}

func (l *RevList) workingDirectory(spec *RevSpecifier) (string, error) {
	if spec != nil && spec.WorkingDirectory != "" {
		return spec.WorkingDirectory, nil
	}
	if l.opts.RepoPath == "" {
		return "", nil
	}
	if !l.resolved {
		dir, err := ResolveWorkingDirectory(l.opts.RepoPath)
		if err != nil {
			return "", err
		}
		l.repoDir = dir
		l.resolved = true
	}
	return l.repoDir, nil
}

// Walk runs git log for spec and decodes its output. maxResults <= 0 means
// no limit. The error is non-nil only when the walk could not start;
// decoding problems are reported in the result.
func (l *RevList) Walk(ctx context.Context, spec *RevSpecifier, maxResults int) (*WalkResult, error) {
	dir, err := l.workingDirectory(spec)
	if err != nil {
		return nil, err
	}

	args := LogArgs(spec, maxResults)
	l.logger.Debug("starting revision walk", "dir", dir, "args", args)

	proc, err := l.exec.Start(ctx, dir, args...)
	if err != nil {
		l.logger.Error("could not start history tool", "error", err)
		return nil, fmt.Errorf("start revision walk: %w", err)
	}

	res := l.WalkStream(proc.Stdout(), spec.HasLeftRight())

	if err := proc.Wait(); err != nil {
		res.ExitErr = err
		l.logger.Warn("history tool exited with error", "error", err)
	}
	return res, nil
}

// WalkStream decodes a git log -z stream read from r. It returns after the
// stream is exhausted or decoding aborts; the final snapshot is published
// exactly once either way.
func (l *RevList) WalkStream(r io.Reader, leftRight bool) *WalkResult {
	start := l.now()
	res := &WalkResult{}

	tok := NewTokenizer(r)
	dec := NewDecoder(tok, leftRight, DecodeOptions{DisableTimestampOffset: l.opts.DisableTimestampOffset})
	pub := NewPublisher(func(s Snapshot) {
		res.Published++
		l.latest = s
		if l.opts.OnSnapshot != nil {
			l.opts.OnSnapshot(s)
		}
	})

	num := 0
	for {
		id, ok := dec.NextID()
		if !ok {
			break
		}

		if IsResyncMarker(id) {
			// Everything so far was provisional. Hand it out, then start
			// over with the final output; its first id ends the marker.
			l.logger.Debug("history tool switched to final output",
				"marker", strings.TrimSpace(strings.SplitN(id, "\n", 2)[0]),
				"provisional", pub.Len())
			pub.Publish(false)
			pub.NewGeneration()
			num = 0

			next, ok := SplitResyncMarker(id)
			if !ok {
				break
			}
			id = next
		}

		d := dec.Decode(id)
		for _, a := range d.Anomalies {
			l.logger.Warn("revision record anomaly", "error", a)
		}
		res.Anomalies = append(res.Anomalies, d.Anomalies...)

		if d.Err != nil {
			res.Aborted = d.Err
			l.logger.Error("revision walk aborted", "error", d.Err)
			break
		}

		if d.Keep {
			pub.Append(d.Revision)
			num++
			if num%l.opts.PublishEvery == 0 {
				pub.Publish(false)
			}
		}

		if d.AtEOF {
			break
		}
	}

	if err := tok.Err(); err != nil && !hasAnomaly(res.Anomalies, ErrStreamRead) {
		res.Anomalies = append(res.Anomalies, &Anomaly{Kind: ErrStreamRead, Index: -1, Detail: err.Error()})
	}

	res.Generations = pub.Generation() + 1
	res.Snapshot = pub.Publish(true)
	res.Duration = l.now().Sub(start)

	l.logger.Info("loaded revisions", "count", num, "duration", res.Duration)
	return res
}

func hasAnomaly(anomalies []*Anomaly, kind error) bool {
	for _, a := range anomalies {
		if errors.Is(a, kind) {
			return true
		}
	}
	return false
}
