package git

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
)

// MockExecutable is a test double for GitExecutable.
// It serves canned output without needing a git binary and records how it
// was invoked.
type MockExecutable struct {
	// Records are joined with NUL terminators, the way git log -z separates
	// them. A "-N" argument keeps only the first N, mirroring git.
	Records [][]byte
	// Output is served verbatim when Records is empty.
	Output []byte

	StartErr error
	WaitErr  error

	Dir   string
	Args  []string
	Calls int
}

// NewMockExecutable creates a MockExecutable serving the given records.
func NewMockExecutable(records ...[]byte) *MockExecutable {
	return &MockExecutable{Records: records}
}

// Start returns a process whose stdout is the canned output.
func (m *MockExecutable) Start(_ context.Context, dir string, args ...string) (Process, error) {
	m.Calls++
	m.Dir = dir
	m.Args = append([]string(nil), args...)
	if m.StartErr != nil {
		return nil, m.StartErr
	}

	out := m.Output
	if len(m.Records) > 0 {
		records := m.Records
		if n, ok := limitArg(args); ok && n < len(records) {
			records = records[:n]
		}
		out = bytes.Join(records, []byte{recordTerminator})
	}
	return &mockProcess{stdout: bytes.NewReader(out), waitErr: m.WaitErr}, nil
}

// limitArg finds a "-N" record limit among git arguments.
func limitArg(args []string) (int, bool) {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") || strings.HasPrefix(a, "--") {
			continue
		}
		if n, err := strconv.Atoi(a[1:]); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

type mockProcess struct {
	stdout  io.Reader
	waitErr error
}

func (p *mockProcess) Stdout() io.Reader {
	return p.stdout
}

func (p *mockProcess) Wait() error {
	return p.waitErr
}
