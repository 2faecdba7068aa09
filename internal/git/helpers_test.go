package git

import (
	"bytes"
	"fmt"
	"strings"
)

// testID returns a deterministic 40-character hex id.
func testID(n int) string {
	return fmt.Sprintf("%040x", n)
}

// testRecord describes one git log record in fixture form.
type testRecord struct {
	id         string
	encoding   string
	author     string
	subject    string
	body       string
	parents    []string
	rawParents *string // overrides parents when set
	time       string
	sign       string // appended as an extra field when non-empty
}

func newTestRecord(n int, parents ...int) testRecord {
	r := testRecord{
		id:      testID(n),
		author:  fmt.Sprintf("Author %d", n),
		subject: fmt.Sprintf("subject %d", n),
		body:    fmt.Sprintf("body %d", n),
		time:    "1609459200",
	}
	for _, p := range parents {
		r.parents = append(r.parents, testID(p))
	}
	return r
}

func (r testRecord) bytes() []byte {
	parents := strings.Join(r.parents, " ")
	if r.rawParents != nil {
		parents = *r.rawParents
	}
	var b bytes.Buffer
	for _, f := range []string{r.id, r.encoding, r.author, r.subject, r.body, parents} {
		b.WriteString(f)
		b.WriteByte(fieldSeparator)
	}
	b.WriteString(r.time)
	if r.sign != "" {
		b.WriteByte(fieldSeparator)
		b.WriteString(r.sign)
	}
	return b.Bytes()
}

// joinRecords terminates records with NUL the way git log -z does; the
// last record has no terminator.
func joinRecords(recs ...testRecord) []byte {
	parts := make([][]byte, len(recs))
	for i, r := range recs {
		parts[i] = r.bytes()
	}
	return bytes.Join(parts, []byte{recordTerminator})
}

// resyncMarker is git's "Final output" line for n records.
func resyncMarker(n int) string {
	return fmt.Sprintf("Final output: %d done\n", n)
}

func strPtr(s string) *string {
	return &s
}
