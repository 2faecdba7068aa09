package git

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

func decodeOne(t *testing.T, data []byte, leftRight bool, opts DecodeOptions) Decoded {
	t.Helper()
	dec := NewDecoder(NewTokenizer(bytes.NewReader(data)), leftRight, opts)
	id, ok := dec.NextID()
	if !ok {
		t.Fatal("NextID: unexpected end of stream")
	}
	return dec.Decode(id)
}

func TestDecoder_WellFormedRecord(t *testing.T) {
	rec := newTestRecord(1, 2, 3)
	rec.body = "line one\nline two"

	d := decodeOne(t, rec.bytes(), false, DecodeOptions{})
	if !d.Keep {
		t.Fatalf("record dropped: %v", d.Anomalies)
	}
	if len(d.Anomalies) != 0 || d.Err != nil {
		t.Fatalf("unexpected problems: %v %v", d.Anomalies, d.Err)
	}
	if !d.AtEOF {
		t.Error("expected AtEOF for a record without terminator")
	}

	r := d.Revision
	if r.ID != testID(1) {
		t.Errorf("ID = %q, expected %q", r.ID, testID(1))
	}
	if r.Author != "Author 1" || r.Subject != "subject 1" || r.Body != "line one\nline two" {
		t.Errorf("text fields = %q/%q/%q", r.Author, r.Subject, r.Body)
	}
	if !slices.Equal(r.Parents, []string{testID(2), testID(3)}) {
		t.Errorf("Parents = %v", r.Parents)
	}
	if r.Sign != SignNone {
		t.Errorf("Sign = %q, expected none", r.Sign)
	}
}

func TestDecoder_Timestamp(t *testing.T) {
	rec := newTestRecord(1)
	rec.time = "1609459200"

	tests := []struct {
		name string
		opts DecodeOptions
		want int64
	}{
		{name: "WithLegacyOffset", opts: DecodeOptions{}, want: 1609459500000},
		{name: "OffsetDisabled", opts: DecodeOptions{DisableTimestampOffset: true}, want: 1609459200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decodeOne(t, rec.bytes(), false, tt.opts)
			if d.Revision.TimestampMillis != tt.want {
				t.Errorf("TimestampMillis = %d, expected %d", d.Revision.TimestampMillis, tt.want)
			}
		})
	}
}

func TestDecoder_ParentCounts(t *testing.T) {
	for k := 0; k <= 4; k++ {
		parents := make([]int, k)
		for i := range parents {
			parents[i] = 100 + i
		}
		rec := newTestRecord(1, parents...)

		d := decodeOne(t, rec.bytes(), false, DecodeOptions{})
		if !d.Keep {
			t.Fatalf("k=%d: record dropped: %v", k, d.Anomalies)
		}
		if len(d.Revision.Parents) != k {
			t.Fatalf("k=%d: got %d parents", k, len(d.Revision.Parents))
		}
		for _, p := range d.Revision.Parents {
			if len(p) != IDLength {
				t.Fatalf("k=%d: parent %q has length %d", k, p, len(p))
			}
		}
	}
}

func TestSplitParents(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "Empty", raw: "", want: 0},
		{name: "One", raw: testID(1), want: 1},
		{name: "Two", raw: testID(1) + " " + testID(2), want: 2},
		{name: "Length50", raw: strings.Repeat("a", 50), wantErr: true},
		{name: "TrailingSpace", raw: testID(1) + " ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitParents(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedParents) {
					t.Fatalf("err = %v, expected ErrMalformedParents", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("SplitParents = %d ids, expected %d", len(got), tt.want)
			}
		})
	}
}

func TestDecoder_MalformedParentsDropsRecord(t *testing.T) {
	rec := newTestRecord(1)
	rec.rawParents = strPtr(strings.Repeat("b", 50))

	d := decodeOne(t, rec.bytes(), false, DecodeOptions{})
	if d.Keep {
		t.Fatal("expected the record to be dropped")
	}
	if d.Err != nil {
		t.Fatalf("malformed parents must not abort the walk: %v", d.Err)
	}
	if len(d.Anomalies) != 1 || !errors.Is(d.Anomalies[0], ErrMalformedParents) {
		t.Fatalf("anomalies = %v, expected one ErrMalformedParents", d.Anomalies)
	}
}

func TestDecoder_Sign(t *testing.T) {
	tests := []struct {
		name        string
		sign        string
		want        Sign
		wantAnomaly bool
	}{
		{name: "Left", sign: "<", want: SignLeft},
		{name: "Right", sign: ">", want: SignRight},
		{name: "Boundary", sign: "-", want: SignBoundary},
		{name: "Uninteresting", sign: "^", want: SignUninteresting},
		{name: "Invalid", sign: "x", want: Sign('x'), wantAnomaly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newTestRecord(1)
			rec.sign = tt.sign

			d := decodeOne(t, rec.bytes(), true, DecodeOptions{})
			if !d.Keep {
				t.Fatalf("record dropped: %v", d.Anomalies)
			}
			if d.Revision.Sign != tt.want {
				t.Errorf("Sign = %q, expected %q", d.Revision.Sign, tt.want)
			}
			gotAnomaly := len(d.Anomalies) == 1 && errors.Is(d.Anomalies[0], ErrInvalidSign)
			if gotAnomaly != tt.wantAnomaly {
				t.Errorf("anomalies = %v, wantAnomaly %v", d.Anomalies, tt.wantAnomaly)
			}
		})
	}
}

func TestDecoder_UnexpectedTerminatorKeepsRecord(t *testing.T) {
	data := append(newTestRecord(1).bytes(), '\n')
	data = append(data, newTestRecord(2).bytes()...)

	dec := NewDecoder(NewTokenizer(bytes.NewReader(data)), false, DecodeOptions{})
	id, _ := dec.NextID()
	d := dec.Decode(id)
	if !d.Keep || d.AtEOF {
		t.Fatalf("Keep = %v, AtEOF = %v; expected kept and not at EOF", d.Keep, d.AtEOF)
	}
	if len(d.Anomalies) != 1 || !errors.Is(d.Anomalies[0], ErrUnexpectedTerminator) {
		t.Fatalf("anomalies = %v, expected one ErrUnexpectedTerminator", d.Anomalies)
	}
	if d.Anomalies[0].ID != testID(1) || d.Anomalies[0].Index != 0 {
		t.Errorf("anomaly = %+v", d.Anomalies[0])
	}

	id, ok := dec.NextID()
	if !ok || id != testID(2) {
		t.Fatalf("next id = %q, %v; expected %q", id, ok, testID(2))
	}
}

func TestDecoder_MalformedIDDropsRecord(t *testing.T) {
	rec := newTestRecord(1)
	rec.id = "not-an-object-name"
	data := joinRecords(rec, newTestRecord(2))

	dec := NewDecoder(NewTokenizer(bytes.NewReader(data)), false, DecodeOptions{})
	id, _ := dec.NextID()
	d := dec.Decode(id)
	if d.Keep {
		t.Fatal("expected malformed id to be dropped")
	}
	if !errors.Is(d.Anomalies[0], ErrMalformedID) {
		t.Fatalf("anomalies = %v, expected ErrMalformedID", d.Anomalies)
	}

	id, _ = dec.NextID()
	if d := dec.Decode(id); !d.Keep || d.Revision.ID != testID(2) {
		t.Fatalf("following record not decoded: %+v", d)
	}
}

func TestDecoder_TruncatedRecord(t *testing.T) {
	data := []byte(testID(1) + "\x01\x01Author\x01subj")

	d := decodeOne(t, data, false, DecodeOptions{})
	if d.Keep {
		t.Fatal("expected truncated record to be dropped")
	}
	if !d.AtEOF {
		t.Error("expected AtEOF")
	}
	if len(d.Anomalies) != 1 || !errors.Is(d.Anomalies[0], ErrTruncatedRecord) {
		t.Fatalf("anomalies = %v, expected ErrTruncatedRecord", d.Anomalies)
	}
}

func TestDecoder_MalformedTimestampAborts(t *testing.T) {
	rec := newTestRecord(1)
	rec.time = "yesterday!"

	d := decodeOne(t, rec.bytes(), false, DecodeOptions{})
	if d.Keep {
		t.Fatal("expected record to be dropped")
	}
	if !errors.Is(d.Err, ErrMalformedTimestamp) {
		t.Fatalf("Err = %v, expected ErrMalformedTimestamp", d.Err)
	}
}

func TestDecoder_RecordEncoding(t *testing.T) {
	rec := newTestRecord(1)
	rec.encoding = "ISO-8859-1"
	rec.author = "Jos\xe9"
	rec.subject = "r\xe9sum\xe9"

	d := decodeOne(t, rec.bytes(), false, DecodeOptions{})
	if d.Revision.Author != "José" || d.Revision.Subject != "résumé" {
		t.Fatalf("decoded %q / %q", d.Revision.Author, d.Revision.Subject)
	}
	if d.Revision.Encoding != "ISO-8859-1" {
		t.Errorf("Encoding = %q", d.Revision.Encoding)
	}
}

func TestDecoder_UnknownEncodingKeepsRecord(t *testing.T) {
	rec := newTestRecord(1)
	rec.encoding = "no-such-charset"

	d := decodeOne(t, rec.bytes(), false, DecodeOptions{})
	if !d.Keep {
		t.Fatal("unknown encoding must not drop the record")
	}
	if len(d.Anomalies) != 1 || !errors.Is(d.Anomalies[0], ErrUnknownEncoding) {
		t.Fatalf("anomalies = %v, expected one ErrUnknownEncoding", d.Anomalies)
	}
	if d.Revision.Author != rec.author {
		t.Errorf("Author = %q, expected %q", d.Revision.Author, rec.author)
	}
}

func TestResyncMarker(t *testing.T) {
	next := testID(7)
	tests := []struct {
		name       string
		token      string
		wantMarker bool
		wantID     string
		wantOK     bool
	}{
		{name: "ObjectName", token: testID(1), wantMarker: false, wantID: testID(1), wantOK: true},
		{name: "MarkerWithRecord", token: resyncMarker(3) + next, wantMarker: true, wantID: next, wantOK: true},
		{name: "MarkerAlone", token: resyncMarker(0), wantMarker: true},
		{name: "Empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsResyncMarker(tt.token); got != tt.wantMarker {
				t.Errorf("IsResyncMarker = %v, expected %v", got, tt.wantMarker)
			}
			id, ok := SplitResyncMarker(tt.token)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("SplitResyncMarker = %q, %v; expected %q, %v", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestDecoderState_String(t *testing.T) {
	tests := []struct {
		state DecoderState
		want  string
	}{
		{ExpectID, "id"},
		{ExpectParents, "parents"},
		{ExpectSign, "sign"},
		{StateDone, "done"},
		{DecoderState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("DecoderState(%d).String() = %q, expected %q", int(tt.state), got, tt.want)
		}
	}
}
