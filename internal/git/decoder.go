package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

const (
	fieldSeparator   byte = 0x01
	recordTerminator byte = 0x00

	// resyncMarkerByte is the second byte of git's "Final output: ..." line.
	resyncMarkerByte byte = 'i'

	timestampDigits = 10
	parentStride    = IDLength + 1
)

// DecoderState is the field the decoder expects next.
type DecoderState int

const (
	ExpectID DecoderState = iota
	ExpectEncoding
	ExpectAuthor
	ExpectSubject
	ExpectBody
	ExpectParents
	ExpectTimestamp
	ExpectSign
	ExpectTerminator
	StateDone
)

var decoderStateNames = [...]string{
	ExpectID:         "id",
	ExpectEncoding:   "encoding",
	ExpectAuthor:     "author",
	ExpectSubject:    "subject",
	ExpectBody:       "body",
	ExpectParents:    "parents",
	ExpectTimestamp:  "timestamp",
	ExpectSign:       "sign",
	ExpectTerminator: "terminator",
	StateDone:        "done",
}

// String returns the name of the field the state expects.
func (s DecoderState) String() string {
	if s < 0 || int(s) >= len(decoderStateNames) {
		return "unknown"
	}
	return decoderStateNames[s]
}

// DecodeOptions tunes record decoding.
type DecodeOptions struct {
	DisableTimestampOffset bool
}

// Decoded is the outcome of decoding one record.
type Decoded struct {
	Revision  Revision
	Keep      bool       // false when the record was dropped
	AtEOF     bool       // the stream ended with this record
	Anomalies []*Anomaly // recoverable problems, whether kept or not
	Err       error      // unrecoverable; the walk must stop
}

// Decoder turns tokens into revisions, one record per Decode call.
type Decoder struct {
	tok       *Tokenizer
	leftRight bool
	opts      DecodeOptions
	state     DecoderState
	index     int
}

// NewDecoder creates a decoder reading from tok. leftRight enables the
// sign field.
func NewDecoder(tok *Tokenizer, leftRight bool, opts DecodeOptions) *Decoder {
	return &Decoder{tok: tok, leftRight: leftRight, opts: opts}
}

// State returns the field the decoder expects next.
func (d *Decoder) State() DecoderState {
	return d.state
}

// NextID reads the id token that starts a record. ok is false at end of
// stream. The token may be a resynchronization marker.
func (d *Decoder) NextID() (string, bool) {
	d.state = ExpectID
	tok, ok := d.tok.Next(fieldSeparator, "")
	if !ok {
		d.state = StateDone
	}
	return tok, ok
}

// IsResyncMarker reports whether an id-position token is git's
// "Final output" line rather than an object name.
func IsResyncMarker(token string) bool {
	return len(token) > 1 && token[1] == resyncMarkerByte
}

// SplitResyncMarker extracts the id that follows a resync marker. ok is
// false when the marker is shorter than an id, meaning no record follows.
func SplitResyncMarker(token string) (string, bool) {
	if len(token) < IDLength {
		return "", false
	}
	return token[len(token)-IDLength:], true
}

// SplitParents splits git's %P output into ids. It returns
// ErrMalformedParents when the length is not a whole number of ids.
func SplitParents(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	if (len(raw)+1)%parentStride != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrMalformedParents, len(raw))
	}
	n := (len(raw) + 1) / parentStride
	parents := make([]string, 0, n)
	for i := 0; i < n; i++ {
		start := i * parentStride
		parents = append(parents, raw[start:start+IDLength])
	}
	return parents, nil
}

// Decode reads the fields that follow id and returns the record.
func (d *Decoder) Decode(id string) Decoded {
	index := d.index
	d.index++

	res := Decoded{Revision: Revision{ID: id}, Keep: true}
	note := func(kind error, detail string) {
		res.Anomalies = append(res.Anomalies, &Anomaly{Kind: kind, ID: id, Index: index, Detail: detail})
	}
	truncated := func() Decoded {
		res.Keep = false
		res.AtEOF = true
		note(ErrTruncatedRecord, "stream ended while reading "+d.state.String())
		if err := d.tok.Err(); err != nil {
			note(ErrStreamRead, err.Error())
		}
		d.state = StateDone
		return res
	}

	if len(id) != IDLength || !plumbing.IsHash(id) {
		res.Keep = false
		note(ErrMalformedID, fmt.Sprintf("%q", id))
	}

	d.state = ExpectEncoding
	enc, ok := d.tok.Next(fieldSeparator, DefaultEncoding)
	if !ok {
		return truncated()
	}
	res.Revision.Encoding = enc

	fields := [...]struct {
		state DecoderState
		dst   *string
	}{
		{ExpectAuthor, &res.Revision.Author},
		{ExpectSubject, &res.Revision.Subject},
		{ExpectBody, &res.Revision.Body},
	}
	for _, f := range fields {
		d.state = f.state
		s, ok := d.tok.Next(fieldSeparator, enc)
		if !ok {
			return truncated()
		}
		*f.dst = s
	}
	if unknown := d.tok.takeUnknownEncodings(); len(unknown) > 0 {
		note(ErrUnknownEncoding, unknown[0])
	}

	d.state = ExpectParents
	raw, ok := d.tok.NextRaw(fieldSeparator)
	if !ok {
		return truncated()
	}
	parents, err := SplitParents(string(raw))
	if err != nil {
		res.Keep = false
		note(ErrMalformedParents, fmt.Sprintf("length %d", len(raw)))
	}
	res.Revision.Parents = parents

	d.state = ExpectTimestamp
	secs, err := d.tok.ReadFixedDigits(timestampDigits)
	if err != nil {
		if d.tok.Exhausted() {
			return truncated()
		}
		d.state = StateDone
		res.Keep = false
		res.Err = &Anomaly{Kind: ErrMalformedTimestamp, ID: id, Index: index, Detail: err.Error()}
		return res
	}
	res.Revision.TimestampMillis = secs * 1000
	if !d.opts.DisableTimestampOffset {
		res.Revision.TimestampMillis += LegacyTimestampOffset.Milliseconds()
	}

	if d.leftRight {
		d.state = ExpectSign
		d.tok.ReadByte() // separator
		b, ok := d.tok.ReadByte()
		if !ok {
			return truncated()
		}
		res.Revision.Sign = Sign(b)
		if !res.Revision.Sign.Valid() {
			note(ErrInvalidSign, fmt.Sprintf("%q", b))
		}
	}

	d.state = ExpectTerminator
	b, ok := d.tok.ReadByte()
	switch {
	case !ok:
		res.AtEOF = true
		if err := d.tok.Err(); err != nil {
			note(ErrStreamRead, err.Error())
		}
	case b != recordTerminator:
		note(ErrUnexpectedTerminator, fmt.Sprintf("0x%02x", b))
	}
	d.state = StateDone
	return res
}
