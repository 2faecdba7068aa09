package git

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedParents     = errors.New("malformed parent list")
	ErrUnexpectedTerminator = errors.New("unexpected record terminator")
	ErrInvalidSign          = errors.New("invalid sign marker")
	ErrStreamRead           = errors.New("stream read failure")
	ErrMalformedID          = errors.New("malformed revision id")
	ErrMalformedTimestamp   = errors.New("malformed timestamp")
	ErrTruncatedRecord      = errors.New("truncated record")
	ErrUnknownEncoding      = errors.New("unknown text encoding")
)

// Anomaly describes a recoverable problem met while decoding one record.
type Anomaly struct {
	Kind   error  // one of the Err* sentinels
	ID     string // revision id if known
	Index  int    // zero-based position of the record in the stream, -1 if none
	Detail string
}

func (a *Anomaly) Error() string {
	msg := a.Kind.Error()
	switch {
	case a.Index < 0:
	case a.ID != "":
		msg = fmt.Sprintf("%s (record %d, %s)", msg, a.Index, a.ID)
	default:
		msg = fmt.Sprintf("%s (record %d)", msg, a.Index)
	}
	if a.Detail != "" {
		msg += ": " + a.Detail
	}
	return msg
}

func (a *Anomaly) Unwrap() error {
	return a.Kind
}
