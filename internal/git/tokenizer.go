package git

import (
	"bufio"
	"errors"
	"io"
	"strconv"
)

// ByteSource is the input capability the tokenizer needs.
// *bufio.Reader satisfies it.
type ByteSource interface {
	ReadByte() (byte, error)
	ReadSlice(delim byte) ([]byte, error)
	Peek(n int) ([]byte, error)
}

// Tokenizer extracts delimiter-terminated tokens from a byte stream.
// Read errors end the current token as if the stream had ended; the first
// non-EOF error is kept and reported by Err.
type Tokenizer struct {
	src      ByteSource
	decoders *textDecoders
	err      error
	eof      bool
	unknown  []string // encoding names that fell back to UTF-8
}

// NewTokenizer wraps r. Readers that already implement ByteSource are used
// as is.
func NewTokenizer(r io.Reader) *Tokenizer {
	src, ok := r.(ByteSource)
	if !ok {
		src = bufio.NewReaderSize(r, 64*1024)
	}
	return &Tokenizer{src: src, decoders: newTextDecoders()}
}

// Err returns the first read failure other than io.EOF.
func (t *Tokenizer) Err() error {
	return t.err
}

// Exhausted reports whether the source has signalled end of stream.
func (t *Tokenizer) Exhausted() bool {
	return t.eof
}

func (t *Tokenizer) fail(err error) {
	t.eof = true
	if !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
}

// NextRaw returns the bytes before the next delim. The delimiter is
// consumed but not returned. ok is false only when the stream ended before
// any byte of a new token was read; an empty token is valid.
func (t *Tokenizer) NextRaw(delim byte) ([]byte, bool) {
	if t.eof {
		return nil, false
	}
	var token []byte
	for {
		chunk, err := t.src.ReadSlice(delim)
		if err == nil {
			// ReadSlice returns a view into the reader's buffer.
			token = append(token, chunk[:len(chunk)-1]...)
			if token == nil {
				token = []byte{}
			}
			return token, true
		}
		token = append(token, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		t.fail(err)
		if len(token) == 0 {
			return nil, false
		}
		return token, true
	}
}

// Next is NextRaw decoded with the named text encoding. An empty name uses
// DefaultEncoding.
func (t *Tokenizer) Next(delim byte, encoding string) (string, bool) {
	raw, ok := t.NextRaw(delim)
	if !ok {
		return "", false
	}
	s, known := t.decoders.decode(raw, encoding)
	if !known {
		t.unknown = append(t.unknown, encoding)
	}
	return s, true
}

// takeUnknownEncodings returns and clears the encoding names that could not
// be resolved since the last call.
func (t *Tokenizer) takeUnknownEncodings() []string {
	u := t.unknown
	t.unknown = nil
	return u
}

// ReadByte reads one byte. ok is false at end of stream.
func (t *Tokenizer) ReadByte() (byte, bool) {
	if t.eof {
		return 0, false
	}
	b, err := t.src.ReadByte()
	if err != nil {
		t.fail(err)
		return 0, false
	}
	return b, true
}

// ReadFixedDigits reads up to n decimal digits and parses them. It stops
// early at end of stream or before a non-digit byte, which is left unread.
func (t *Tokenizer) ReadFixedDigits(n int) (int64, error) {
	digits := make([]byte, 0, n)
	for len(digits) < n && !t.eof {
		next, err := t.src.Peek(1)
		if err != nil {
			t.fail(err)
			break
		}
		if next[0] < '0' || next[0] > '9' {
			break
		}
		b, _ := t.ReadByte()
		digits = append(digits, b)
	}
	if len(digits) == 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(string(digits), 10, 64)
}
