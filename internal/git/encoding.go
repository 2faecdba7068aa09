package git

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when a record carries no encoding header.
const DefaultEncoding = "UTF-8"

// textDecoders caches x/text decoders by normalised encoding name.
type textDecoders struct {
	byName map[string]encoding.Encoding
}

func newTextDecoders() *textDecoders {
	return &textDecoders{byName: make(map[string]encoding.Encoding)}
}

// lookup resolves an encoding name as git reports it (%e). The second
// return is false when the name is unknown; UTF-8 is returned in that case.
func (d *textDecoders) lookup(name string) (encoding.Encoding, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "utf-8" || key == "utf8" {
		return unicode.UTF8, true
	}
	if enc, ok := d.byName[key]; ok {
		if enc == nil {
			return unicode.UTF8, false
		}
		return enc, true
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		d.byName[key] = nil
		return unicode.UTF8, false
	}
	d.byName[key] = enc
	return enc, true
}

// decode converts raw bytes into a string using the named encoding.
func (d *textDecoders) decode(raw []byte, name string) (string, bool) {
	enc, known := d.lookup(name)
	if enc == unicode.UTF8 {
		return string(raw), known
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw), false
	}
	return string(out), known
}
