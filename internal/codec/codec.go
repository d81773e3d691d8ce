// Package codec provides the two text encodings used at the host boundary:
// the filesystem codec for path values and the locale codec for textual tags
// and content. The distinction matters: filenames always travel in the
// platform filesystem encoding, while human-authored strings follow the
// process locale.
package codec

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// EncodingError reports a string that could not be encoded with the
// required codec.
type EncodingError struct {
	Codec string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode with %s codec: %v", e.Codec, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// errInvalidUTF8 is the cause recorded when the host string itself is
// malformed.
var errInvalidUTF8 = fmt.Errorf("invalid UTF-8 sequence")

// Codec encodes host strings into their native byte form. A nil underlying
// encoding means UTF-8 pass-through with validation.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// Name returns the codec's display name.
func (c *Codec) Name() string { return c.name }

// Encode converts s into the codec's native form. The result carries the
// encoded bytes as a Go string. Unmappable runes and malformed input fail
// with an *EncodingError.
func (c *Codec) Encode(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", &EncodingError{Codec: c.name, Err: errInvalidUTF8}
	}
	if c.enc == nil {
		return s, nil
	}
	out, err := c.enc.NewEncoder().String(s)
	if err != nil {
		return "", &EncodingError{Codec: c.name, Err: err}
	}
	return out, nil
}

// Filesystem returns the codec for path and filename values. Go's filesystem
// APIs take UTF-8 names on every supported platform, so this is validated
// pass-through.
func Filesystem() *Codec {
	return &Codec{name: "filesystem"}
}

// Locale returns the codec for textual content, resolved from the LC_ALL,
// LC_CTYPE and LANG environment variables in that order. Unset, "C", "POSIX"
// and UTF-8 locales resolve to pass-through; anything else is looked up in
// the IANA index so that, say, an ISO-8859-1 locale really does reject
// unmappable runes.
func Locale() *Codec {
	charset := localeCharset(os.Getenv("LC_ALL"), os.Getenv("LC_CTYPE"), os.Getenv("LANG"))
	c, err := Lookup(charset)
	if err != nil {
		// Unknown locale charsets degrade to UTF-8 rather than making
		// every conversion fail.
		return &Codec{name: "locale"}
	}
	c.name = "locale"
	return c
}

// Lookup resolves a codec by IANA charset name. An empty name or a UTF-8
// alias yields the pass-through codec.
func Lookup(name string) (*Codec, error) {
	if name == "" || isUTF8Name(name) {
		return &Codec{name: "utf-8"}, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q has no encoder", name)
	}
	return &Codec{name: strings.ToLower(name), enc: enc}, nil
}

// localeCharset extracts the charset part of the first non-empty locale
// value, e.g. "en_US.ISO-8859-1@euro" -> "ISO-8859-1".
func localeCharset(values ...string) string {
	for _, v := range values {
		if v == "" {
			continue
		}
		if v == "C" || v == "POSIX" {
			return ""
		}
		if i := strings.IndexByte(v, '@'); i >= 0 {
			v = v[:i]
		}
		if i := strings.IndexByte(v, '.'); i >= 0 {
			return v[i+1:]
		}
		return ""
	}
	return ""
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}
