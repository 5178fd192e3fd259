package markup

import (
	"fmt"
	"strings"
	"unicode"
)

// An Attribute is a key-value pair from a tag. Key is made of ASCII letters
// and Val keeps its surrounding double quotes verbatim (it looks like "x",
// quotes included), with no unescaping of any kind.
type Attribute struct {
	Key string
	Val string
}

// tagError is a failure inside a single tag. offset is relative to the
// start of the tag text, so the tokenizer can turn it into a SyntaxError.
type tagError struct {
	offset int
	kind   error
	msg    string
}

func tagErrorf(offset int, kind error, format string, args ...any) *tagError {
	return &tagError{offset: offset, kind: kind, msg: fmt.Sprintf(format, args...)}
}

// parseElement strips the open and close delimiters from raw and splits the
// remaining text into the tag name and its attributes.
func parseElement(raw, open, close string) (name string, attrs []Attribute, terr *tagError) {
	if len(raw) < len(open)+len(close) || !strings.HasPrefix(raw, open) || !strings.HasSuffix(raw, close) {
		return "", nil, tagErrorf(0, ErrMalformedTag, "%q is not delimited by %q and %q", raw, open, close)
	}
	inner := raw[len(open) : len(raw)-len(close)]

	// The tag name is the first whitespace delimited word
	nameStart := strings.IndexFunc(inner, func(r rune) bool { return !unicode.IsSpace(r) })
	if nameStart < 0 {
		return "", nil, tagErrorf(len(open), ErrMalformedTag, "tag %q has no name", raw)
	}
	nameEnd := strings.IndexFunc(inner[nameStart:], unicode.IsSpace)
	if nameEnd < 0 {
		nameEnd = len(inner)
	} else {
		nameEnd += nameStart
	}
	name = inner[nameStart:nameEnd]

	attrs, terr = parseAttributes(inner[nameEnd:])
	if terr != nil {
		terr.offset += len(open) + nameEnd
		return "", nil, terr
	}
	return name, attrs, nil
}

type attrTokenType int

const (
	attrErrorToken attrTokenType = iota
	attrKeyToken
	attrValueToken
)

// attrTokenizer splits the attribute text of a tag into keys and values.
type attrTokenizer struct {
	s   string
	pos int
}

func isAttrSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f'
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// quotedLen returns the length of the double quoted value at the start of s,
// or zero if there is none. The value needs at least one character between
// the quotes and ends at the first closing quote. Newlines are not allowed.
func quotedLen(s string) int {
	if len(s) < 3 || s[0] != '"' {
		return 0
	}
	for i := 1; i < len(s); i++ {
		switch {
		case s[i] == '\n':
			return 0
		case s[i] == '"' && i >= 2:
			return i + 1
		}
	}
	return 0
}

// next skips the separating whitespace and returns the next token. ok is
// false when the input is exhausted.
func (z *attrTokenizer) next() (typ attrTokenType, raw string, start int, ok bool) {
	for z.pos < len(z.s) && isAttrSpace(z.s[z.pos]) {
		z.pos++
	}
	start = z.pos
	if start >= len(z.s) {
		return attrErrorToken, "", start, false
	}
	rest := z.s[start:]

	// A key is one or more letters immediately followed by '='
	i := 0
	for i < len(rest) && isASCIILetter(rest[i]) {
		i++
	}
	if i > 0 && i < len(rest) && rest[i] == '=' {
		z.pos += i + 1
		return attrKeyToken, rest[:i+1], start, true
	}

	if n := quotedLen(rest); n > 0 {
		z.pos += n
		return attrValueToken, rest[:n], start, true
	}

	// Report the offending word and stop there
	end := strings.IndexFunc(rest, func(r rune) bool { return r < 0x80 && isAttrSpace(byte(r)) })
	if end < 0 {
		end = len(rest)
	}
	z.pos = len(z.s)
	return attrErrorToken, rest[:end], start, true
}

// parseAttributes builds the attribute list of a tag, left to right. A key is
// always paired with the token that follows it, whatever its kind. Repeated
// keys keep their first position and take the last value.
func parseAttributes(s string) ([]Attribute, *tagError) {
	z := &attrTokenizer{s: s}
	var attrs []Attribute
	for {
		typ, raw, start, ok := z.next()
		if !ok {
			return attrs, nil
		}
		switch typ {
		case attrKeyToken:
			key := strings.TrimSuffix(raw, "=")
			vtyp, val, vstart, ok := z.next()
			if !ok {
				return nil, tagErrorf(vstart, ErrMalformedAttribute, "attribute %q has no value", key)
			}
			if vtyp == attrErrorToken {
				return nil, tagErrorf(vstart, ErrMalformedAttribute, "attribute %q has an invalid value %q", key, val)
			}
			attrs = setAttr(attrs, key, val)
		case attrValueToken:
			return nil, tagErrorf(start, ErrMalformedAttribute, "value %s has no key", raw)
		default:
			return nil, tagErrorf(start, ErrMalformedAttribute, "unexpected %q in attributes", raw)
		}
	}
}

func setAttr(attrs []Attribute, key, val string) []Attribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Val = val
			return attrs
		}
	}
	return append(attrs, Attribute{Key: key, Val: val})
}
