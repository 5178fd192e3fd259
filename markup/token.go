package markup

import (
	"io"
	"strconv"
	"strings"
)

// A TokenType is the type of a Token.
type TokenType uint32

const (
	// ErrorToken means that an error occurred during tokenization.
	ErrorToken TokenType = iota
	// TextToken means a run of characters that are neither '<' nor '>'.
	TextToken
	// A StartTagToken looks like <a>.
	StartTagToken
	// An EndTagToken looks like </a>.
	EndTagToken
	// A SelfClosingTagToken tag looks like <br/>.
	SelfClosingTagToken
)

// String returns a string representation of the TokenType.
func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "Error"
	case TextToken:
		return "Text"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case SelfClosingTagToken:
		return "SelfClosingTag"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// A Token consists of a TokenType, the tag name in Data and the attributes
// of the tag. Text tokens carry no data: the literal text is read back with
// Tokenizer.Raw. Start and End are the byte offsets of the token in the source.
type Token struct {
	Type  TokenType
	Data  string
	Attr  []Attribute
	Start int
	End   int
}

// tagString returns the tag name followed by its attributes in source form.
func (t Token) tagString() string {
	var sb strings.Builder
	sb.WriteString(t.Data)
	for _, a := range t.Attr {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Val)
	}
	return sb.String()
}

// String returns the canonical markup for a tag Token. End tags lose their
// attributes, which the tree builder never looks at.
func (t Token) String() string {
	switch t.Type {
	case ErrorToken:
		return ""
	case TextToken:
		return "Text[" + strconv.Itoa(t.Start) + ":" + strconv.Itoa(t.End) + "]"
	case StartTagToken:
		return "<" + t.tagString() + ">"
	case EndTagToken:
		return "</" + t.Data + ">"
	case SelfClosingTagToken:
		return "<" + t.tagString() + "/>"
	}
	return "Invalid(" + strconv.Itoa(int(t.Type)) + ")"
}

// classifyTag decides which tag pattern raw matches. raw must start with '<'
// and end at the first '>'. The patterns are tried in priority order: closing
// tag, self-closing tag, opening tag.
func classifyTag(raw string) (typ TokenType, open, close string) {
	n := len(raw)
	if n < 3 || raw[0] != '<' || raw[n-1] != '>' || strings.IndexByte(raw[:n-1], '>') >= 0 {
		return ErrorToken, "", ""
	}
	switch {
	case n >= 4 && strings.HasPrefix(raw, "</"):
		return EndTagToken, "</", ">"
	case n >= 4 && raw[n-2] == '/':
		return SelfClosingTagToken, "<", "/>"
	case !strings.Contains(raw[1:n-1], "/"):
		return StartTagToken, "<", ">"
	}
	return ErrorToken, "", ""
}

// A Tokenizer returns a stream of Tokens for a markup string.
type Tokenizer struct {
	fileName string
	src      string
	pos      int
	raw      [2]int
	err      error
}

// NewTokenizer returns a new Tokenizer for src. fileName is only used in errors.
func NewTokenizer(fileName, src string) *Tokenizer {
	return &Tokenizer{fileName: fileName, src: src}
}

// Raw returns the source text of the last token returned by Next.
func (z *Tokenizer) Raw() string {
	return z.src[z.raw[0]:z.raw[1]]
}

// Next scans the next token. It returns io.EOF once the input is consumed
// and a *SyntaxError when no token pattern matches at the scan position.
// After an error every further call returns the same error.
func (z *Tokenizer) Next() (Token, error) {
	if z.err != nil {
		return Token{}, z.err
	}
	if z.pos >= len(z.src) {
		z.err = io.EOF
		return Token{}, z.err
	}

	start := z.pos
	rest := z.src[start:]

	if rest[0] == '>' {
		return z.fail(start, ErrTokenize, "unexpected '>' outside of a tag")
	}

	if rest[0] != '<' {
		n := strings.IndexAny(rest, "<>")
		if n < 0 {
			n = len(rest)
		}
		z.advance(start, start+n)
		return Token{Type: TextToken, Start: start, End: start + n}, nil
	}

	end := strings.IndexByte(rest, '>')
	if end < 0 {
		return z.fail(start, ErrTokenize, "tag is never closed with '>'")
	}
	raw := rest[:end+1]

	typ, open, close := classifyTag(raw)
	if typ == ErrorToken {
		return z.fail(start, ErrTokenize, "%q is not an opening, closing or self-closing tag", raw)
	}

	name, attrs, terr := parseElement(raw, open, close)
	if terr != nil {
		return z.fail(start+terr.offset, terr.kind, "%s", terr.msg)
	}

	z.advance(start, start+len(raw))
	return Token{Type: typ, Data: name, Attr: attrs, Start: start, End: start + len(raw)}, nil
}

func (z *Tokenizer) advance(start, end int) {
	z.raw = [2]int{start, end}
	z.pos = end
}

func (z *Tokenizer) fail(offset int, kind error, format string, args ...any) (Token, error) {
	z.err = newSyntaxError(z.fileName, z.src, offset, kind, format, args...)
	return Token{Type: ErrorToken, Start: offset, End: offset}, z.err
}

// Tokenize returns all the tokens in src. Text tokens get their literal text
// in Data so the slice can be used without the source.
func Tokenize(fileName, src string) ([]Token, error) {
	z := NewTokenizer(fileName, src)
	var tokens []Token
	for {
		tok, err := z.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		if tok.Type == TextToken {
			tok.Data = z.Raw()
		}
		tokens = append(tokens, tok)
	}
}
