package markup

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// An Option configures a Parser.
type Option func(*Parser)

// WithLogger makes the parser trace every token at debug level.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// AllowMismatchedClose makes a closing tag close the innermost open element
// whatever its name. By default a name mismatch is an ErrUnbalancedTag.
func AllowMismatchedClose(allow bool) Option {
	return func(p *Parser) {
		p.allowMismatchedClose = allow
	}
}

// Parser builds a tree from the token stream of a single source.
type Parser struct {
	fileName string
	src      string
	z        *Tokenizer

	// stack holds the open elements. The root is always at the bottom.
	stack []*Node

	allowMismatchedClose bool

	log *zap.SugaredLogger
}

// NewParser returns a parser for src.
// fileName is for logging and error messages.
func NewParser(fileName string, src string, opts ...Option) *Parser {
	p := &Parser{
		fileName: fileName,
		src:      src,
		z:        NewTokenizer(fileName, src),
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) top() *Node {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) errorAt(offset int, kind error, format string, args ...any) error {
	return newSyntaxError(p.fileName, p.src, offset, kind, format, args...)
}

// Parse consumes the whole source and returns the root element, whose
// children are the top level nodes. It returns either a complete tree or
// a single error, never both.
func (p *Parser) Parse() (*Node, error) {
	root := NewElement(RootName, nil)
	p.stack = []*Node{root}
	defer func() { p.stack = nil }()

	for {
		tok, err := p.z.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.log.Debugw("tokenizer failed", "file", p.fileName, "error", err)
			return nil, err
		}
		p.log.Debugw("token", "type", tok.Type, "offset", tok.Start, "tag", tok.Data, "depth", len(p.stack)-1)

		switch tok.Type {
		case StartTagToken:
			// The element is attached to its parent only when it is closed
			n := NewElement(tok.Data, tok.Attr)
			n.Offset = tok.Start
			p.stack = append(p.stack, n)

		case EndTagToken:
			if err := p.closeElement(tok); err != nil {
				return nil, err
			}

		case SelfClosingTagToken:
			n := NewElement(tok.Data, tok.Attr)
			n.Offset = tok.Start
			n.SelfClosing = true
			p.top().AppendChild(n)

		case TextToken:
			n := NewText(p.z.Raw())
			n.Offset = tok.Start
			p.top().AppendChild(n)
		}
	}

	if len(p.stack) > 1 {
		open := p.top()
		return nil, p.errorAt(open.Offset, ErrUnbalancedTag, "element <%s> is never closed", open.Name)
	}

	return root, nil
}

// closeElement pops the innermost open element and attaches it to its parent.
func (p *Parser) closeElement(tok Token) error {
	if len(p.stack) == 1 {
		return p.errorAt(tok.Start, ErrUnbalancedTag, "closing tag </%s> has no open element", tok.Data)
	}

	n := p.top()
	if !p.allowMismatchedClose && n.Name != tok.Data {
		line, col := position(p.src, n.Offset)
		return p.errorAt(tok.Start, ErrUnbalancedTag, "closing tag </%s> does not match <%s> opened at %d:%d", tok.Data, n.Name, line, col)
	}
	if n.Name != tok.Data {
		p.log.Debugw("mismatched closing tag accepted", "open", n.Name, "close", tok.Data, "offset", tok.Start)
	}

	p.stack = p.stack[:len(p.stack)-1]
	p.top().AppendChild(n)
	return nil
}

// Parse parses src and returns the root of the tree.
func Parse(src string, opts ...Option) (*Node, error) {
	return NewParser("", src, opts...).Parse()
}

// ParseFromBytes uses a byte array as the source.
// fileName is for logging and error messages.
func ParseFromBytes(fileName string, src []byte, opts ...Option) (*Node, error) {
	return NewParser(fileName, string(src), opts...).Parse()
}

// ParseFromFile reads the whole file into memory and parses it.
func ParseFromFile(fileName string, opts ...Option) (*Node, error) {
	if len(fileName) == 0 {
		return nil, ErrNoContent
	}
	src, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	return ParseFromBytes(fileName, src, opts...)
}
