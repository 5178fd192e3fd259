package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ByteRenderer accumulates rendered output in memory.
type ByteRenderer struct {
	buf []byte
}

// Render appends its arguments to the buffer, with no separators.
func (br *ByteRenderer) Render(s ...any) {
	for _, v := range s {
		switch v := v.(type) {
		case string:
			br.buf = append(br.buf, v...)
		case []byte:
			br.buf = append(br.buf, v...)
		case byte:
			br.buf = append(br.buf, v)
		case int:
			br.buf = strconv.AppendInt(br.buf, int64(v), 10)
		default:
			br.buf = fmt.Append(br.buf, v)
		}
	}
}

// Renderln is like Render and terminates the line.
func (br *ByteRenderer) Renderln(s ...any) {
	br.Render(s...)
	br.buf = append(br.buf, '\n')
}

func (br *ByteRenderer) Bytes() []byte {
	return br.buf
}

func (br *ByteRenderer) String() string {
	return string(br.buf)
}

// DefaultIndent is the indentation unit for each level of depth.
const DefaultIndent = "  "

// A Printer renders a tree as indented lines, one per element opening,
// element closing or text node.
type Printer struct {
	// Indent is repeated once per level of depth. Empty means no indentation.
	Indent string
}

// Fprint writes n, starting at the given depth, to w.
func (pr *Printer) Fprint(w io.Writer, n *Node, depth int) error {
	br := &ByteRenderer{}
	pr.render(br, n, depth)
	_, err := w.Write(br.Bytes())
	return err
}

// Sprint returns n rendered at depth zero.
func (pr *Printer) Sprint(n *Node) string {
	br := &ByteRenderer{}
	pr.render(br, n, 0)
	return br.String()
}

// render visits n depth-first. Self-closing elements get no closing line.
func (pr *Printer) render(br *ByteRenderer, n *Node, depth int) {
	indentStr := strings.Repeat(pr.Indent, depth)

	switch n.Type {
	case ElementNode:
		br.Renderln(indentStr, n.String())
		if n.SelfClosing {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			pr.render(br, c, depth+1)
		}
		br.Renderln(indentStr, "</", n.Name, ">")

	case TextNode:
		br.Renderln(indentStr, n.Data)
	}
}

// Fprint writes n to w with the default indentation.
func Fprint(w io.Writer, n *Node) error {
	return (&Printer{Indent: DefaultIndent}).Fprint(w, n, 0)
}

// Sprint returns n rendered with the default indentation.
func Sprint(n *Node) string {
	return (&Printer{Indent: DefaultIndent}).Sprint(n)
}
