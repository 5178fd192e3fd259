package markup

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight writes source, usually the output of a Printer, to w with syntax
// colouring. formatterName is a chroma formatter ("terminal256", "html", ...)
// and styleName a chroma style. Unknown names fall back to chroma defaults.
func Highlight(w io.Writer, source, formatterName, styleName string) error {
	l := lexers.Get("xml")
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	s := styles.Get(styleName)

	var f chroma.Formatter
	if formatterName == "html" {
		f = hlhtml.New(hlhtml.Standalone(true), hlhtml.WithClasses(false))
	} else {
		f = formatters.Get(formatterName)
	}

	it, err := l.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("highlighting: %w", err)
	}
	return f.Format(w, s, it)
}
