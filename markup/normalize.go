package markup

import (
	"io"

	"github.com/hesusruiz/minimarkup/sliceedit"
)

// Normalize rewrites every tag in src to its canonical form: the tag name and
// the attributes separated by single spaces, with no whitespace before the
// closing delimiter. Closing tags lose their attributes. Text is left alone,
// so parsing the result prints the same tree as parsing src.
func Normalize(fileName, src string) (string, error) {
	z := NewTokenizer(fileName, src)
	buf := sliceedit.NewBufferString(src)

	for {
		tok, err := z.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if tok.Type == TextToken {
			continue
		}

		canonical := tok.String()
		if canonical == z.Raw() {
			continue
		}

		// A rewrite must not change how the tag is classified, as it would
		// for a self-closing tag whose name starts with '/'
		if typ, _, _ := classifyTag(canonical); typ != tok.Type {
			continue
		}

		if err := buf.Replace(tok.Start, tok.End, canonical); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}
