package markup

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "Example document",
			src:  exampleSource,
			want: []Token{
				{Type: StartTagToken, Data: "a", Attr: []Attribute{{Key: "href", Val: `"localhost"`}}, Start: 0, End: 20},
				{Type: StartTagToken, Data: "i", Start: 20, End: 23},
				{Type: TextToken, Data: "test", Start: 23, End: 27},
				{Type: EndTagToken, Data: "i", Start: 27, End: 31},
				{Type: SelfClosingTagToken, Data: "img", Attr: []Attribute{{Key: "src", Val: `"test"`}, {Key: "onerror", Val: `"alert(1)"`}}, Start: 31, End: 67},
				{Type: EndTagToken, Data: "a", Start: 67, End: 71},
			},
		},
		{
			name: "Closing tag wins over self-closing",
			src:  "</a/>",
			want: []Token{
				{Type: EndTagToken, Data: "a/", Start: 0, End: 5},
			},
		},
		{
			name: "Self-closing tag may hold a slash",
			src:  `<img src="a/b"/>`,
			want: []Token{
				{Type: SelfClosingTagToken, Data: "img", Attr: []Attribute{{Key: "src", Val: `"a/b"`}}, Start: 0, End: 16},
			},
		},
		{
			name: "Text runs stop at tags",
			src:  "a b\nc<x>d",
			want: []Token{
				{Type: TextToken, Data: "a b\nc", Start: 0, End: 5},
				{Type: StartTagToken, Data: "x", Start: 5, End: 8},
				{Type: TextToken, Data: "d", Start: 8, End: 9},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize("", tt.src)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizerRawAndEOF(t *testing.T) {
	z := NewTokenizer("", "hi<b>")
	tok, err := z.Next()
	if err != nil || tok.Type != TextToken {
		t.Fatalf("Next() = %v, %v", tok.Type, err)
	}
	if tok.Data != "" {
		t.Errorf("text token carries data %q", tok.Data)
	}
	if z.Raw() != "hi" {
		t.Errorf("Raw() = %q, want %q", z.Raw(), "hi")
	}
	if _, err := z.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if z.Raw() != "<b>" {
		t.Errorf("Raw() = %q, want %q", z.Raw(), "<b>")
	}
	for i := 0; i < 2; i++ {
		if _, err := z.Next(); err != io.EOF {
			t.Errorf("Next() error = %v, want io.EOF", err)
		}
	}
}

func TestTokenizerStopsAfterError(t *testing.T) {
	z := NewTokenizer("", "<>text")
	_, first := z.Next()
	if !errors.Is(first, ErrTokenize) {
		t.Fatalf("Next() error = %v, want ErrTokenize", first)
	}
	if _, err := z.Next(); err != first {
		t.Errorf("Next() after error = %v, want %v", err, first)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: StartTagToken, Data: "a", Attr: []Attribute{{Key: "x", Val: `"1"`}}}, `<a x="1">`},
		{Token{Type: EndTagToken, Data: "a", Attr: []Attribute{{Key: "x", Val: `"1"`}}}, `</a>`},
		{Token{Type: SelfClosingTagToken, Data: "br"}, `<br/>`},
		{Token{Type: TextToken, Start: 3, End: 7}, `Text[3:7]`},
		{Token{Type: TokenType(42)}, `Invalid(42)`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := SelfClosingTagToken.String(); got != "SelfClosingTag" {
		t.Errorf("TokenType.String() = %q", got)
	}
}
