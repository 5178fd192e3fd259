package markup

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantErr error
	}{
		{
			name: "Already canonical",
			src:  exampleSource,
			want: exampleSource,
		},
		{
			name: "Whitespace inside tags",
			src:  "<a \n  href=\"x\"\t>t</a  ><br  />",
			want: `<a href="x">t</a><br/>`,
		},
		{
			name: "Text is untouched",
			src:  "  hi \n<b >x  y</b>  ",
			want: "  hi \n<b>x  y</b>  ",
		},
		{
			name: "Closing tag attributes dropped",
			src:  `<a></a x="1">`,
			want: `<a></a>`,
		},
		{
			name: "Self-closing tag named with a slash is kept",
			src:  "< /x/>",
			want: "< /x/>",
		},
		{
			name:    "Tokenizer errors are returned",
			src:     "<a x>",
			wantErr: ErrMalformedAttribute,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize("", tt.src)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Normalize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeKeepsTree(t *testing.T) {
	sources := []string{
		exampleSource,
		"<ul  >\n  <li class=\"a\"   id=\"b\">one</li>\n  <li\t>two<br /></li>\n</ul >",
		"plain text only",
		"<x a=\"1\" a=\"2\"  b=c=></x>",
	}
	for _, src := range sources {
		normalized, err := Normalize("", src)
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", src, err)
		}
		want := Sprint(mustParse(t, src))
		got := Sprint(mustParse(t, normalized))
		if got != want {
			t.Errorf("tree changed after Normalize(%q):\n%s\nwant:\n%s", src, got, want)
		}
	}
}
