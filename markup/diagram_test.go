package markup

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestD2Script(t *testing.T) {
	tree := mustParse(t, "<a href=\"x\"><i>t\"q</i><br/></a>")

	want := []string{
		`n1: "<root>"`,
		`n2: "<a href:\"x\">"`,
		`n1 -> n2`,
		`n3: "<i>"`,
		`n2 -> n3`,
		`n4: "t\"q"`,
		`n3 -> n4`,
		`n5: "<br>"`,
		`n2 -> n5`,
	}
	if diff := cmp.Diff(want, lines(D2Script(tree))); diff != "" {
		t.Errorf("D2Script() mismatch (-want +got):\n%s", diff)
	}
}

func TestD2ScriptEscapesText(t *testing.T) {
	tree := mustParse(t, "a\\b\n\tc")
	want := "n1: \"<root>\"\nn2: \"a\\\\b\\n\\tc\"\nn1 -> n2\n"
	if got := D2Script(tree); got != want {
		t.Errorf("D2Script() = %q, want %q", got, want)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("diagram layout is slow")
	}
	svg, err := RenderSVG(context.Background(), mustParse(t, exampleSource))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("RenderSVG() output is not an SVG document")
	}
}
