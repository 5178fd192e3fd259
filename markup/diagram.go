package markup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

var d2Escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func d2Quote(s string) string {
	return `"` + d2Escaper.Replace(s) + `"`
}

// D2Script describes the tree rooted at root as a D2 diagram: one shape per
// node, labelled like the printer labels it, and one edge per parent-child link.
// Shapes are named n1, n2, ... in depth-first order.
func D2Script(root *Node) string {
	type item struct {
		n      *Node
		parent string
	}

	br := &ByteRenderer{}
	id := 0
	stack := []item{{n: root}}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id++
		name := "n" + strconv.Itoa(id)
		br.Renderln(name, ": ", d2Quote(it.n.String()))
		if it.parent != "" {
			br.Renderln(it.parent, " -> ", name)
		}

		// Push in reverse so the children pop in document order
		for c := it.n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, item{n: c, parent: name})
		}
	}

	return br.String()
}

// RenderSVG lays out the D2Script of root with dagre and renders it as SVG.
func RenderSVG(ctx context.Context, root *Node) ([]byte, error) {
	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, fmt.Errorf("creating text ruler: %w", err)
	}

	defaultLayout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}
	diagram, _, err := d2lib.Compile(ctx, D2Script(root), &d2lib.CompileOptions{
		Layout: defaultLayout,
		Ruler:  ruler,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling diagram: %w", err)
	}

	body, err := d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d2themescatalog.NeutralDefault.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering diagram: %w", err)
	}
	return body, nil
}
