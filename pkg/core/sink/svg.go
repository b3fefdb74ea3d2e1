package sink

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/highweigh/pkg/core/scene"
)

//go:embed default.css
var defaultStylesheet string

// DefaultStylesheet returns the CSS embedded into SVG output by default.
func DefaultStylesheet() string { return defaultStylesheet }

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stylesheet string
	fixedSize  bool
}

// WithStylesheet replaces the default stylesheet. An empty css omits the
// style element.
func WithStylesheet(css string) SVGOption { return func(r *svgRenderer) { r.stylesheet = css } }

// WithoutStylesheet omits the style element.
func WithoutStylesheet() SVGOption { return WithStylesheet("") }

// WithFixedSize adds width and height attributes matching the canvas, so
// viewers that ignore viewBox show the chart at its natural size.
func WithFixedSize() SVGOption { return func(r *svgRenderer) { r.fixedSize = true } }

// RenderSVG serializes s as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{stylesheet: defaultStylesheet}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	r.writeNode(&buf, s, s.Root, 0)
	return buf.Bytes()
}

func (r *svgRenderer) writeNode(buf *bytes.Buffer, s *scene.Scene, n *scene.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(string(n.Kind))

	if n.Kind == scene.KindSVG {
		buf.WriteString(` xmlns="http://www.w3.org/2000/svg"`)
		if r.fixedSize {
			fmt.Fprintf(buf, ` width="%s" height="%s"`, scene.Num(s.Width), scene.Num(s.Height))
		}
	}
	if len(n.Classes) > 0 {
		writeAttr(buf, "class", strings.Join(n.Classes, " "))
	}
	for _, a := range n.Attrs {
		writeAttr(buf, a.Name, a.Value)
	}

	isRoot := n.Kind == scene.KindSVG && r.stylesheet != ""
	if len(n.Children) == 0 && n.Text == "" && !isRoot {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteByte('>')

	if n.Text != "" && len(n.Children) == 0 {
		_ = xml.EscapeText(buf, []byte(n.Text))
		fmt.Fprintf(buf, "</%s>\n", n.Kind)
		return
	}
	buf.WriteByte('\n')

	if isRoot {
		writeStyle(buf, r.stylesheet, indent+"  ")
	}
	if n.Text != "" {
		buf.WriteString(indent + "  ")
		_ = xml.EscapeText(buf, []byte(n.Text))
		buf.WriteByte('\n')
	}
	for _, c := range n.Children {
		r.writeNode(buf, s, c, depth+1)
	}
	fmt.Fprintf(buf, "%s</%s>\n", indent, n.Kind)
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	_ = xml.EscapeText(buf, []byte(value))
	buf.WriteByte('"')
}

func writeStyle(buf *bytes.Buffer, css, indent string) {
	// CDATA cannot contain its own terminator.
	css = strings.ReplaceAll(css, "]]>", "]]]]><![CDATA[>")
	fmt.Fprintf(buf, "%s<style><![CDATA[\n%s\n%s]]></style>\n", indent, strings.TrimSpace(css), indent)
}
