package scene

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/surveycharts/pkg/shape"
)

const (
	svgNS   = "http://www.w3.org/2000/svg"
	xlinkNS = "http://www.w3.org/1999/xlink"
)

// Document is a standalone SVG image.
type Document struct {
	Width  float64
	Height float64
	// Background fills the canvas when set.
	Background string
	Root       *Node
}

// NewDocument returns an empty document whose root is an <svg> element.
func NewDocument(width, height float64) *Document {
	return &Document{Width: width, Height: height, Root: El("svg")}
}

// WriteSVG writes the document as indented SVG markup.
func (d *Document) WriteSVG(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="%s" xmlns:xlink="%s" viewBox="0 0 %s %s" width="%s" height="%s"`,
		svgNS, xlinkNS,
		shape.FormatNumber(d.Width, 2), shape.FormatNumber(d.Height, 2),
		shape.FormatNumber(d.Width, 0), shape.FormatNumber(d.Height, 0))
	if d.Root != nil {
		writeAttrs(&buf, d.Root.Attrs)
	}
	buf.WriteString(">\n")

	if d.Background != "" {
		fmt.Fprintf(&buf, "  <rect class=\"background\" width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", escape(d.Background))
	}
	if d.Root != nil {
		if d.Root.Text != "" {
			buf.WriteString("  ")
			buf.WriteString(escape(d.Root.Text))
			buf.WriteByte('\n')
		}
		for _, c := range d.Root.Children {
			writeNode(&buf, c, 1)
		}
	}
	buf.WriteString("</svg>\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// SVG returns the document markup.
func (d *Document) SVG() []byte {
	var buf bytes.Buffer
	_ = d.WriteSVG(&buf)
	return buf.Bytes()
}

type jsonDocument struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background,omitempty"`
	Root       *Node   `json:"root"`
}

// MarshalJSON exports the scene tree.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonDocument{
		Width:      d.Width,
		Height:     d.Height,
		Background: d.Background,
		Root:       d.Root,
	})
}

// UnmarshalJSON restores a scene exported with MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	d.Width, d.Height, d.Background, d.Root = doc.Width, doc.Height, doc.Background, doc.Root
	if d.Root == nil {
		d.Root = El("svg")
	}
	return nil
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	writeAttrs(buf, n.Attrs)

	switch {
	case len(n.Children) == 0 && n.Text == "":
		buf.WriteString("/>\n")
	case len(n.Children) == 0:
		buf.WriteByte('>')
		buf.WriteString(escape(n.Text))
		fmt.Fprintf(buf, "</%s>\n", n.Tag)
	default:
		buf.WriteString(">")
		if n.Text != "" {
			buf.WriteString(escape(n.Text))
		}
		buf.WriteByte('\n')
		for _, c := range n.Children {
			writeNode(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</%s>\n", indent, n.Tag)
	}
}

func writeAttrs(buf *bytes.Buffer, attrs []Attr) {
	for _, a := range attrs {
		fmt.Fprintf(buf, ` %s="%s"`, a.Name, escape(a.Value))
	}
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
