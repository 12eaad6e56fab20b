// Package svg builds small SVG element trees and serialises them.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/rxtech-lab/argo-chart/pkg/errors"
)

// Attr is one element attribute. Order is kept as written.
type Attr struct {
	Name  string
	Value string
}

// Node is an SVG element with attributes, children and optional character data.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// El creates an element.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: children, Text: ""}
}

// A builds an attribute from a string, float or int value.
func A(name string, value any) Attr {
	switch v := value.(type) {
	case string:
		return Attr{Name: name, Value: v}
	case float64:
		return Attr{Name: name, Value: Num(v)}
	case int:
		return Attr{Name: name, Value: strconv.Itoa(v)}
	default:
		return Attr{Name: name, Value: fmt.Sprint(v)}
	}
}

// Num formats a coordinate without trailing zeros.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Translate formats a translate transform.
func Translate(x, y float64) string {
	return fmt.Sprintf("translate(%s, %s)", Num(x), Num(y))
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Find returns every node below n (n included) with the given tag, depth first.
func (n *Node) Find(tag string) []*Node {
	var out []*Node
	if n.Tag == tag {
		out = append(out, n)
	}

	for _, c := range n.Children {
		out = append(out, c.Find(tag)...)
	}

	return out
}

// MarshalXML implements xml.Marshaler.
func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if n.Text != "" {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}

	for _, c := range n.Children {
		if err := e.Encode(c); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}

// Render writes root wrapped in a standalone <svg> document of the given size.
func Render(w io.Writer, root *Node, width, height float64) error {
	doc := El("svg", []Attr{
		A("xmlns", "http://www.w3.org/2000/svg"),
		A("width", width),
		A("height", height),
		A("viewBox", fmt.Sprintf("0 0 %s %s", Num(width), Num(height))),
	}, root)

	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to encode svg", err)
	}

	if err := enc.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to flush svg", err)
	}

	return nil
}
