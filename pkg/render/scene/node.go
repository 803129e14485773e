package scene

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/surveycharts/pkg/shape"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// A builds an attribute, formatting numbers with three decimals.
func A(name string, value any) Attr {
	return Attr{Name: name, Value: format(value)}
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return shape.FormatNumber(x, 3)
	case float32:
		return shape.FormatNumber(float64(x), 3)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Node is an SVG element. Text is written before children.
type Node struct {
	Tag      string  `json:"tag"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// El creates an element.
func El(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

// Set replaces the attribute or appends it if absent.
func (n *Node) Set(name string, value any) *Node {
	v := format(value)
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = v
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: v})
	return n
}

// SetDefault sets the attribute only if it is not already present.
func (n *Node) SetDefault(name string, value any) *Node {
	if _, ok := n.Get(name); !ok {
		n.Set(name, value)
	}
	return n
}

// Get returns the attribute value.
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Class adds class names, skipping empty and duplicate ones.
func (n *Node) Class(names ...string) *Node {
	cur, _ := n.Get("class")
	classes := strings.Fields(cur)
	for _, c := range names {
		for _, f := range strings.Fields(c) {
			if !slices.Contains(classes, f) {
				classes = append(classes, f)
			}
		}
	}
	if len(classes) > 0 {
		n.Set("class", strings.Join(classes, " "))
	}
	return n
}

// Classes returns the element's class names.
func (n *Node) Classes() []string {
	cur, _ := n.Get("class")
	return strings.Fields(cur)
}

// HasClass reports whether the element carries the class.
func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.Classes(), name)
}

// Append adds children and returns the first one, or n if none were given.
// Returning the child lets callers build nested groups inline.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	if len(children) == 0 {
		return n
	}
	return children[0]
}

// Add adds children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// SetText sets the text content.
func (n *Node) SetText(text string) *Node {
	n.Text = text
	return n
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns the descendants (including n) matching pred in document
// order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// ByClass returns the elements carrying class.
func (n *Node) ByClass(class string) []*Node {
	return n.FindAll(func(c *Node) bool { return c.HasClass(class) })
}

// ByID returns the element with the given id, or nil.
func (n *Node) ByID(id string) *Node {
	found := n.FindAll(func(c *Node) bool {
		v, ok := c.Get("id")
		return ok && v == id
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}
