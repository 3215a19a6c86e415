// Package telegraph provides a client for the Telegraph publishing API
// (https://telegra.ph). It models page content as a tree of nodes, validates
// trees against the tag and attribute whitelist the service accepts, and
// exposes one typed method per API operation.
package telegraph

import "sort"

// Node is one unit of page content: either a Text leaf or an *Element.
// The two implementations are the only ones; the interface is sealed.
type Node interface {
	node()
}

// Text is a plain text node. Constructing a Text never fails.
type Text string

func (Text) node() {}

// Element is a DOM element node with a whitelisted tag, optional attributes
// and an ordered list of children.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Children Content
}

func (*Element) node() {}

// Content is an ordered sequence of nodes, the unit the API accepts and
// returns for a page body.
type Content []Node

// allowedTags is the set of element tags the Telegraph API accepts.
var allowedTags = map[string]bool{
	"a": true, "aside": true, "b": true, "blockquote": true, "br": true,
	"code": true, "em": true, "figcaption": true, "figure": true,
	"h3": true, "h4": true, "hr": true, "i": true, "iframe": true,
	"img": true, "li": true, "ol": true, "p": true, "pre": true,
	"s": true, "strong": true, "u": true, "ul": true, "video": true,
}

// allowedAttrs is the set of attribute keys the Telegraph API accepts.
var allowedAttrs = map[string]bool{
	"href": true,
	"src":  true,
}

// AllowedTags returns the tag whitelist in sorted order.
func AllowedTags() []string {
	tags := make([]string, 0, len(allowedTags))
	for tag := range allowedTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// NewElement constructs an element node, checking the tag and every attribute
// key against the whitelist. Children may mix Text and *Element freely.
func NewElement(tag string, attrs map[string]string, children ...Node) (*Element, error) {
	e := &Element{Tag: tag, Attrs: attrs, Children: Content(children)}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// validate checks this element's own tag and attribute keys (not children).
func (e *Element) validate() error {
	if !allowedTags[e.Tag] {
		return &ValidationError{Tag: e.Tag}
	}
	for key := range e.Attrs {
		if !allowedAttrs[key] {
			return &ValidationError{Tag: e.Tag, Attr: key}
		}
	}
	return nil
}

// Validate walks the tree in pre-order and returns the first
// *ValidationError encountered, or nil if every node is valid.
// Text nodes are always valid.
func (c Content) Validate() error {
	for _, n := range c {
		e, ok := n.(*Element)
		if !ok {
			continue
		}
		if err := e.validate(); err != nil {
			return err
		}
		if err := e.Children.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports structural equality: children in order, attributes as an
// order-independent set of key/value pairs.
func (c Content) Equal(other Content) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if !nodeEqual(c[i], other[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b Node) bool {
	switch x := a.(type) {
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case *Element:
		y, ok := b.(*Element)
		if !ok || x.Tag != y.Tag || len(x.Attrs) != len(y.Attrs) {
			return false
		}
		for k, v := range x.Attrs {
			if yv, ok := y.Attrs[k]; !ok || yv != v {
				return false
			}
		}
		return x.Children.Equal(y.Children)
	default:
		return false
	}
}
