package telegraph

import (
	"bytes"
	"encoding/json"
	"errors"
)

// elementJSON is the wire shape of an element node. attrs and children are
// omitted entirely when empty, matching the canonical encoding the API
// expects and returns.
type elementJSON struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children Content           `json:"children,omitempty"`
}

// MarshalJSON encodes the element as {"tag":...,"attrs":...,"children":...}.
// Text children encode as plain JSON strings via their underlying type.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{Tag: e.Tag, Attrs: e.Attrs, Children: e.Children})
}

// UnmarshalJSON decodes a node array, mapping strings to Text and objects to
// *Element. Objects with a tag outside the whitelist are rejected with a
// *DecodeError even though the service is assumed to only echo valid content.
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DecodeError{Type: "Content", Message: "expected a JSON array of nodes"}
	}
	nodes := make(Content, 0, len(raw))
	for _, r := range raw {
		n, err := decodeNode(r)
		if err != nil {
			return err
		}
		nodes = append(nodes, n)
	}
	*c = nodes
	return nil
}

// ParseContent decodes and validates a node array given as raw JSON text.
// This is the entry point for callers that receive content in its wire form.
func ParseContent(data []byte) (Content, error) {
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, &DecodeError{Type: "Content", Message: err.Error()}
	}
	return c, nil
}

func decodeNode(data json.RawMessage) (Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &DecodeError{Type: "Node", Message: "empty node"}
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, &DecodeError{Type: "Node", Message: "malformed string node"}
		}
		return Text(s), nil
	case '{':
		var ej elementJSON
		if err := json.Unmarshal(trimmed, &ej); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				return nil, de
			}
			return nil, &DecodeError{Type: "Node", Message: "malformed element node"}
		}
		if ej.Tag == "" {
			return nil, &DecodeError{Type: "Node", Field: "tag"}
		}
		if !allowedTags[ej.Tag] {
			return nil, &DecodeError{Type: "Node", Message: "tag " + ej.Tag + " is not in the whitelist"}
		}
		return &Element{Tag: ej.Tag, Attrs: ej.Attrs, Children: ej.Children}, nil
	default:
		return nil, &DecodeError{Type: "Node", Message: "node must be a string or an object"}
	}
}
