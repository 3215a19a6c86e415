package telegraph

import (
	"errors"
	"testing"
)

func TestNewElement(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		attrs    map[string]string
		wantTag  string // expected ValidationError.Tag, empty means success
		wantAttr string
	}{
		{
			name: "plain paragraph",
			tag:  "p",
		},
		{
			name:  "anchor with href",
			tag:   "a",
			attrs: map[string]string{"href": "https://example.com"},
		},
		{
			name:  "image with src",
			tag:   "img",
			attrs: map[string]string{"src": "/file/abc.png"},
		},
		{
			name:    "script tag rejected",
			tag:     "script",
			wantTag: "script",
		},
		{
			name:    "div tag rejected",
			tag:     "div",
			wantTag: "div",
		},
		{
			name:     "event handler attribute rejected",
			tag:      "a",
			attrs:    map[string]string{"onclick": "x"},
			wantTag:  "a",
			wantAttr: "onclick",
		},
		{
			name:     "style attribute rejected",
			tag:      "p",
			attrs:    map[string]string{"style": "color:red"},
			wantTag:  "p",
			wantAttr: "style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewElement(tt.tag, tt.attrs)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("NewElement(%q) returned error: %v", tt.tag, err)
				}
				if e.Tag != tt.tag {
					t.Errorf("Tag = %q, want %q", e.Tag, tt.tag)
				}
				return
			}

			if err == nil {
				t.Fatalf("NewElement(%q) succeeded, want ValidationError", tt.tag)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if ve.Tag != tt.wantTag {
				t.Errorf("ValidationError.Tag = %q, want %q", ve.Tag, tt.wantTag)
			}
			if ve.Attr != tt.wantAttr {
				t.Errorf("ValidationError.Attr = %q, want %q", ve.Attr, tt.wantAttr)
			}
		})
	}
}

func TestContentValidate(t *testing.T) {
	valid := Content{
		&Element{Tag: "p", Children: Content{
			Text("Hello, "),
			&Element{Tag: "b", Children: Content{Text("world!")}},
		}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid tree failed validation: %v", err)
	}

	// Invalid node buried two levels deep must be found.
	nested := Content{
		&Element{Tag: "blockquote", Children: Content{
			&Element{Tag: "p", Children: Content{
				&Element{Tag: "script"},
			}},
		}},
	}
	err := nested.Validate()
	if err == nil {
		t.Fatal("tree with nested <script> passed validation")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Tag != "script" {
		t.Errorf("error = %v, want ValidationError for tag script", err)
	}
}

func TestContentValidateShortCircuits(t *testing.T) {
	// Pre-order traversal: the first invalid node (the bad attribute on the
	// outer element) must be reported, not the later bad tag.
	tree := Content{
		&Element{Tag: "a", Attrs: map[string]string{"onclick": "x"}},
		&Element{Tag: "script"},
	}
	err := tree.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if ve.Attr != "onclick" {
		t.Errorf("first reported violation = %+v, want attribute onclick", ve)
	}
}

func TestContentEqual(t *testing.T) {
	a := Content{
		&Element{
			Tag:      "a",
			Attrs:    map[string]string{"href": "https://example.com"},
			Children: Content{Text("link")},
		},
	}
	b := Content{
		&Element{
			Tag:      "a",
			Attrs:    map[string]string{"href": "https://example.com"},
			Children: Content{Text("link")},
		},
	}
	if !a.Equal(b) {
		t.Error("structurally identical trees compare unequal")
	}

	c := Content{
		&Element{
			Tag:      "a",
			Attrs:    map[string]string{"href": "https://other.example"},
			Children: Content{Text("link")},
		},
	}
	if a.Equal(c) {
		t.Error("trees with different attr values compare equal")
	}

	// Child order matters.
	d := Content{Text("x"), Text("y")}
	e := Content{Text("y"), Text("x")}
	if d.Equal(e) {
		t.Error("trees with reordered children compare equal")
	}
}

func TestAllowedTags(t *testing.T) {
	tags := AllowedTags()
	if len(tags) != len(allowedTags) {
		t.Fatalf("AllowedTags returned %d tags, want %d", len(tags), len(allowedTags))
	}
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Fatal("AllowedTags is not sorted")
		}
	}
}
