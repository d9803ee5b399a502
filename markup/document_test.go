package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAndFind(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<!-- generated -->
<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><g id="layer"><rect width="1" height="1"/><path d="M0 0 L1 1"/></g></svg>`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if doc.Root.Name != "svg" {
		t.Errorf("root = %q, want svg", doc.Root.Name)
	}
	p := doc.Find("path")
	if p == nil {
		t.Fatal("Find(path) = nil")
	}
	if d, _ := p.Attr("d"); d != "M0 0 L1 1" {
		t.Errorf("d = %q, want %q", d, "M0 0 L1 1")
	}
	if doc.Find("circle") != nil {
		t.Error("Find(circle) != nil")
	}
	if g := doc.Root.FindID("layer"); g == nil || g.Name != "g" {
		t.Errorf("FindID(layer) = %v, want <g>", g)
	}
	if got := doc.Find("svg"); got != doc.Root {
		t.Error("Find includes the element itself")
	}
}

func TestFindDepthFirst(t *testing.T) {
	doc, err := Parse([]byte(`<svg><g><g><path id="deep"/></g></g><path id="shallow"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	if id, _ := doc.Find("path").Attr("id"); id != "deep" {
		t.Errorf("Find(path) id = %q, want deep", id)
	}
}

func TestSetAttrRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><g><path d="M0 0" fill="red"/></g></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	p := doc.Find("path")
	p.SetAttr("fill-rule", "evenodd")
	p.SetAttr("fill", "blue")

	want := `<svg xmlns="http://www.w3.org/2000/svg"><g><path d="M0 0" fill="blue" fill-rule="evenodd"/></g></svg>`
	if got := string(doc.Bytes()); got != want {
		t.Errorf("Bytes() =\n%s\nwant\n%s", got, want)
	}

	again, err := Parse(doc.Bytes())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if v, _ := again.Find("path").Attr("fill-rule"); v != "evenodd" {
		t.Errorf("fill-rule after reparse = %q", v)
	}
}

func TestRemoveAttr(t *testing.T) {
	e := NewElement("path", Attr{"a", "1"}, Attr{"b", "2"}, Attr{"c", "3"})
	e.RemoveAttr("b")
	e.RemoveAttr("missing")
	want := []Attr{{"a", "1"}, {"c", "3"}}
	if diff := cmp.Diff(want, e.Attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestEscaping(t *testing.T) {
	root := NewElement("text", Attr{"font-family", `a&"b"`})
	root.Text = "1 < 2"
	doc := &Document{Root: root}
	out := string(doc.Bytes())
	if strings.Contains(out, "1 < 2") || !strings.Contains(out, "&lt;") {
		t.Errorf("text not escaped: %s", out)
	}
	back, err := Parse(doc.Bytes())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back.Root.Text != "1 < 2" {
		t.Errorf("text = %q, want %q", back.Root.Text, "1 < 2")
	}
	if v, _ := back.Root.Attr("font-family"); v != `a&"b"` {
		t.Errorf("attr = %q", v)
	}
}

func TestPrefixedAttributes(t *testing.T) {
	doc, err := Parse([]byte(`<svg xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := doc.Find("use").Attr("xlink:href"); !ok || v != "#a" {
		t.Errorf("xlink:href = %q, %v", v, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrNoRoot},
		{"prolog only", `<?xml version="1.0"?>`, ErrNoRoot},
		{"mismatched", "<svg><g></svg>", ErrSyntax},
		{"unclosed", "<svg><g>", ErrSyntax},
		{"two roots", "<a/><b/>", ErrSyntax},
		{"stray text", "hello", ErrSyntax},
		{"bad attribute", `<svg width=10/>`, ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.src, err, tt.want)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc, err := Parse([]byte(`<svg><path d="M0 0"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	c := doc.Clone()
	c.Find("path").SetAttr("d", "M1 1")
	if d, _ := doc.Find("path").Attr("d"); d != "M0 0" {
		t.Errorf("original changed: d = %q", d)
	}
}
