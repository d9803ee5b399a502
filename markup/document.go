package markup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrSyntax is returned when a document is not well-formed XML.
var ErrSyntax = errors.New("markup: malformed document")

// ErrNoRoot is returned when a document has no root element.
var ErrNoRoot = errors.New("markup: document has no root element")

// Attr is a single attribute. Name keeps its namespace prefix (for example
// "xlink:href").
type Attr struct {
	Name  string
	Value string
}

// Element is a node of an editable markup tree.
//
// Character data is kept as a single Text string per element; the relative
// position of text and child elements is not preserved.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// NewElement creates an element with the given attributes.
func NewElement(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing value or appending
// a new attribute.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// Append adds child as the last child of e and returns child.
func (e *Element) Append(child *Element) *Element {
	e.Children = append(e.Children, child)
	return child
}

// Find returns the first element named name in depth-first document order,
// starting with e itself. It returns nil if there is none.
func (e *Element) Find(name string) *Element {
	if e == nil {
		return nil
	}
	if e.Name == name {
		return e
	}
	for _, c := range e.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// FindID returns the first element whose id attribute equals id.
func (e *Element) FindID(id string) *Element {
	if e == nil {
		return nil
	}
	if v, ok := e.Attr("id"); ok && v == id {
		return e
	}
	for _, c := range e.Children {
		if f := c.FindID(id); f != nil {
			return f
		}
	}
	return nil
}

// Walk calls fn for e and every descendant in document order.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Document is a parsed, editable markup tree.
type Document struct {
	Root *Element
}

// Parse reads a document. Declarations, comments, processing instructions
// and DOCTYPE are dropped. Non-UTF-8 encodings declared in the prolog are
// converted.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Decode is like Parse but reads from r.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: qualified(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			switch {
			case len(stack) > 0:
				stack[len(stack)-1].Append(el)
			case root == nil:
				root = el
			default:
				return nil, fmt.Errorf("%w: multiple root elements", ErrSyntax)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrSyntax, qualified(t.Name))
			}
			top := stack[len(stack)-1]
			if name := qualified(t.Name); name != top.Name {
				return nil, fmt.Errorf("%w: <%s> closed by </%s>", ErrSyntax, top.Name, name)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("%w: text outside root element", ErrSyntax)
			}
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: <%s> not closed", ErrSyntax, stack[len(stack)-1].Name)
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return &Document{Root: root}, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Find returns the first element named name in depth-first order.
func (d *Document) Find(name string) *Element {
	if d == nil {
		return nil
	}
	return d.Root.Find(name)
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if d.Root != nil {
		writeElement(cw, d.Root)
	}
	return cw.n, cw.err
}

func writeElement(w *countingWriter, e *Element) {
	w.WriteString("<" + e.Name)
	for _, a := range e.Attrs {
		w.WriteString(" " + a.Name + `="`)
		w.escape(a.Value)
		w.WriteString(`"`)
	}
	if len(e.Children) == 0 && e.Text == "" {
		w.WriteString("/>")
		return
	}
	w.WriteString(">")
	w.escape(e.Text)
	for _, c := range e.Children {
		writeElement(w, c)
	}
	w.WriteString("</" + e.Name + ">")
}

// countingWriter remembers the first error so serialization code can write
// without checking every call.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}

func (cw *countingWriter) WriteString(s string) {
	_, _ = cw.Write([]byte(s))
}

func (cw *countingWriter) escape(s string) {
	if cw.err != nil {
		return
	}
	_ = xml.EscapeText(cw, []byte(s))
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{Name: e.Name, Text: e.Text}
	c.Attrs = append([]Attr(nil), e.Attrs...)
	for _, ch := range e.Children {
		c.Children = append(c.Children, ch.Clone())
	}
	return c
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.Clone()}
}
