// Package markup parses, edits, serializes and renders a practical subset
// of SVG.
//
// A Document is a plain element tree: it can be searched with Find, edited
// with SetAttr and written back with WriteTo. Compile turns a Document into
// a Dom, which draws onto any surface.Canvas:
//
//	doc, err := markup.Parse(data)
//	if err != nil {
//		return err
//	}
//	doc.Find("path").SetAttr("fill-rule", "evenodd")
//	dom, err := markup.Compile(doc, fonts)
//	if err != nil {
//		return err
//	}
//	return dom.Render(canvas)
//
// Rendering covers fills of paths and basic shapes, groups, nested svg
// viewports, use, linear and radial gradients, clip paths, text and
// images embedded as data URLs. Strokes, masks, filters, patterns and
// markers are not drawn.
package markup
