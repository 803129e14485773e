// Package scene holds an in-memory SVG element tree.
//
// Charts build a [Document] of [Node] values rather than writing markup
// directly, so the same scene can be emitted as SVG ([Document.WriteSVG]),
// exported as JSON ([Document.MarshalJSON]) or inspected in tests.
//
// Attributes keep insertion order, which makes the emitted markup stable
// across runs and cacheable by content hash.
//
//	doc := scene.NewDocument(800, 1000)
//	g := doc.Root.Append(scene.Group(scene.A("transform", scene.Translate(100, 0))))
//	g.Append(scene.Circle(0, 0, 28).Class("role-background"))
//	svg := doc.SVG()
package scene
