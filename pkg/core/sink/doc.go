// Package sink serializes a rendered [scene.Scene] into output formats.
//
// # SVG
//
// [RenderSVG] walks the primitive tree in document order and writes one SVG
// element per node. Classification tags become the class attribute, so all
// styling lives in a stylesheet. A default stylesheet is embedded; replace it
// with [WithStylesheet] or drop it with [WithoutStylesheet] when the SVG is
// inlined into a page that brings its own CSS.
//
//	svg := sink.RenderSVG(s, sink.WithStylesheet(css))
//
// # JSON
//
// [RenderJSON] exports the scene tree together with canvas size and render
// statistics. It is meant for hosts that draw the primitives themselves.
//
// # PDF and PNG
//
// Raster and print output is produced from the SVG with rsvg-convert, see
// the render package.
package sink
