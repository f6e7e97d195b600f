// Package render turns delegation plans into human-readable listings.
//
// A Renderer implements both plan emitter entry points: EmitField collects
// fresh delegate fields with their initializers, EmitForward collects one
// forwarding member per descriptor. Render runs a plan through both and
// formats the result with a text/template.
package render
