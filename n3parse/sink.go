package n3parse

import (
	"github.com/gmels/carl/n3ast"
	"github.com/gmels/carl/n3base"
)

// Sink is the streaming triple consumer a Parser drives. n3out.Writer is
// the production implementation; tests may substitute a recording sink.
type Sink interface {
	// Start is called once, before any other method.
	Start()

	// Document is called once, immediately after Start, with the initial
	// (possibly caller-supplied) base IRI.
	Document(base n3base.IRI)

	// Prefix is called once per @prefix or SPARQL-style PREFIX directive
	// (not for base directives), in source order, interleaved with Triple
	// calls.
	Prefix(prefix string, namespace n3base.IRI)

	// Triple is called once per completed top-level triple, in source
	// order, as soon as its object is fully parsed.
	Triple(subject, property, object n3ast.Node)

	// End is called once, after the document has been fully and
	// successfully parsed. It is not called automatically on parse
	// failure; see Parser.Parse.
	End()
}
