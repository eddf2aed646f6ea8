package n3base

// Well-known vocabulary IRIs the parser and formatter both need to
// recognize. Grounded on the teacher's XSD* var block in rdf.go.
const (
	XSDString  = IRI("http://www.w3.org/2001/XMLSchema#string")
	XSDBoolean = IRI("http://www.w3.org/2001/XMLSchema#boolean")
	XSDDecimal = IRI("http://www.w3.org/2001/XMLSchema#decimal")
	XSDInteger = IRI("http://www.w3.org/2001/XMLSchema#integer")
	XSDDouble  = IRI("http://www.w3.org/2001/XMLSchema#double")

	RDFType  = IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	RDFFirst = IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#first")
	RDFRest  = IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#rest")
	RDFNil   = IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")

	OWLSameAs = IRI("http://www.w3.org/2002/07/owl#sameAs")

	LogImplies        = IRI("http://www.w3.org/2000/10/swap/log#implies")
	LogReverseImplies = IRI("http://www.w3.org/2000/10/swap/log#reverseImplies")
)

// SkolemPrefix is the fixed per-build IRI prefix used to skolemize blank
// nodes outside of rule bodies. Carried over verbatim from
// original_source/src/CN3Writer.cc so the emitted N3P stays compatible with
// downstream reasoners that recognize this well-known prefix.
const SkolemPrefix = "https://melgi.github.io/.well-known/genid/#"
