// Package n3ast defines the tagged-variant term representation the N3
// parser builds and the N3P formatter consumes.
//
// The original C++ source (see original_source/) dispatches over terms with
// a visitor and a class hierarchy. Per the source's own design notes, this
// is re-architected here as a closed set of concrete types implementing a
// single Node interface, dispatched on with a type switch — Go's idiomatic
// equivalent of a tagged union. The teacher (knakk-rdf) shows the same
// shape for its own Term/termType pair in rdf.go; Node generalizes it to
// cover quoted formulas, variables and RDF lists as well.
package n3ast

import "github.com/gmels/carl/n3base"

// Kind identifies the concrete variant behind a Node.
type Kind int

const (
	KindIRI Kind = iota
	KindBlank
	KindVar
	KindList
	KindGraphTemplate
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "IRI"
	case KindBlank:
		return "Blank"
	case KindVar:
		return "Var"
	case KindList:
		return "List"
	case KindGraphTemplate:
		return "GraphTemplate"
	case KindLiteral:
		return "Literal"
	default:
		return "unknown"
	}
}

// Node is the sum type over all N3 term variants. Every implementation is
// a value type; Clone returns a deep copy suitable for owning across a
// triple-emission boundary (the parser otherwise reuses scratch nodes).
type Node interface {
	Kind() Kind
	Clone() Node
}

// IRI is an absolute resource reference.
type IRI struct {
	URI n3base.IRI
}

func (IRI) Kind() Kind    { return KindIRI }
func (n IRI) Clone() Node { return n }

// Blank is a blank-node reference: either user-written (via BlankIDGen.From)
// or generator-supplied (via BlankIDGen.Fresh), or an intermediary created
// while desugaring a property path.
type Blank struct {
	ID string
}

func (Blank) Kind() Kind    { return KindBlank }
func (n Blank) Clone() Node { return n }

// Var is a universally quantified variable, legal only inside a graph
// template.
type Var struct {
	Name string
}

func (Var) Kind() Kind    { return KindVar }
func (n Var) Clone() Node { return n }

// List is an RDF collection held directly as an AST node. n3parse never
// builds one: it always desugars "( ... )" into rdf:first/rdf:rest
// triples. The N3P formatter renders a List it is handed as
// "[e1,e2,...]".
type List struct {
	Elements []Node
}

func (List) Kind() Kind { return KindList }
func (n List) Clone() Node {
	els := make([]Node, len(n.Elements))
	for i, e := range n.Elements {
		els[i] = e.Clone()
	}
	return List{Elements: els}
}

// GraphTemplate is a quoted formula: a per-document monotonically
// increasing ordinal plus the triple patterns it accumulated while being
// parsed. Patterns inside a GraphTemplate deep-own their subject/property/
// object; nothing here aliases parser-stack scratch nodes.
type GraphTemplate struct {
	ID      int
	Triples []TriplePattern
}

func (GraphTemplate) Kind() Kind { return KindGraphTemplate }
func (n GraphTemplate) Clone() Node {
	ts := make([]TriplePattern, len(n.Triples))
	for i, t := range n.Triples {
		ts[i] = t.Clone()
	}
	return GraphTemplate{ID: n.ID, Triples: ts}
}

// LiteralKind is the nested variant tag for Literal, per the design notes'
// instruction that "the Literal family should itself be a nested variant".
type LiteralKind int

const (
	LitInteger LiteralKind = iota
	LitDecimal
	LitDouble
	LitBoolean
	LitString
	LitOther
)

// Literal carries both the bit-exact lexical form (minus delimiters, after
// escape expansion) and a datatype IRI implicit for every recognized
// variant. Lang is only meaningful when LitKind == LitString.
type Literal struct {
	LitKind  LiteralKind
	Lexical  string
	Lang     string
	Datatype n3base.IRI
}

func (Literal) Kind() Kind    { return KindLiteral }
func (n Literal) Clone() Node { return n }

// TriplePattern is a value-owned (subject, property, object) triple. The
// parser deep-copies into a TriplePattern on insertion so a stored or
// emitted pattern never aliases parser-stack nodes (per spec.md §3).
type TriplePattern struct {
	Subject  Node
	Property Node
	Object   Node
}

// Clone returns a TriplePattern whose three nodes are independent deep
// copies of the receiver's.
func (t TriplePattern) Clone() TriplePattern {
	return TriplePattern{
		Subject:  t.Subject.Clone(),
		Property: t.Property.Clone(),
		Object:   t.Object.Clone(),
	}
}
