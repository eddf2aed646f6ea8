// Package n3parse implements the LL(k) recursive-descent N3 parser
// described in spec.md §4.3.
//
// Grounded on the teacher's ttl.go state machine (knakk-rdf): a
// context-stack-driven triple builder with panic/recover fatal errors.
// n3parse generalizes the teacher's triple-at-a-time Turtle model to N3's
// quoted formulas (triples accumulate into a GraphTemplate instead of being
// emitted), property paths, and variables.
package n3parse

import (
	"fmt"

	"github.com/gmels/carl/n3ast"
	"github.com/gmels/carl/n3base"
	"github.com/gmels/carl/n3lex"
)

// ParseError is the single fatal-error class spec.md §7 describes: every
// syntax, escape, surrogate and IRI-resolution failure surfaces as one of
// these, tagged with the 1-based source line where available.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Parser drives a Sink through one N3 document read from a token Source.
type Parser struct {
	src  n3lex.Source
	sink Sink

	base     n3base.IRI
	prefixes map[string]n3base.IRI

	blanks       *n3base.BlankIDGen
	graphCounter int
	graphStack   []*n3ast.GraphTemplate

	cur n3lex.Token
}

// New creates a Parser that will read tokens from src and resolve relative
// IRIs against base, driving sink as it parses.
func New(src n3lex.Source, base n3base.IRI, sink Sink) *Parser {
	return &Parser{
		src:      src,
		sink:     sink,
		base:     base,
		prefixes: make(map[string]n3base.IRI),
		blanks:   n3base.NewBlankIDGen(),
	}
}

// Parse drives the sink through Start, Document, the document's Prefix/
// Triple calls in source order, and End, per spec.md §4.3.
//
// On success, Parse calls sink.End() itself before returning nil. On
// failure, Parse returns the *ParseError without calling sink.End() — the
// caller decides whether to call it to flush whatever partial output the
// sink has already produced.
func (p *Parser) Parse() (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			err = pe
		}
	}()

	p.sink.Start()
	p.sink.Document(p.base)
	p.advance()

	for p.cur.Type != n3lex.EOF {
		if p.isDirective(p.cur.Type) {
			p.parseDirective()
			continue
		}
		p.parseTriples()
	}

	p.sink.End()
	return nil
}

func (p *Parser) isDirective(t n3lex.Type) bool {
	switch t {
	case n3lex.Prefix, n3lex.Base, n3lex.SparqlPrefix, n3lex.SparqlBase:
		return true
	default:
		return false
	}
}

func (p *Parser) fail(format string, args ...interface{}) {
	panic(&ParseError{Line: p.cur.Line, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) advance() {
	p.cur = p.src.Next()
	if p.cur.Type == n3lex.Error {
		panic(&ParseError{Line: p.cur.Line, Msg: p.cur.Text})
	}
}

func (p *Parser) expect(t n3lex.Type) n3lex.Token {
	if p.cur.Type != t {
		p.fail("expected %s, got %s", t, p.cur.Type)
	}
	tok := p.cur
	p.advance()
	return tok
}

// --- directives ---

func (p *Parser) parseDirective() {
	switch p.cur.Type {
	case n3lex.Prefix:
		p.advance()
		label := p.expect(n3lex.PNameNS).Text
		ref := p.expect(n3lex.IRIRef).Text
		ns := p.resolveIRIRefText(ref)
		p.prefixes[label] = ns
		p.sink.Prefix(label, ns)
		p.expect(n3lex.Dot)
	case n3lex.Base:
		p.advance()
		ref := p.expect(n3lex.IRIRef).Text
		p.base = p.resolveIRIRefText(ref)
		p.expect(n3lex.Dot)
	case n3lex.SparqlPrefix:
		p.advance()
		label := p.expect(n3lex.PNameNS).Text
		ref := p.expect(n3lex.IRIRef).Text
		ns := p.resolveIRIRefText(ref)
		p.prefixes[label] = ns
		p.sink.Prefix(label, ns)
	case n3lex.SparqlBase:
		p.advance()
		ref := p.expect(n3lex.IRIRef).Text
		p.base = p.resolveIRIRefText(ref)
	default:
		p.fail("expected a directive")
	}
}

func (p *Parser) resolveIRIRefText(raw string) n3base.IRI {
	expanded, err := unescapeIRI(raw)
	if err != nil {
		p.fail("%s", err)
	}
	resolved, err := n3base.Resolve(p.base, n3base.IRI(expanded))
	if err != nil {
		p.fail("%s", err)
	}
	return resolved
}

// --- top-level and nested triples ---

// parseTriples implements the `triples := subject path propertyList |
// blankNodePropertyList path propertyListOpt` production. The property
// list is optional only when the subject is itself a standalone '[...]'
// blank node property list (e.g. "[ a ex:Foo ] ."); a subject of any other
// shape always requires one, per original_source/src/Parser.cc's triples().
// The terminating '.' is mandatory, except inside a graph template where it
// may be left out before the closing '}'.
func (p *Parser) parseTriples() {
	bracketSubject := p.cur.Type == n3lex.LBracket
	subj := p.parsePath(p.parseSubject())

	if bracketSubject && p.atTriplesTerminator() {
		return
	}

	p.parsePropertyList(subj)
	if p.insideGraphTemplate() && p.cur.Type == n3lex.RBrace {
		return
	}
	p.expect(n3lex.Dot)
}

// atTriplesTerminator reports whether the current token can end a
// `triples` production with no property list at all, consuming a '.' if
// that is what it finds. Only consulted for a bracketed subject, where
// propertyListOpt may be empty.
func (p *Parser) atTriplesTerminator() bool {
	if p.cur.Type == n3lex.Dot {
		p.advance()
		return true
	}
	return p.insideGraphTemplate() && p.cur.Type == n3lex.RBrace
}

func (p *Parser) insideGraphTemplate() bool { return len(p.graphStack) > 0 }

func (p *Parser) parseSubject() n3ast.Node {
	return p.parseTerm(true)
}

func (p *Parser) parseObject() n3ast.Node {
	return p.parseTerm(false)
}

// parseTerm parses the common node grammar shared by subject and object
// positions: iri | blank | blankNodePropertyList | collection |
// graphTemplate | (object-only:) literal | (graph-template-only:) variable.
func (p *Parser) parseTerm(subjectPosition bool) n3ast.Node {
	switch p.cur.Type {
	case n3lex.IRIRef, n3lex.PNameNS, n3lex.PNameLN, n3lex.RDFTypeKeyword:
		return p.parseIRITerm()
	case n3lex.BlankNodeLabel:
		tok := p.cur
		p.advance()
		return n3ast.Blank{ID: p.blanks.From(tok.Text)}
	case n3lex.LBracket:
		return p.parseBlankNodePropertyList()
	case n3lex.LParen:
		return p.parseCollection()
	case n3lex.LBrace:
		return p.parseGraphTemplate()
	case n3lex.Var:
		if !p.insideGraphTemplate() {
			p.fail("variables are only allowed inside graph templates")
		}
		tok := p.cur
		p.advance()
		return n3ast.Var{Name: tok.Text}
	default:
		if !subjectPosition {
			if lit, ok := p.tryParseLiteral(); ok {
				return lit
			}
		}
		p.fail("unexpected %s as %s", p.cur.Type, positionName(subjectPosition))
		return nil
	}
}

func positionName(subjectPosition bool) string {
	if subjectPosition {
		return "subject"
	}
	return "object"
}

func (p *Parser) parseIRITerm() n3ast.Node {
	switch p.cur.Type {
	case n3lex.RDFTypeKeyword:
		p.advance()
		return n3ast.IRI{URI: n3base.RDFType}
	case n3lex.IRIRef:
		tok := p.cur
		p.advance()
		return n3ast.IRI{URI: p.resolveIRIRefText(tok.Text)}
	case n3lex.PNameNS:
		tok := p.cur
		p.advance()
		return n3ast.IRI{URI: p.lookupPrefix(tok.Text)}
	case n3lex.PNameLN:
		tok := p.cur
		p.advance()
		return n3ast.IRI{URI: p.resolvePNameLN(tok.Text)}
	default:
		p.fail("expected an IRI, got %s", p.cur.Type)
		return nil
	}
}

func (p *Parser) lookupPrefix(pname string) n3base.IRI {
	ns, ok := p.prefixes[pname]
	if !ok {
		p.fail("undeclared prefix %q", pname)
	}
	return ns
}

func (p *Parser) resolvePNameLN(text string) n3base.IRI {
	idx := indexByte(text, ':')
	prefix, localRaw := text[:idx+1], text[idx+1:]
	ns := p.lookupPrefix(prefix)
	local, err := unescapeLocalName(localRaw)
	if err != nil {
		p.fail("%s", err)
	}
	return n3base.IRI(string(ns) + local)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// --- verbs, property lists, object lists ---

func (p *Parser) parseVerb() n3ast.Node {
	switch p.cur.Type {
	case n3lex.RDFTypeKeyword:
		p.advance()
		return n3ast.IRI{URI: n3base.RDFType}
	case n3lex.Equal:
		p.advance()
		return n3ast.IRI{URI: n3base.OWLSameAs}
	case n3lex.Implies:
		p.advance()
		return n3ast.IRI{URI: n3base.LogImplies}
	case n3lex.ReverseImplies:
		p.advance()
		return n3ast.IRI{URI: n3base.LogReverseImplies}
	case n3lex.IRIRef, n3lex.PNameNS, n3lex.PNameLN:
		return p.parseIRITerm()
	case n3lex.BlankNodeLabel:
		tok := p.cur
		p.advance()
		return n3ast.Blank{ID: p.blanks.From(tok.Text)}
	case n3lex.LBracket:
		return p.parseBlankNodePropertyList()
	case n3lex.Var:
		if !p.insideGraphTemplate() {
			p.fail("variables are only allowed inside graph templates")
		}
		tok := p.cur
		p.advance()
		return n3ast.Var{Name: tok.Text}
	default:
		p.fail("unexpected %s as verb", p.cur.Type)
		return nil
	}
}

// parsePropertyList implements `propertyList := property (';' property?)*`.
func (p *Parser) parsePropertyList(subject n3ast.Node) {
	p.parseProperty(subject)
	for p.cur.Type == n3lex.Semicolon {
		p.advance()
		if p.cur.Type == n3lex.Semicolon || p.cur.Type == n3lex.Dot || p.cur.Type == n3lex.RBrace || p.cur.Type == n3lex.RBracket {
			continue // trailing/repeated ';' with no further property
		}
		p.parseProperty(subject)
	}
}

// parseProperty implements `property := verb objectList`.
func (p *Parser) parseProperty(subject n3ast.Node) {
	verb := p.parseVerb()
	p.parseObjectList(subject, verb)
}

// parseObjectList implements `objectList := object path (',' object path)*`.
func (p *Parser) parseObjectList(subject, verb n3ast.Node) {
	for {
		obj := p.parsePath(p.parseObject())
		p.emitForVerb(subject, verb, obj)
		if p.cur.Type != n3lex.Comma {
			return
		}
		p.advance()
	}
}

// --- property paths ---

// parsePath implements `path := (('!'|'^') (iri|blank|blankNodePropertyList))*`.
func (p *Parser) parsePath(current n3ast.Node) n3ast.Node {
	for p.cur.Type == n3lex.Bang || p.cur.Type == n3lex.Caret {
		forward := p.cur.Type == n3lex.Bang
		p.advance()

		var prop n3ast.Node
		switch p.cur.Type {
		case n3lex.IRIRef, n3lex.PNameNS, n3lex.PNameLN:
			prop = p.parseIRITerm()
		case n3lex.BlankNodeLabel:
			tok := p.cur
			p.advance()
			prop = n3ast.Blank{ID: p.blanks.From(tok.Text)}
		case n3lex.LBracket:
			prop = p.parseBlankNodePropertyList()
		default:
			p.fail("expected an IRI, blank node or blank node property list after %q", pathOpText(forward))
		}

		b := n3ast.Blank{ID: p.blanks.Fresh()}
		if forward {
			p.emit(current, prop, b)
		} else {
			p.emit(b, prop, current)
		}
		current = b
	}
	return current
}

func pathOpText(forward bool) string {
	if forward {
		return "!"
	}
	return "^"
}

// --- desugared constructs ---

// parseBlankNodePropertyList implements the '[' p o ; ... ']' desugaring of
// spec.md §4.3: allocate a fresh blank, emit one triple per property inside
// with that blank as subject, yield the blank as the node value.
func (p *Parser) parseBlankNodePropertyList() n3ast.Node {
	p.expect(n3lex.LBracket)
	subject := n3ast.Blank{ID: p.blanks.Fresh()}
	if p.cur.Type != n3lex.RBracket {
		p.parsePropertyList(subject)
	}
	p.expect(n3lex.RBracket)
	return subject
}

// parseCollection implements the RDF collection desugaring of spec.md
// §4.3: a fresh blank per cons cell, linked by rdf:first/rdf:rest, ending
// in rdf:nil. An empty collection yields rdf:nil directly with no
// emissions.
func (p *Parser) parseCollection() n3ast.Node {
	p.expect(n3lex.LParen)
	if p.cur.Type == n3lex.RParen {
		p.advance()
		return n3ast.IRI{URI: n3base.RDFNil}
	}

	head := n3ast.Blank{ID: p.blanks.Fresh()}
	cell := head
	for {
		item := p.parsePath(p.parseObject())
		p.emit(cell, n3ast.IRI{URI: n3base.RDFFirst}, item)
		if p.cur.Type == n3lex.RParen {
			p.emit(cell, n3ast.IRI{URI: n3base.RDFRest}, n3ast.IRI{URI: n3base.RDFNil})
			break
		}
		next := n3ast.Blank{ID: p.blanks.Fresh()}
		p.emit(cell, n3ast.IRI{URI: n3base.RDFRest}, next)
		cell = next
	}
	p.expect(n3lex.RParen)
	return head
}

// parseGraphTemplate implements `graphTemplate := '{' (triplePattern
// ('.')?)* '}'`: triples accumulate into the template instead of being
// pushed to the sink.
func (p *Parser) parseGraphTemplate() n3ast.Node {
	p.expect(n3lex.LBrace)

	gt := &n3ast.GraphTemplate{ID: p.graphCounter}
	p.graphCounter++
	p.graphStack = append(p.graphStack, gt)

	for p.cur.Type != n3lex.RBrace {
		if p.isDirective(p.cur.Type) {
			p.parseDirective()
			continue
		}
		p.parseTriples()
		if p.cur.Type == n3lex.Dot {
			p.advance()
		}
	}
	p.expect(n3lex.RBrace)

	p.graphStack = p.graphStack[:len(p.graphStack)-1]
	return *gt
}

// emit appends a deep-owned TriplePattern either to the innermost open
// graph template or, at top level, straight to the sink.
func (p *Parser) emit(s, prop, o n3ast.Node) {
	tp := n3ast.TriplePattern{Subject: s, Property: prop, Object: o}.Clone()
	if n := len(p.graphStack); n > 0 {
		top := p.graphStack[n-1]
		top.Triples = append(top.Triples, tp)
		return
	}
	p.sink.Triple(tp.Subject, tp.Property, tp.Object)
}

func (p *Parser) emitForVerb(subject, verb, object n3ast.Node) {
	p.emit(subject, verb, object)
}

// --- literals ---

// tryParseLiteral parses the current token as a literal object if it is
// one, returning ok=false without consuming input otherwise.
func (p *Parser) tryParseLiteral() (n3ast.Node, bool) {
	switch p.cur.Type {
	case n3lex.True:
		p.advance()
		return n3ast.NewBooleanLiteral(true), true
	case n3lex.False:
		p.advance()
		return n3ast.NewBooleanLiteral(false), true
	case n3lex.Integer:
		tok := p.cur
		p.advance()
		return n3ast.NewIntegerLiteral(tok.Text), true
	case n3lex.Decimal:
		tok := p.cur
		p.advance()
		return n3ast.NewDecimalLiteral(tok.Text), true
	case n3lex.Double:
		tok := p.cur
		p.advance()
		return n3ast.NewDoubleLiteral(tok.Text), true
	case n3lex.StringLiteralQuote, n3lex.StringLiteralSingleQuote,
		n3lex.StringLiteralLongQuote, n3lex.StringLiteralLongSingleQuote:
		return p.parseStringLiteral(), true
	default:
		return nil, false
	}
}

func (p *Parser) parseStringLiteral() n3ast.Node {
	tok := p.cur
	p.advance()
	lexical, err := unescapeString(tok.Text)
	if err != nil {
		p.fail("%s", err)
	}

	switch p.cur.Type {
	case n3lex.LangTag:
		lang := p.cur.Text
		p.advance()
		return n3ast.NewStringLiteral(lexical, lang)
	case n3lex.CaretCaret:
		p.advance()
		dt := p.parseIRITerm().(n3ast.IRI).URI
		return promoteTypedLiteral(lexical, dt)
	default:
		return n3ast.NewStringLiteral(lexical, "")
	}
}

// promoteTypedLiteral implements spec.md §4.3: literals typed with
// ^^<xsd:integer|decimal|double|boolean|string> are promoted to the
// corresponding specialized variant without lexical validation; every
// other typed literal becomes Other. "1"/"0" spellings of xsd:boolean are
// accepted and normalized to the canonical "true"/"false" lexical form.
func promoteTypedLiteral(lexical string, datatype n3base.IRI) n3ast.Node {
	switch datatype {
	case n3base.XSDInteger:
		return n3ast.NewIntegerLiteral(lexical)
	case n3base.XSDDecimal:
		return n3ast.NewDecimalLiteral(lexical)
	case n3base.XSDDouble:
		return n3ast.NewDoubleLiteral(lexical)
	case n3base.XSDBoolean:
		return n3ast.NewBooleanLiteral(lexical == "true" || lexical == "1")
	case n3base.XSDString:
		return n3ast.NewStringLiteral(lexical, "")
	default:
		return n3ast.NewOtherLiteral(lexical, datatype)
	}
}
