package n3out

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/gmels/carl/n3ast"
)

// DecimalMode selects how Literal values of kind Decimal are rendered.
type DecimalMode int

const (
	// DecimalLiteralMode repairs the lexical form just enough to be a
	// legal Prolog number (same leading/trailing-zero rules as Double).
	DecimalLiteralMode DecimalMode = iota
	// DecimalRationalMode renders the value as an exact integer ratio
	// N rdiv D instead, so a downstream reasoner never loses precision
	// to floating point.
	DecimalRationalMode
)

// goalRenderer lets the Formatter recurse into triple-pattern rendering
// for the contents of a GraphTemplate without importing n3out.Writer back
// into itself — Writer wires this closure in at construction. Grounded on
// original_source/src/CN3Writer.hh, where N3PFormatter holds a reference
// back to CN3Writer for exactly this purpose.
type goalRenderer func(b *strings.Builder, s, p, o n3ast.Node)

// Formatter renders AST terms as Prolog-safe syntax. It carries the two
// pieces of writer-scoped state spec.md §4.4 names explicitly: a rule flag
// and a graph-id stack, held on the Formatter rather than in globals. The
// rule flag is set by Writer through SetRule; RenderGraphContents pushes
// and pops the graph-id stack around each template and clears the rule
// flag once the outermost template has been rendered.
type Formatter struct {
	rule        bool
	graphIDs    []int
	decimalMode DecimalMode
	encoding    Encoding
	renderGoal  goalRenderer
}

// NewFormatter constructs a Formatter in non-rule mode with an empty graph
// stack. renderGoal is supplied by Writer after both are constructed.
func NewFormatter(decimalMode DecimalMode, encoding Encoding, renderGoal goalRenderer) *Formatter {
	return &Formatter{decimalMode: decimalMode, encoding: encoding, renderGoal: renderGoal}
}

// SetRule flips the formatter's rule flag. Called exclusively by Writer
// when entering or leaving a rule-producing context.
func (f *Formatter) SetRule(v bool) { f.rule = v }

// Rule reports the current rule flag.
func (f *Formatter) Rule() bool { return f.rule }

// graphSuffix returns the top of the graph-id stack as a string, or ""
// when the stack is empty.
func (f *Formatter) graphSuffix() string {
	if len(f.graphIDs) == 0 {
		return ""
	}
	return strconv.Itoa(f.graphIDs[len(f.graphIDs)-1])
}

// RenderNode writes the Prolog-safe rendering of n to b, dispatching on
// its concrete variant per the term rendering table in spec.md §4.4.
func (f *Formatter) RenderNode(b *strings.Builder, n n3ast.Node) {
	switch v := n.(type) {
	case n3ast.IRI:
		f.renderIRI(b, string(v.URI))
	case n3ast.Blank:
		f.renderBlank(b, v.ID)
	case n3ast.Var:
		b.WriteByte('_')
		b.WriteString(v.Name)
	case n3ast.List:
		b.WriteByte('[')
		for i, e := range v.Elements {
			if i > 0 {
				b.WriteByte(',')
			}
			f.RenderNode(b, e)
		}
		b.WriteByte(']')
	case n3ast.Literal:
		f.renderLiteral(b, v)
	case n3ast.GraphTemplate:
		f.RenderGraphContents(b, v, true)
	default:
		panic("n3out: unrenderable node variant")
	}
}

func (f *Formatter) renderIRI(b *strings.Builder, uri string) {
	b.WriteByte('\'')
	b.WriteByte('<')
	b.WriteString(escapeIRIAtom(uri, f.encoding))
	b.WriteByte('>')
	b.WriteByte('\'')
}

// renderBlank implements the two blank-rendering rules of spec.md §4.4:
// a skolem IRI when the rule flag is false, a universal variable when it
// is true. Grounded line-for-line on N3PFormatter::visit(BlankNode) in
// original_source/src/CN3Writer.cc.
func (f *Formatter) renderBlank(b *strings.Builder, id string) {
	if !f.rule {
		b.WriteByte('\'')
		b.WriteByte('<')
		b.WriteString(SkolemPrefix)
		b.WriteString(id)
		if suffix := f.graphSuffix(); suffix != "" {
			b.WriteByte('_')
			b.WriteString(suffix)
		}
		b.WriteByte('>')
		b.WriteByte('\'')
		return
	}

	b.WriteByte('V')
	if i := strings.IndexByte(id, '-'); i >= 0 {
		b.WriteString(id[i+1:])
	} else {
		b.WriteString(id)
	}
	b.WriteByte('_')
	b.WriteString(f.graphSuffix())
}

func (f *Formatter) renderLiteral(b *strings.Builder, lit n3ast.Literal) {
	switch lit.LitKind {
	case n3ast.LitInteger, n3ast.LitBoolean:
		b.WriteString(lit.Lexical)
	case n3ast.LitDouble:
		b.WriteString(repairFloatLexical(lit.Lexical))
	case n3ast.LitDecimal:
		if f.decimalMode == DecimalRationalMode {
			writeRationalDecimal(b, lit.Lexical)
		} else {
			b.WriteString(repairFloatLexical(lit.Lexical))
		}
	case n3ast.LitString:
		b.WriteString("literal('")
		b.WriteString(escapeAtom(lit.Lexical, f.encoding))
		b.WriteByte('\'')
		if lit.Lang != "" {
			b.WriteString(",lang('")
			b.WriteString(lit.Lang)
			b.WriteString("')")
		} else {
			b.WriteString(",type('<")
			b.WriteString(escapeIRIAtom(string(lit.Datatype), f.encoding))
			b.WriteString(">')")
		}
		b.WriteByte(')')
	default: // LitOther
		b.WriteString("literal('")
		b.WriteString(escapeAtom(lit.Lexical, f.encoding))
		b.WriteString("',type('<")
		b.WriteString(escapeIRIAtom(string(lit.Datatype), f.encoding))
		b.WriteString(">'))")
	}
}

// repairFloatLexical applies the leading/trailing-zero repairs spec.md
// §4.4 requires for both Double and literal-mode Decimal: Prolog rejects
// ".5", "-.5", "5." and "5.E0". Grounded on
// N3PFormatter::visit(DoubleLiteral) in CN3Writer.cc.
func repairFloatLexical(value string) string {
	s := value
	appendZero := false

	if p := strings.IndexByte(s, '.'); p >= 0 {
		p++
		if p == len(s) {
			appendZero = true
		} else if s[p] == 'e' || s[p] == 'E' {
			s = s[:p] + "0" + s[p:]
		}
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	switch {
	case strings.HasPrefix(s, "."):
		b.WriteByte('0')
		b.WriteString(s)
	case strings.HasPrefix(s, "-."):
		b.WriteByte('-')
		b.WriteByte('0')
		b.WriteString(s[1:])
	default:
		b.WriteString(s)
	}
	if appendZero {
		b.WriteByte('0')
	}
	return b.String()
}

// writeRationalDecimal renders a Decimal lexical form as an exact,
// unreduced integer ratio N rdiv D with D = 10^k, k the number of digits
// after the decimal point. Grounded line-for-line on
// N3PFormatter::visit(DecimalLiteral)'s m_rdivDecimal branch: the
// numerator is the concatenation of the integer and fractional digits
// (not an arithmetically reduced fraction), matching spec.md §8's example
// "1.25 -> 125 rdiv 100".
func writeRationalDecimal(b *strings.Builder, value string) {
	p := strings.IndexByte(value, '.')
	if p < 0 {
		b.WriteString(value)
		b.WriteString(" rdiv 1")
		return
	}

	intPart := value[:p]
	fracPart := value[p+1:]

	numerator := new(big.Int)
	numerator.SetString(intPart+fracPart, 10)
	b.WriteString(numerator.String())
	b.WriteString(" rdiv 1")
	for range fracPart {
		b.WriteByte('0')
	}
}
