package n3out

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmels/carl/n3ast"
	"github.com/gmels/carl/n3base"
)

func newTestWriter(cfg Config) (*Writer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWriter(&buf, cfg, "\n"), &buf
}

func TestWriterEmptyDocumentStillEmitsPrologueAndEpilogue(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	w.Document("http://example.org/doc")
	w.End()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, ":- style_check(-discontiguous).\n"))
	assert.Contains(t, out, "scope('<http://example.org/doc>').")
	assert.Contains(t, out, "scount(0).\n")
	assert.True(t, strings.HasSuffix(out, "end_of_file.\n"))
}

func TestWriterSingleTripleCountsOneClause(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(
		n3ast.IRI{URI: "http://example.org/s"},
		n3ast.IRI{URI: "http://example.org/p"},
		n3ast.IRI{URI: "http://example.org/o"},
	)
	w.End()

	out := buf.String()
	assert.Contains(t, out, "'<http://example.org/p>'('<http://example.org/s>', '<http://example.org/o>').\n")
	assert.Contains(t, out, "scount(1).\n")
}

func TestWriterPrefixNoExtraColonInserted(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	// The lexer hands PNAME_NS text already colon-terminated.
	w.Prefix("ex:", "http://example.org/")
	w.End()

	out := buf.String()
	assert.Contains(t, out, "pfx('ex:','<http://example.org/>').\n")
	assert.NotContains(t, out, "ex::")
}

func TestWriterImpliesTopLevel(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(
		n3ast.GraphTemplate{ID: 0, Triples: []n3ast.TriplePattern{
			{Subject: n3ast.IRI{URI: "http://example.org/a"}, Property: n3ast.IRI{URI: "http://example.org/b"}, Object: n3ast.IRI{URI: "http://example.org/c"}},
		}},
		n3ast.IRI{URI: n3base.LogImplies},
		n3ast.GraphTemplate{ID: 1, Triples: []n3ast.TriplePattern{
			{Subject: n3ast.IRI{URI: "http://example.org/d"}, Property: n3ast.IRI{URI: "http://example.org/e"}, Object: n3ast.IRI{URI: "http://example.org/f"}},
		}},
	)
	w.End()

	out := buf.String()
	assert.Contains(t, out, "implies(")
	assert.Contains(t, out, ", '<http://example.org/doc>')")
	assert.Contains(t, out, "scount(1).\n")
}

func TestWriterReverseImpliesHeadBody(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(
		n3ast.GraphTemplate{ID: 0, Triples: []n3ast.TriplePattern{
			{Subject: n3ast.IRI{URI: "http://example.org/a"}, Property: n3ast.IRI{URI: "http://example.org/b"}, Object: n3ast.IRI{URI: "http://example.org/c"}},
		}},
		n3ast.IRI{URI: n3base.LogReverseImplies},
		n3ast.GraphTemplate{ID: 1, Triples: []n3ast.TriplePattern{
			{Subject: n3ast.IRI{URI: "http://example.org/d"}, Property: n3ast.IRI{URI: "http://example.org/e"}, Object: n3ast.IRI{URI: "http://example.org/f"}},
		}},
	)
	w.End()

	out := buf.String()
	assert.Contains(t, out, "cpred('<http://example.org/b>').\n")
	assert.Contains(t, out, ":- ")
}

func TestWriterVarPropertyExopred(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(
		n3ast.IRI{URI: "http://example.org/s"},
		n3ast.Var{Name: "p"},
		n3ast.IRI{URI: "http://example.org/o"},
	)
	w.End()

	out := buf.String()
	assert.Contains(t, out, "exopred(_p, '<http://example.org/s>', '<http://example.org/o>').\n")
}

func TestWriterPredicateDeclarationsGatedOnConfig(t *testing.T) {
	w, buf := newTestWriter(Config{EmitPredicateDeclarations: true})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(
		n3ast.IRI{URI: "http://example.org/s"},
		n3ast.IRI{URI: "http://example.org/p"},
		n3ast.IRI{URI: "http://example.org/o"},
	)
	w.End()

	out := buf.String()
	assert.Contains(t, out, ":- dynamic('<http://example.org/p>'/2).\n")
	assert.Contains(t, out, ":- multifile('<http://example.org/p>'/2).\n")
}

func TestWriterPredicateDeclarationsOffByDefault(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(
		n3ast.IRI{URI: "http://example.org/s"},
		n3ast.IRI{URI: "http://example.org/p"},
		n3ast.IRI{URI: "http://example.org/o"},
	)
	w.End()

	out := buf.String()
	assert.NotContains(t, out, ":- dynamic(")
}

func TestWriterPredicateDeclarationsDeduplicated(t *testing.T) {
	w, buf := newTestWriter(Config{EmitPredicateDeclarations: true})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(n3ast.IRI{URI: "http://example.org/s1"}, n3ast.IRI{URI: "http://example.org/p"}, n3ast.IRI{URI: "http://example.org/o1"})
	w.Triple(n3ast.IRI{URI: "http://example.org/s2"}, n3ast.IRI{URI: "http://example.org/p"}, n3ast.IRI{URI: "http://example.org/o2"})
	w.End()

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, ":- dynamic('<http://example.org/p>'/2)."))
}

func TestWriterDecimalRationalModeUnreducedFraction(t *testing.T) {
	w, buf := newTestWriter(Config{DecimalMode: DecimalRationalMode})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(
		n3ast.IRI{URI: "http://example.org/s"},
		n3ast.IRI{URI: "http://example.org/p"},
		n3ast.NewDecimalLiteral("1.25"),
	)
	w.End()

	out := buf.String()
	assert.Contains(t, out, "125 rdiv 100")
}

func TestWriterCollectionRenderedAsList(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	w.Document("http://example.org/doc")
	w.Triple(
		n3ast.IRI{URI: "http://example.org/s"},
		n3ast.IRI{URI: "http://example.org/p"},
		n3ast.List{Elements: []n3ast.Node{n3ast.IRI{URI: "http://example.org/a"}}},
	)
	w.End()

	out := buf.String()
	assert.Contains(t, out, "['<http://example.org/a>']")
}

func TestWriterMultipleTriplesScountMatchesSinkCalls(t *testing.T) {
	w, buf := newTestWriter(Config{})
	w.Start()
	w.Document("http://example.org/doc")
	for i := 0; i < 3; i++ {
		w.Triple(n3ast.IRI{URI: "http://example.org/s"}, n3ast.IRI{URI: "http://example.org/p"}, n3ast.IRI{URI: "http://example.org/o"})
	}
	w.End()

	out := buf.String()
	assert.Contains(t, out, "scount(3).\n")
}

func TestExtractSinglePredicateOnlyForOneTripleIRIProperty(t *testing.T) {
	gt := n3ast.GraphTemplate{Triples: []n3ast.TriplePattern{
		{Subject: n3ast.IRI{URI: "http://example.org/a"}, Property: n3ast.IRI{URI: "http://example.org/p"}, Object: n3ast.IRI{URI: "http://example.org/o"}},
	}}
	pred, ok := extractSinglePredicate(gt)
	require.True(t, ok)
	assert.Equal(t, n3base.IRI("http://example.org/p"), pred)

	multi := n3ast.GraphTemplate{Triples: []n3ast.TriplePattern{
		{Subject: n3ast.IRI{URI: "http://example.org/a"}, Property: n3ast.IRI{URI: "http://example.org/p"}, Object: n3ast.IRI{URI: "http://example.org/o"}},
		{Subject: n3ast.IRI{URI: "http://example.org/a"}, Property: n3ast.IRI{URI: "http://example.org/p2"}, Object: n3ast.IRI{URI: "http://example.org/o2"}},
	}}
	_, ok = extractSinglePredicate(multi)
	assert.False(t, ok)
}

func TestItoa(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "42", itoa(42))
	assert.Equal(t, "-7", itoa(-7))
}
