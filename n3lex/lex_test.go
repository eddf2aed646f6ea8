package n3lex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	lx := New(strings.NewReader(input))
	var toks []Token
	for {
		tok := lx.Next()
		if tok.Type == EOF {
			break
		}
		assert.NotEqual(t, Error, tok.Type, "unexpected lex error: %s", tok.Text)
		toks = append(toks, tok)
	}
	return toks
}

func TestLexPunctuation(t *testing.T) {
	toks := tokenize(t, ". ; , { } ( ) [ ] ! ^ ^^ = => <=")
	types := make([]Type, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []Type{
		Dot, Semicolon, Comma, LBrace, RBrace, LParen, RParen,
		LBracket, RBracket, Bang, Caret, CaretCaret, Equal,
		Implies, ReverseImplies,
	}, types)
}

func TestLexIRIRef(t *testing.T) {
	toks := tokenize(t, "<http://example.org/a>")
	assert.Len(t, toks, 1)
	assert.Equal(t, IRIRef, toks[0].Type)
	assert.Equal(t, "http://example.org/a", toks[0].Text)
}

func TestLexReverseImpliesVsIRIStartingWithEquals(t *testing.T) {
	toks := tokenize(t, "<= ")
	assert.Equal(t, []Type{ReverseImplies}, []Type{toks[0].Type})

	toks2 := tokenize(t, "<=http://example.org/a>")
	assert.Equal(t, IRIRef, toks2[0].Type)
	assert.Equal(t, "=http://example.org/a", toks2[0].Text)
}

func TestLexPNameNSIncludesColon(t *testing.T) {
	toks := tokenize(t, "ex:")
	assert.Len(t, toks, 1)
	assert.Equal(t, PNameNS, toks[0].Type)
	assert.Equal(t, "ex:", toks[0].Text)
}

func TestLexPNameLN(t *testing.T) {
	toks := tokenize(t, "ex:foo")
	assert.Len(t, toks, 1)
	assert.Equal(t, PNameLN, toks[0].Type)
	assert.Equal(t, "ex:foo", toks[0].Text)
}

func TestLexAtPrefixVsLangTag(t *testing.T) {
	toks := tokenize(t, "@prefix @base @en @en-US")
	assert.Equal(t, []Type{Prefix, Base, LangTag, LangTag}, []Type{
		toks[0].Type, toks[1].Type, toks[2].Type, toks[3].Type,
	})
	assert.Equal(t, "en-US", toks[3].Text)
}

func TestLexNumbers(t *testing.T) {
	toks := tokenize(t, "42 -3.14 1.0E10 +5")
	assert.Equal(t, []Type{Integer, Decimal, Double, Integer}, []Type{
		toks[0].Type, toks[1].Type, toks[2].Type, toks[3].Type,
	})
	assert.Equal(t, "42", toks[0].Text)
	assert.Equal(t, "-3.14", toks[1].Text)
	assert.Equal(t, "1.0E10", toks[2].Text)
	assert.Equal(t, "+5", toks[3].Text)
}

func TestLexNumberFollowedByDotStatementEnd(t *testing.T) {
	toks := tokenize(t, "42.")
	assert.Len(t, toks, 2)
	assert.Equal(t, Integer, toks[0].Type)
	assert.Equal(t, "42", toks[0].Text)
	assert.Equal(t, Dot, toks[1].Type)
}

func TestLexVarAndBlankNodeLabel(t *testing.T) {
	toks := tokenize(t, "?x _:b1")
	assert.Equal(t, Var, toks[0].Type)
	assert.Equal(t, "x", toks[0].Text)
	assert.Equal(t, BlankNodeLabel, toks[1].Type)
	assert.Equal(t, "b1", toks[1].Text)
}

func TestLexStringQuoteKinds(t *testing.T) {
	toks := tokenize(t, `"double" 'single' """long double""" '''long single'''`)
	assert.Equal(t, []Type{
		StringLiteralQuote, StringLiteralSingleQuote,
		StringLiteralLongQuote, StringLiteralLongSingleQuote,
	}, []Type{toks[0].Type, toks[1].Type, toks[2].Type, toks[3].Type})
}

func TestLexStringEscapePreservedRaw(t *testing.T) {
	toks := tokenize(t, `"a\nb"`)
	assert.Equal(t, `a\nb`, toks[0].Text)
}

func TestLexKeywordsAndBooleans(t *testing.T) {
	toks := tokenize(t, "a true false PREFIX BASE")
	assert.Equal(t, []Type{RDFTypeKeyword, True, False, SparqlPrefix, SparqlBase}, []Type{
		toks[0].Type, toks[1].Type, toks[2].Type, toks[3].Type, toks[4].Type,
	})
}

func TestLexCommentsSkipped(t *testing.T) {
	toks := tokenize(t, "# a comment\n<http://example.org/a>")
	assert.Len(t, toks, 1)
	assert.Equal(t, IRIRef, toks[0].Type)
}

func TestLexLineNumbersTrackNewlines(t *testing.T) {
	toks := tokenize(t, "a\na\na")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}

func TestLexEOFIsSticky(t *testing.T) {
	lx := New(strings.NewReader(""))
	assert.Equal(t, EOF, lx.Next().Type)
	assert.Equal(t, EOF, lx.Next().Type)
}

func TestLexUnexpectedCharacterIsError(t *testing.T) {
	lx := New(strings.NewReader("$"))
	tok := lx.Next()
	assert.Equal(t, Error, tok.Type)
}

func TestTypeStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "IRIREF", IRIRef.String())
	assert.Contains(t, Type(9999).String(), "Type(")
}
