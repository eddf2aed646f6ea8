package n3ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmels/carl/n3base"
)

func TestNewIntegerLiteralDatatype(t *testing.T) {
	lit := NewIntegerLiteral("42")
	assert.Equal(t, n3base.XSDInteger, lit.Datatype)
	assert.Equal(t, LitInteger, lit.LitKind)
}

func TestNewBooleanLiteralCanonicalLexical(t *testing.T) {
	assert.Equal(t, "true", NewBooleanLiteral(true).Lexical)
	assert.Equal(t, "false", NewBooleanLiteral(false).Lexical)
}

func TestBooleanValueRoundTrip(t *testing.T) {
	assert.True(t, NewBooleanLiteral(true).BooleanValue())
	assert.False(t, NewBooleanLiteral(false).BooleanValue())
}

func TestNewStringLiteralAlwaysXSDString(t *testing.T) {
	plain := NewStringLiteral("hello", "")
	tagged := NewStringLiteral("hello", "en")
	assert.Equal(t, n3base.XSDString, plain.Datatype)
	assert.Equal(t, n3base.XSDString, tagged.Datatype)
	assert.Equal(t, "en", tagged.Lang)
	assert.Empty(t, plain.Lang)
}

func TestNewOtherLiteralArbitraryDatatype(t *testing.T) {
	dt := n3base.IRI("http://example.org/custom")
	lit := NewOtherLiteral("whatever", dt)
	assert.Equal(t, LitOther, lit.LitKind)
	assert.Equal(t, dt, lit.Datatype)
}
