package n3ast

import "github.com/gmels/carl/n3base"

// Constructors below are the only sanctioned way to build a Literal; they
// keep the invariant from spec.md §3: a literal's datatype IRI is one of
// the recognized xsd: URIs iff its runtime variant is the corresponding
// specialized literal, and a String literal with a non-empty language tag
// always carries xsd:string as its datatype.

// NewIntegerLiteral builds a Literal with the xsd:integer datatype.
func NewIntegerLiteral(lexical string) Literal {
	return Literal{LitKind: LitInteger, Lexical: lexical, Datatype: n3base.XSDInteger}
}

// NewDecimalLiteral builds a Literal with the xsd:decimal datatype.
func NewDecimalLiteral(lexical string) Literal {
	return Literal{LitKind: LitDecimal, Lexical: lexical, Datatype: n3base.XSDDecimal}
}

// NewDoubleLiteral builds a Literal with the xsd:double datatype.
func NewDoubleLiteral(lexical string) Literal {
	return Literal{LitKind: LitDouble, Lexical: lexical, Datatype: n3base.XSDDouble}
}

// NewBooleanLiteral builds a Literal with the xsd:boolean datatype. The
// lexical form is normalized to "true"/"false" (spec.md §4.4: Boolean is
// canonical, never lexeme-preserving "1"/"0").
func NewBooleanLiteral(value bool) Literal {
	lex := "false"
	if value {
		lex = "true"
	}
	return Literal{LitKind: LitBoolean, Lexical: lex, Datatype: n3base.XSDBoolean}
}

// NewStringLiteral builds a plain or language-tagged string literal. Per
// spec.md §3, the datatype is always xsd:string regardless of whether a
// language tag is present.
func NewStringLiteral(lexical, lang string) Literal {
	return Literal{LitKind: LitString, Lexical: lexical, Lang: lang, Datatype: n3base.XSDString}
}

// NewOtherLiteral builds a literal with an arbitrary, non-specialized
// datatype IRI. No lexical validation is performed, per spec.md §4.3.
func NewOtherLiteral(lexical string, datatype n3base.IRI) Literal {
	return Literal{LitKind: LitOther, Lexical: lexical, Datatype: datatype}
}

// BooleanValue reports the truth value of a LitBoolean literal. Per
// spec.md §4.3, "1"/"0" spellings of xsd:boolean are accepted on input;
// the parser maps them to a bool before calling NewBooleanLiteral, so the
// Lexical field of a constructed LitBoolean is always "true" or "false".
func (l Literal) BooleanValue() bool {
	return l.Lexical == "true"
}
