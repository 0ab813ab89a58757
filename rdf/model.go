package rdf

import (
	"strconv"
	"strings"
)

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI in angle brackets.
func (i IRI) String() string { return "<" + i.Value + ">" }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier, without the "_:" prefix.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Well-known datatype IRIs.
const (
	XSDString     = "http://www.w3.org/2001/XMLSchema#string"
	RDFLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns the literal in N-Quads form. Plain xsd:string datatypes are
// omitted.
func (l Literal) String() string {
	quoted := strconv.Quote(l.Lexical)
	if l.Lang != "" {
		return quoted + "@" + l.Lang
	}
	if l.Datatype.Value != "" && l.Datatype.Value != XSDString {
		return quoted + "^^" + l.Datatype.String()
	}
	return quoted
}

// Quad is an RDF quad (triple + optional graph name).
type Quad struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
	// G is the graph name, or nil for the default graph.
	G Term
}

// IsZero reports whether the quad has no subject/predicate/object.
func (q Quad) IsZero() bool {
	return q.S == nil && q.P.Value == "" && q.O == nil && q.G == nil
}

// InDefaultGraph reports whether the quad is in the default graph (no named graph).
func (q Quad) InDefaultGraph() bool {
	return q.G == nil
}

// String returns the quad as an N-Quads line without the trailing newline.
func (q Quad) String() string {
	if q.IsZero() {
		return ""
	}
	parts := []string{termString(q.S), q.P.String(), termString(q.O)}
	if q.G != nil {
		parts = append(parts, q.G.String())
	}
	return strings.Join(parts, " ") + " ."
}

func termString(t Term) string {
	if t == nil {
		return ""
	}
	return t.String()
}
