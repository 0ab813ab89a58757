package rdf

import "testing"

func TestTermStrings(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
		kind TermKind
	}{
		{"iri", IRI{Value: "http://example.org/s"}, "<http://example.org/s>", TermIRI},
		{"blank", BlankNode{ID: "b0"}, "_:b0", TermBlankNode},
		{"plain literal", Literal{Lexical: "hello"}, `"hello"`, TermLiteral},
		{"xsd string literal", Literal{Lexical: "hello", Datatype: IRI{Value: XSDString}}, `"hello"`, TermLiteral},
		{"lang literal", Literal{Lexical: "bonjour", Lang: "fr"}, `"bonjour"@fr`, TermLiteral},
		{"typed literal", Literal{Lexical: "1", Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}},
			`"1"^^<http://www.w3.org/2001/XMLSchema#integer>`, TermLiteral},
		{"escaped literal", Literal{Lexical: "a \"b\"\n"}, `"a \"b\"\n"`, TermLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.term.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
			if got := tt.term.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestQuadString(t *testing.T) {
	q := Quad{S: IRI{Value: "urn:s"}, P: IRI{Value: "urn:p"}, O: Literal{Lexical: "o"}}
	if got, want := q.String(), `<urn:s> <urn:p> "o" .`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if !q.InDefaultGraph() {
		t.Errorf("InDefaultGraph() = false")
	}

	q.G = BlankNode{ID: "g"}
	if got, want := q.String(), `<urn:s> <urn:p> "o" _:g .`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if (Quad{}).String() != "" || !(Quad{}).IsZero() {
		t.Errorf("zero quad is not reported as zero")
	}
}
