package jsonld

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/yut148/json-ld/rdf"
)

func readAll(t *testing.T, input string, opts ...rdf.Option) []rdf.Quad {
	t.Helper()
	r, err := NewReader(strings.NewReader(input), rdf.NewOptions(opts...))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer r.Close()
	var quads []rdf.Quad
	for {
		q, err := r.Next()
		if err == io.EOF {
			return quads
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		quads = append(quads, q)
	}
}

func containsQuad(quads []rdf.Quad, want string) bool {
	for _, q := range quads {
		if q.String() == want {
			return true
		}
	}
	return false
}

func TestReaderSimpleNode(t *testing.T) {
	quads := readAll(t, `{"@id": "http://example.org/s", "http://example.org/p": "o"}`)
	if len(quads) != 1 {
		t.Fatalf("len(quads) = %d, want 1", len(quads))
	}
	if got, want := quads[0].String(), `<http://example.org/s> <http://example.org/p> "o" .`; got != want {
		t.Errorf("quad = %s, want %s", got, want)
	}
}

func TestReaderContextAndType(t *testing.T) {
	input := `{
		"@context": {"ex": "http://example.org/"},
		"@id": "ex:alice",
		"@type": "ex:Person",
		"ex:name": {"@value": "Alice", "@language": "en"}
	}`
	quads := readAll(t, input)
	if len(quads) != 2 {
		t.Fatalf("len(quads) = %d, want 2: %v", len(quads), quads)
	}
	for _, want := range []string{
		`<http://example.org/alice> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/Person> .`,
		`<http://example.org/alice> <http://example.org/name> "Alice"@en .`,
	} {
		if !containsQuad(quads, want) {
			t.Errorf("missing quad %s in %v", want, quads)
		}
	}
}

func TestReaderNamedGraph(t *testing.T) {
	input := `{
		"@id": "http://example.org/g",
		"@graph": [{"@id": "http://example.org/s", "http://example.org/p": {"@id": "http://example.org/o"}}]
	}`
	quads := readAll(t, input)
	if len(quads) != 1 {
		t.Fatalf("len(quads) = %d, want 1: %v", len(quads), quads)
	}
	if g, ok := quads[0].G.(rdf.IRI); !ok || g.Value != "http://example.org/g" {
		t.Errorf("graph = %v, want <http://example.org/g>", quads[0].G)
	}
}

func TestReaderBlankNodes(t *testing.T) {
	quads := readAll(t, `{"http://example.org/p": {"http://example.org/q": "v"}}`)
	if len(quads) != 2 {
		t.Fatalf("len(quads) = %d, want 2", len(quads))
	}
	for _, q := range quads {
		if _, ok := q.S.(rdf.BlankNode); !ok {
			t.Errorf("subject %v is not a blank node", q.S)
		}
	}
}

func TestReaderBaseIRI(t *testing.T) {
	quads := readAll(t, `{"@id": "s", "http://example.org/p": "o"}`, rdf.OptBaseIRI("http://example.org/base/"))
	if len(quads) != 1 {
		t.Fatalf("len(quads) = %d, want 1", len(quads))
	}
	if s := quads[0].S.(rdf.IRI).Value; s != "http://example.org/base/s" {
		t.Errorf("subject = %s, want resolved against base", s)
	}
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []rdf.Option
		code  rdf.ErrorCode
	}{
		{"malformed json", `{"@id": `, nil, rdf.ErrCodeParseError},
		{"invalid context", `{"@context": 5, "@id": "http://example.org/s"}`, nil, rdf.ErrCodeParseError},
		{"input too large", `{"@id": "http://example.org/s"}`, []rdf.Option{rdf.OptMaxInputBytes(5)}, rdf.ErrCodeInputTooLarge},
		{"too many quads", `{"@id": "http://example.org/s", "http://example.org/p": ["a", "b"]}`,
			[]rdf.Option{rdf.OptMaxQuads(1)}, rdf.ErrCodeQuadLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input), rdf.NewOptions(tt.opts...))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := rdf.Code(err); got != tt.code {
				t.Errorf("Code() = %v, want %v (%v)", got, tt.code, err)
			}
		})
	}
}

func TestReaderSyntaxErrorOffset(t *testing.T) {
	_, err := NewReader(strings.NewReader(`{"@id": x}`), rdf.NewOptions())
	var parseErr *rdf.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error %v is not a ParseError", err)
	}
	if parseErr.Format != Symbol || parseErr.Offset <= 0 {
		t.Errorf("ParseError = %+v", parseErr)
	}
	if parseErr.Statement != `{"@id": x}` {
		t.Errorf("Statement = %q, want the whole document", parseErr.Statement)
	}
	if !strings.Contains(err.Error(), `{"@id": x}`) {
		t.Errorf("Error() = %q, want the excerpt", err.Error())
	}
}

func TestReaderSyntaxErrorExcerpt(t *testing.T) {
	doc := "{\n  \"name\": \"" + strings.Repeat("y", 100) + "\",\n  \"@id\": x\n}"
	_, err := NewReader(strings.NewReader(doc), rdf.NewOptions())
	var parseErr *rdf.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error %v is not a ParseError", err)
	}
	if !strings.Contains(parseErr.Statement, `"@id": x`) {
		t.Errorf("Statement = %q, want the text around the error", parseErr.Statement)
	}
	if strings.Contains(parseErr.Statement, "name") || strings.Contains(parseErr.Statement, "\n") {
		t.Errorf("Statement = %q, want a single line near the offset", parseErr.Statement)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		offset int64
		want   string
	}{
		{"unknown offset", "abc", -1, ""},
		{"past end", "abc", 4, ""},
		{"short input", "a\n b", 1, "a b"},
		{"window", strings.Repeat("a", 50) + strings.Repeat("b", 50), 50, strings.Repeat("a", 40) + strings.Repeat("b", 40)},
		{"invalid utf-8", "a\xffb", 1, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerpt([]byte(tt.data), tt.offset); got != tt.want {
				t.Errorf("excerpt(%q, %d) = %q, want %q", tt.data, tt.offset, got, tt.want)
			}
		})
	}
}

func TestReaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReader(strings.NewReader(`{}`), rdf.NewOptions(rdf.OptContext(ctx)))
	if rdf.Code(err) != rdf.ErrCodeContextCanceled {
		t.Errorf("Code() = %v, want %v", rdf.Code(err), rdf.ErrCodeContextCanceled)
	}
}

func TestReaderClose(t *testing.T) {
	r, err := NewReader(strings.NewReader(`{"@id": "http://example.org/s", "http://example.org/p": "o"}`), rdf.NewOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := r.Next(); !errors.Is(err, rdf.ErrClosed) {
		t.Errorf("Next() after Close error = %v, want ErrClosed", err)
	}
}

type staticLoader map[string]interface{}

func (l staticLoader) LoadDocument(_ context.Context, iri string) (rdf.RemoteDocument, error) {
	doc, ok := l[iri]
	if !ok {
		return rdf.RemoteDocument{}, errors.New("not found: " + iri)
	}
	return rdf.RemoteDocument{DocumentURL: iri, Document: doc}, nil
}

func TestReaderDocumentLoader(t *testing.T) {
	loader := staticLoader{
		"http://example.org/context.jsonld": map[string]interface{}{
			"@context": map[string]interface{}{"name": "http://xmlns.com/foaf/0.1/name"},
		},
	}
	input := `{"@context": "http://example.org/context.jsonld", "@id": "http://example.org/bob", "name": "Bob"}`
	quads := readAll(t, input, rdf.OptDocumentLoader(loader))
	want := `<http://example.org/bob> <http://xmlns.com/foaf/0.1/name> "Bob" .`
	if len(quads) != 1 || quads[0].String() != want {
		t.Errorf("quads = %v, want [%s]", quads, want)
	}
}

func TestRegistryParseDetectsJSONLD(t *testing.T) {
	reg := rdf.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatal(err)
	}
	var quads []rdf.Quad
	input := "\n  {\n  \"@id\": \"http://example.org/s\", \"http://example.org/p\": \"o\"}"
	err := reg.Parse(context.Background(), strings.NewReader(input), rdf.Query{}, func(q rdf.Quad) error {
		quads = append(quads, q)
		return nil
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(quads) != 1 {
		t.Errorf("len(quads) = %d, want 1", len(quads))
	}
}
