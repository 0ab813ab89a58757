package jsonld

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	ld "github.com/piprate/json-gold/ld"

	"github.com/yut148/json-ld/rdf"
)

const defaultGraph = "@default"

type reader struct {
	quads []rdf.Quad
	index int
	err   error
}

// NewReader decodes a JSON-LD document from r and returns its quads, default
// graph first and named graphs in lexical order.
func NewReader(r io.Reader, opts rdf.Options) (rdf.Reader, error) {
	if err := checkContext(opts.Context); err != nil {
		return nil, err
	}
	data, err := readInput(r, opts.MaxInputBytes)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &rdf.ParseError{
				Format:    Symbol,
				Statement: excerpt(data, syntaxErr.Offset),
				Offset:    syntaxErr.Offset,
				Err:       err,
			}
		}
		return nil, rdf.WrapParseError(Symbol, -1, err)
	}
	if err := checkContext(opts.Context); err != nil {
		return nil, err
	}

	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(doc, newGoldOptions(opts))
	if err != nil {
		return nil, rdf.WrapParseError(Symbol, -1, err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}

	quads, err := datasetQuads(dataset, opts.MaxQuads)
	if err != nil {
		return nil, rdf.WrapParseError(Symbol, -1, err)
	}
	return &reader{quads: quads}, nil
}

func (d *reader) Next() (rdf.Quad, error) {
	if d.err != nil {
		return rdf.Quad{}, d.err
	}
	if d.index >= len(d.quads) {
		return rdf.Quad{}, io.EOF
	}
	q := d.quads[d.index]
	d.index++
	return q, nil
}

func (d *reader) Close() error {
	d.err = rdf.ErrClosed
	d.quads = nil
	return nil
}

func readInput(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("jsonld: %w (%d bytes)", rdf.ErrInputTooLarge, limit)
	}
	return data, nil
}

// excerptRadius is how many bytes either side of an error offset are quoted.
const excerptRadius = 40

// excerpt returns the input around offset on a single line.
func excerpt(data []byte, offset int64) string {
	if offset < 0 || offset > int64(len(data)) {
		return ""
	}
	start := offset - excerptRadius
	if start < 0 {
		start = 0
	}
	end := offset + excerptRadius
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	window := strings.ToValidUTF8(string(data[start:end]), "")
	return strings.Join(strings.Fields(window), " ")
}

func datasetQuads(dataset *ld.RDFDataset, limit int64) ([]rdf.Quad, error) {
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == defaultGraph || names[j] == defaultGraph {
			return names[i] == defaultGraph && names[j] != defaultGraph
		}
		return names[i] < names[j]
	})

	var quads []rdf.Quad
	for _, name := range names {
		graph := graphTerm(name)
		for _, q := range dataset.Graphs[name] {
			if q == nil {
				continue
			}
			if limit > 0 && int64(len(quads)) >= limit {
				return nil, rdf.ErrQuadLimitExceeded
			}
			predicate, ok := q.Predicate.(ld.IRI)
			if !ok {
				// Generalized RDF is not representable.
				continue
			}
			quads = append(quads, rdf.Quad{
				S: fromGoldNode(q.Subject),
				P: rdf.IRI{Value: predicate.Value},
				O: fromGoldNode(q.Object),
				G: graph,
			})
		}
	}
	return quads, nil
}

func graphTerm(name string) rdf.Term {
	switch {
	case name == "" || name == defaultGraph:
		return nil
	case strings.HasPrefix(name, "_:"):
		return rdf.BlankNode{ID: strings.TrimPrefix(name, "_:")}
	default:
		return rdf.IRI{Value: name}
	}
}

func fromGoldNode(node ld.Node) rdf.Term {
	switch v := node.(type) {
	case ld.IRI:
		return rdf.IRI{Value: v.Value}
	case ld.BlankNode:
		return rdf.BlankNode{ID: strings.TrimPrefix(v.Attribute, "_:")}
	case ld.Literal:
		return rdf.Literal{Lexical: v.Value, Datatype: rdf.IRI{Value: v.Datatype}, Lang: v.Language}
	default:
		return nil
	}
}
