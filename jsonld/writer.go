package jsonld

import (
	"encoding/json"
	"fmt"
	"io"

	ld "github.com/piprate/json-gold/ld"

	"github.com/yut148/json-ld/rdf"
)

type writer struct {
	w       io.Writer
	opts    rdf.Options
	dataset *ld.RDFDataset
	closed  bool
}

// NewWriter returns a writer that buffers quads and writes them as a JSON-LD
// document on Close. When opts.Prefixes is set the document is compacted
// with a context made of those prefixes.
func NewWriter(w io.Writer, opts rdf.Options) (rdf.Writer, error) {
	return &writer{w: w, opts: opts, dataset: ld.NewRDFDataset()}, nil
}

func (w *writer) Write(q rdf.Quad) error {
	if w.closed {
		return rdf.ErrClosed
	}
	if err := checkContext(w.opts.Context); err != nil {
		return err
	}
	if q.S == nil || q.O == nil || q.P.Value == "" {
		return fmt.Errorf("jsonld: incomplete quad %v", q)
	}
	name := graphName(q.G)
	w.dataset.Graphs[name] = append(w.dataset.Graphs[name], &ld.Quad{
		Subject:   toGoldNode(q.S),
		Predicate: ld.NewIRI(q.P.Value),
		Object:    toGoldNode(q.O),
		Graph:     toGoldNode(q.G),
	})
	return nil
}

// Flush is a no-op; the document is only complete once every quad is known.
func (w *writer) Flush() error {
	if w.closed {
		return rdf.ErrClosed
	}
	return nil
}

func (w *writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := checkContext(w.opts.Context); err != nil {
		return err
	}

	serialized, err := (&ld.NQuadRDFSerializer{}).Serialize(w.dataset)
	if err != nil {
		return err
	}
	nquads, ok := serialized.(string)
	if !ok {
		return fmt.Errorf("jsonld: unexpected N-Quads result %T", serialized)
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := newGoldOptions(w.opts)
	goldOpts.Format = "application/n-quads"
	var output interface{}
	output, err = proc.FromRDF(nquads, goldOpts)
	if err != nil {
		return err
	}

	if len(w.opts.Prefixes) > 0 {
		terms := make(map[string]interface{}, len(w.opts.Prefixes))
		for prefix, iri := range w.opts.Prefixes {
			terms[prefix] = iri
		}
		compacted, err := proc.Compact(output, map[string]interface{}{"@context": terms}, newGoldOptions(w.opts))
		if err != nil {
			return err
		}
		output = compacted
	}

	enc := json.NewEncoder(w.w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func graphName(g rdf.Term) string {
	switch v := g.(type) {
	case rdf.IRI:
		return v.Value
	case rdf.BlankNode:
		return "_:" + v.ID
	default:
		return defaultGraph
	}
}

func toGoldNode(t rdf.Term) ld.Node {
	switch v := t.(type) {
	case rdf.IRI:
		return ld.NewIRI(v.Value)
	case rdf.BlankNode:
		return ld.NewBlankNode("_:" + v.ID)
	case rdf.Literal:
		datatype := v.Datatype.Value
		if v.Lang != "" {
			datatype = rdf.RDFLangString
		} else if datatype == "" {
			datatype = rdf.XSDString
		}
		return ld.NewLiteral(v.Lexical, datatype, v.Lang)
	default:
		return nil
	}
}
