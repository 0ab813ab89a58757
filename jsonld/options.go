package jsonld

import (
	"context"

	ld "github.com/piprate/json-gold/ld"

	"github.com/yut148/json-ld/rdf"
)

// documentLoader adapts an rdf.DocumentLoader to json-gold.
type documentLoader struct {
	ctx   context.Context
	inner rdf.DocumentLoader
}

func (l documentLoader) LoadDocument(iri string) (*ld.RemoteDocument, error) {
	remote, err := l.inner.LoadDocument(l.ctx, iri)
	if err != nil {
		return nil, err
	}
	return &ld.RemoteDocument{
		DocumentURL: remote.DocumentURL,
		Document:    remote.Document,
		ContextURL:  remote.ContextURL,
	}, nil
}

func newGoldOptions(opts rdf.Options) *ld.JsonLdOptions {
	goldOpts := ld.NewJsonLdOptions(opts.BaseIRI)
	if opts.DocumentLoader != nil {
		ctx := opts.Context
		if ctx == nil {
			ctx = context.Background()
		}
		goldOpts.DocumentLoader = documentLoader{ctx: ctx, inner: opts.DocumentLoader}
	} else {
		// Remote contexts are fetched at most once per document.
		goldOpts.DocumentLoader = ld.NewCachingDocumentLoader(ld.NewDefaultDocumentLoader(nil))
	}
	return goldOpts
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
