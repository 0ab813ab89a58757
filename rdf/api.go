package rdf

import (
	"context"
	"fmt"
	"io"
)

// Reader streams RDF statements from an input.
type Reader interface {
	Next() (Quad, error)
	Close() error
}

// Writer streams RDF statements to an output.
type Writer interface {
	Write(Quad) error
	Flush() error
	Close() error
}

// Handler processes statements in push mode.
type Handler func(Quad) error

// DocumentLoader resolves remote contexts and documents for formats that
// reference them.
type DocumentLoader interface {
	LoadDocument(ctx context.Context, iri string) (RemoteDocument, error)
}

// RemoteDocument is a fetched remote document.
type RemoteDocument struct {
	DocumentURL string
	Document    interface{}
	ContextURL  string
}

// Option configures reader/writer behavior.
type Option func(*Options)

// Options configures readers and writers built through a Registry.
type Options struct {
	// Context for cancellation and timeouts.
	Context context.Context

	// BaseIRI resolves relative IRIs.
	BaseIRI string

	// Limits for untrusted input. Zero means unlimited.
	MaxInputBytes int64
	MaxQuads      int64

	// Prefixes are used by writers that can abbreviate IRIs.
	Prefixes map[string]string

	// DocumentLoader fetches remote documents. Nil selects the format's default.
	DocumentLoader DocumentLoader
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	options := Options{Context: context.Background()}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	return options
}

// OptContext sets the context for cancellation and timeouts.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptBaseIRI sets the base IRI.
func OptBaseIRI(base string) Option {
	return func(opts *Options) {
		opts.BaseIRI = base
	}
}

// OptMaxInputBytes limits the number of input bytes a reader consumes.
func OptMaxInputBytes(maxBytes int64) Option {
	return func(opts *Options) {
		opts.MaxInputBytes = maxBytes
	}
}

// OptMaxQuads limits the number of quads a reader yields.
func OptMaxQuads(maxQuads int64) Option {
	return func(opts *Options) {
		opts.MaxQuads = maxQuads
	}
}

// OptPrefixes sets the prefix map used by writers.
func OptPrefixes(prefixes map[string]string) Option {
	return func(opts *Options) {
		opts.Prefixes = prefixes
	}
}

// OptDocumentLoader sets the remote document loader.
func OptDocumentLoader(loader DocumentLoader) Option {
	return func(opts *Options) {
		opts.DocumentLoader = loader
	}
}

// NewReader resolves the format described by q and constructs its reader.
// When the static fields of q match nothing and q carries no sample, the
// leading bytes of r are sniffed.
func (r *Registry) NewReader(in io.Reader, q Query, opts ...Option) (Reader, *Entry, error) {
	entry, err := r.Resolve(q)
	if err != nil && q.Sample == nil {
		entry, in, err = r.Detect(in)
	}
	if err != nil {
		return nil, nil, err
	}
	reader, err := entry.Binding.NewReader(in, NewOptions(opts...))
	if err != nil {
		return nil, entry, fmt.Errorf("rdf: %s reader: %w", entry.Symbol, err)
	}
	return reader, entry, nil
}

// NewWriter resolves the format described by q and constructs its writer.
// Writers are never chosen by sniffing.
func (r *Registry) NewWriter(out io.Writer, q Query, opts ...Option) (Writer, *Entry, error) {
	q.Sample = nil
	entry, err := r.Resolve(q)
	if err != nil {
		return nil, nil, err
	}
	writer, err := entry.Binding.NewWriter(out, NewOptions(opts...))
	if err != nil {
		return nil, entry, fmt.Errorf("rdf: %s writer: %w", entry.Symbol, err)
	}
	return writer, entry, nil
}

// Parse reads statements from in and streams them to handler.
func (r *Registry) Parse(ctx context.Context, in io.Reader, q Query, handler Handler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts = append(opts, OptContext(ctx))
	reader, _, err := r.NewReader(in, q, opts...)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stmt, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler(stmt); err != nil {
			return err
		}
	}
}

// NewReader constructs a reader through DefaultRegistry.
func NewReader(in io.Reader, q Query, opts ...Option) (Reader, error) {
	reader, _, err := DefaultRegistry.NewReader(in, q, opts...)
	return reader, err
}

// NewWriter constructs a writer through DefaultRegistry.
func NewWriter(out io.Writer, q Query, opts ...Option) (Writer, error) {
	writer, _, err := DefaultRegistry.NewWriter(out, q, opts...)
	return writer, err
}

// Parse streams statements through DefaultRegistry.
func Parse(ctx context.Context, in io.Reader, q Query, handler Handler, opts ...Option) error {
	return DefaultRegistry.Parse(ctx, in, q, handler, opts...)
}
