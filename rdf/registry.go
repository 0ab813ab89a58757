package rdf

import (
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
)

// SampleSize is the default number of leading bytes handed to sniffers.
const SampleSize = 1024

// DefaultRegistry is the process-wide registry format packages publish
// themselves into from init.
var DefaultRegistry = NewRegistry()

// Entry is the result of a lookup.
type Entry struct {
	Symbol    string
	MediaType string
	Encoding  string
	// Descriptor is nil for aliases.
	Descriptor *Descriptor
	Binding    *Binding
}

// IsAlias reports whether the entry was registered with RegisterAlias.
func (e *Entry) IsAlias() bool { return e.Descriptor == nil }

// Query describes what a caller knows about an input. Zero fields are ignored.
type Query struct {
	Symbol    string
	MediaType string
	FileName  string
	Extension string
	Sample    []byte
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report registrations.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSampleSize sets how many bytes Detect reads from a stream.
func WithSampleSize(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.sampleSize = n
		}
	}
}

// Registry maps symbols, media types, extensions and content samples to
// format bindings. Lookups are lock-free and always observe a fully
// published index; registrations are serialized.
type Registry struct {
	mu         sync.Mutex
	current    atomic.Pointer[index]
	logger     *slog.Logger
	sampleSize int
}

// index is never mutated once published.
type index struct {
	formats     []*Entry // canonical, in sniffing order
	aliases     []*Entry
	bySymbol    map[string]*Entry
	byMediaType map[string]*Entry
	byExtension map[string]*Entry
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		sampleSize: SampleSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(&index{
		bySymbol:    map[string]*Entry{},
		byMediaType: map[string]*Entry{},
		byExtension: map[string]*Entry{},
	})
	return r
}

// SampleSize returns the number of bytes Detect reads from a stream.
func (r *Registry) SampleSize() int { return r.sampleSize }

// Register publishes a format under its canonical media type, alias media
// types, extensions and symbol. Registering a media type again replaces the
// previous descriptor and all of its keys; keys claimed by another format
// move to the new one.
func (r *Registry) Register(d Descriptor, b *Binding) error {
	d = d.normalized()
	if err := d.validate(); err != nil {
		return err
	}
	if err := validateBinding(b, d.MediaType); err != nil {
		return err
	}

	entry := &Entry{
		Symbol:     d.Symbol,
		MediaType:  d.MediaType,
		Encoding:   d.Encoding,
		Descriptor: &d,
		Binding:    b,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current.Load().clone()
	replaced := false
	for i, existing := range next.formats {
		if existing.MediaType == d.MediaType {
			next.drop(existing)
			next.formats[i] = entry
			next.rebindAliases(existing.Binding, b)
			replaced = true
			break
		}
	}
	if !replaced {
		next.formats = append(next.formats, entry)
	}

	r.claim(next.byMediaType, d.MediaType, entry)
	for _, mt := range d.AliasMediaTypes {
		r.claim(next.byMediaType, mt, entry)
	}
	for _, ext := range d.Extensions {
		r.claim(next.byExtension, ext, entry)
	}
	if d.Symbol != "" {
		r.claim(next.bySymbol, d.Symbol, entry)
	}

	r.current.Store(next)
	r.logger.Debug("registered format",
		"symbol", d.Symbol,
		"media_type", d.MediaType,
		"extensions", d.Extensions,
		"replaced", replaced,
	)
	return nil
}

// MustRegister is like Register but panics on an invalid descriptor. It is
// meant for package init functions, where a bad descriptor is a programming
// error.
func (r *Registry) MustRegister(d Descriptor, b *Binding) {
	if err := r.Register(d, b); err != nil {
		panic(err)
	}
}

// RegisterAlias publishes an alias. Aliases resolve by symbol and media type
// only.
func (r *Registry) RegisterAlias(a Alias) error {
	a = a.normalized()
	if err := a.validate(); err != nil {
		return err
	}

	entry := &Entry{
		Symbol:    a.Symbol,
		MediaType: a.MediaType,
		Encoding:  a.Encoding,
		Binding:   a.Binding,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current.Load().clone()
	for i, existing := range next.aliases {
		if existing.Symbol == a.Symbol && existing.MediaType == a.MediaType {
			next.drop(existing)
			next.aliases = append(next.aliases[:i], next.aliases[i+1:]...)
			break
		}
	}
	next.aliases = append(next.aliases, entry)
	if a.Symbol != "" {
		r.claim(next.bySymbol, a.Symbol, entry)
	}
	if a.MediaType != "" {
		r.claim(next.byMediaType, a.MediaType, entry)
	}

	r.current.Store(next)
	r.logger.Debug("registered alias", "symbol", a.Symbol, "media_type", a.MediaType)
	return nil
}

// claim points key at entry, reporting when it takes the key from another format.
func (r *Registry) claim(keys map[string]*Entry, key string, entry *Entry) {
	if previous, ok := keys[key]; ok && previous.Binding != entry.Binding {
		r.logger.Warn("format key reassigned",
			"key", key,
			"from", previous.Symbol,
			"to", entry.Symbol,
		)
	}
	keys[key] = entry
}

// ForSymbol looks a format or alias up by its short symbol.
func (r *Registry) ForSymbol(symbol string) (*Entry, bool) {
	e, ok := r.current.Load().bySymbol[NormalizeSymbol(symbol)]
	return e, ok
}

// ForMediaType looks a format or alias up by media type. A full Content-Type
// header value is accepted; parameters are ignored.
func (r *Registry) ForMediaType(mediaType string) (*Entry, bool) {
	e, ok := r.current.Load().byMediaType[NormalizeMediaType(mediaType)]
	return e, ok
}

// ForExtension looks a format up by file-name extension, with or without
// the leading dot.
func (r *Registry) ForExtension(ext string) (*Entry, bool) {
	e, ok := r.current.Load().byExtension[NormalizeExtension(ext)]
	return e, ok
}

// ForFileName looks a format up by the extension of a file name or path.
func (r *Registry) ForFileName(name string) (*Entry, bool) {
	ext := filepath.Ext(filepath.Base(name))
	if ext == "" {
		return nil, false
	}
	return r.ForExtension(ext)
}

// ForSample runs the sniffers of canonical formats, in registration order,
// and returns the first that accepts sample.
func (r *Registry) ForSample(sample []byte) (*Entry, bool) {
	if len(sample) == 0 {
		return nil, false
	}
	for _, e := range r.current.Load().formats {
		if e.Descriptor.Detect(sample) {
			return e, true
		}
	}
	return nil, false
}

// Resolve consults the static metadata in q first (symbol, media type, file
// name, extension) and falls back to sniffing q.Sample.
func (r *Registry) Resolve(q Query) (*Entry, error) {
	if q.Symbol != "" {
		if e, ok := r.ForSymbol(q.Symbol); ok {
			return e, nil
		}
	}
	if q.MediaType != "" {
		if e, ok := r.ForMediaType(q.MediaType); ok {
			return e, nil
		}
	}
	if q.FileName != "" {
		if e, ok := r.ForFileName(q.FileName); ok {
			return e, nil
		}
	}
	if q.Extension != "" {
		if e, ok := r.ForExtension(q.Extension); ok {
			return e, nil
		}
	}
	if e, ok := r.ForSample(q.Sample); ok {
		return e, nil
	}
	return nil, ErrFormatNotFound
}

// Entries returns the registered formats followed by the aliases, each in
// registration order.
func (r *Registry) Entries() []Entry {
	idx := r.current.Load()
	out := make([]Entry, 0, len(idx.formats)+len(idx.aliases))
	for _, e := range idx.formats {
		out = append(out, *e)
	}
	for _, e := range idx.aliases {
		out = append(out, *e)
	}
	return out
}

// ContentTypes maps every registered media type to the symbol it resolves to.
func (r *Registry) ContentTypes() map[string]string {
	idx := r.current.Load()
	out := make(map[string]string, len(idx.byMediaType))
	for mt, e := range idx.byMediaType {
		out[mt] = e.Symbol
	}
	return out
}

// FileExtensions maps every registered extension to its format's canonical
// media type.
func (r *Registry) FileExtensions() map[string]string {
	idx := r.current.Load()
	out := make(map[string]string, len(idx.byExtension))
	for ext, e := range idx.byExtension {
		out[ext] = e.MediaType
	}
	return out
}

// Symbols returns every registered symbol, sorted.
func (r *Registry) Symbols() []string {
	idx := r.current.Load()
	out := make([]string, 0, len(idx.bySymbol))
	for s := range idx.bySymbol {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (idx *index) clone() *index {
	next := &index{
		formats:     append([]*Entry(nil), idx.formats...),
		aliases:     append([]*Entry(nil), idx.aliases...),
		bySymbol:    make(map[string]*Entry, len(idx.bySymbol)),
		byMediaType: make(map[string]*Entry, len(idx.byMediaType)),
		byExtension: make(map[string]*Entry, len(idx.byExtension)),
	}
	for k, v := range idx.bySymbol {
		next.bySymbol[k] = v
	}
	for k, v := range idx.byMediaType {
		next.byMediaType[k] = v
	}
	for k, v := range idx.byExtension {
		next.byExtension[k] = v
	}
	return next
}

// rebindAliases points every alias sharing from at to, keeping the keys each
// alias still owns.
func (idx *index) rebindAliases(from, to *Binding) {
	if from == to {
		return
	}
	for i, alias := range idx.aliases {
		if alias.Binding != from {
			continue
		}
		rebound := *alias
		rebound.Binding = to
		idx.aliases[i] = &rebound
		for _, keys := range []map[string]*Entry{idx.bySymbol, idx.byMediaType} {
			for k, v := range keys {
				if v == alias {
					keys[k] = &rebound
				}
			}
		}
	}
}

// drop removes every key that still points at e.
func (idx *index) drop(e *Entry) {
	for _, keys := range []map[string]*Entry{idx.bySymbol, idx.byMediaType, idx.byExtension} {
		for k, v := range keys {
			if v == e {
				delete(keys, k)
			}
		}
	}
}
