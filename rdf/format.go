package rdf

import (
	"fmt"
	"io"
	"mime"
	"strings"
)

// Sniffer reports whether a leading sample of an input plausibly belongs to
// a format. Sniffers must be pure and must accept any byte sequence.
type Sniffer func(sample []byte) bool

// ReaderFunc constructs a Reader for a registered format.
type ReaderFunc func(r io.Reader, opts Options) (Reader, error)

// WriterFunc constructs a Writer for a registered format.
type WriterFunc func(w io.Writer, opts Options) (Writer, error)

// Binding pairs the reader and writer constructors of a format. Formats and
// their aliases share one *Binding; nothing is constructed until a caller
// asks for a reader or writer.
type Binding struct {
	NewReader ReaderFunc
	NewWriter WriterFunc
}

// Descriptor is the static metadata a format registers.
type Descriptor struct {
	// Symbol is the short name used for direct lookup (e.g. "jsonld").
	// Defaults to the first extension when empty.
	Symbol string
	// MediaType is the canonical media type, the primary registration key.
	MediaType string
	// AliasMediaTypes also resolve to this format.
	AliasMediaTypes []string
	// Extensions are file-name extensions without the leading dot, in
	// preference order.
	Extensions []string
	// Encoding is the declared character encoding. Informational only.
	Encoding string
	// Detect sniffs input samples for this format.
	Detect Sniffer
}

// PreferredExtension returns the first declared extension, or "".
func (d *Descriptor) PreferredExtension() string {
	if len(d.Extensions) == 0 {
		return ""
	}
	return d.Extensions[0]
}

// normalized returns a copy of d with every key normalized and the slices
// detached from the caller's.
func (d Descriptor) normalized() Descriptor {
	out := d
	out.MediaType = NormalizeMediaType(d.MediaType)
	out.AliasMediaTypes = make([]string, 0, len(d.AliasMediaTypes))
	for _, mt := range d.AliasMediaTypes {
		if mt = NormalizeMediaType(mt); mt != "" {
			out.AliasMediaTypes = append(out.AliasMediaTypes, mt)
		}
	}
	out.Extensions = make([]string, 0, len(d.Extensions))
	for _, ext := range d.Extensions {
		if ext = NormalizeExtension(ext); ext != "" {
			out.Extensions = append(out.Extensions, ext)
		}
	}
	out.Symbol = NormalizeSymbol(d.Symbol)
	if out.Symbol == "" {
		out.Symbol = out.PreferredExtension()
	}
	out.Encoding = strings.ToLower(strings.TrimSpace(d.Encoding))
	return out
}

func (d Descriptor) validate() error {
	if d.MediaType == "" {
		return fmt.Errorf("%w: empty canonical media type", ErrInvalidDescriptor)
	}
	if d.Detect == nil {
		return fmt.Errorf("%w: %s has no sniffer", ErrInvalidDescriptor, d.MediaType)
	}
	return nil
}

// Alias makes an existing binding reachable under another symbol and,
// optionally, another media type. Aliases are never sniffed and never
// matched by extension.
type Alias struct {
	Symbol    string
	MediaType string
	Encoding  string
	Binding   *Binding
}

func (a Alias) normalized() Alias {
	return Alias{
		Symbol:    NormalizeSymbol(a.Symbol),
		MediaType: NormalizeMediaType(a.MediaType),
		Encoding:  strings.ToLower(strings.TrimSpace(a.Encoding)),
		Binding:   a.Binding,
	}
}

func (a Alias) validate() error {
	if a.Symbol == "" && a.MediaType == "" {
		return fmt.Errorf("%w: alias has neither symbol nor media type", ErrInvalidDescriptor)
	}
	return validateBinding(a.Binding, a.Symbol+a.MediaType)
}

func validateBinding(b *Binding, name string) error {
	if b == nil || b.NewReader == nil || b.NewWriter == nil {
		return fmt.Errorf("%w: %s has an incomplete binding", ErrInvalidDescriptor, name)
	}
	return nil
}

// NormalizeMediaType lowercases a media type and drops any parameters, so
// "Application/LD+JSON; profile=x" becomes "application/ld+json".
func NormalizeMediaType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if mediaType, _, err := mime.ParseMediaType(value); err == nil {
		return mediaType
	}
	mediaType, _, _ := strings.Cut(value, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// NormalizeExtension lowercases an extension and strips a leading dot.
func NormalizeExtension(value string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "."))
}

// NormalizeSymbol lowercases a format symbol.
func NormalizeSymbol(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
