package jsonld

import (
	"regexp"

	"github.com/yut148/json-ld/rdf"
)

// Wire-level identity of the format.
const (
	MediaType      = "application/ld+json"
	AliasMediaType = "application/x-ld+json"
	Encoding       = "utf-8"
	Symbol         = "jsonld"
	// AliasSymbol is the alternate short name bound to the same reader and writer.
	AliasSymbol = "json-ld"
)

// Extensions are the recognized file-name extensions, preferred first.
var Extensions = []string{"jsonld", "json", "ld"}

// keywordPattern finds an object opening brace followed, anywhere later, by
// a quoted reserved key. Keywords are case-sensitive and must be complete.
var keywordPattern = regexp.MustCompile(`(?s)\{.*?"@(?:context|id|type|subject|iri)"`)

// Detect reports whether sample looks like JSON-LD rather than plain JSON.
// It accepts any bytes. An undecodable byte inside the quoted keyword breaks
// the match; anywhere else in the sample it is skipped like any other byte.
func Detect(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}
	return keywordPattern.Match(sample)
}

var binding = &rdf.Binding{
	NewReader: NewReader,
	NewWriter: NewWriter,
}

// Binding returns the reader/writer binding shared by the format and its alias.
func Binding() *rdf.Binding { return binding }

// Descriptor returns the format descriptor.
func Descriptor() rdf.Descriptor {
	return rdf.Descriptor{
		Symbol:          Symbol,
		MediaType:       MediaType,
		AliasMediaTypes: []string{AliasMediaType},
		Extensions:      append([]string(nil), Extensions...),
		Encoding:        Encoding,
		Detect:          Detect,
	}
}

// Alias returns the alias descriptor.
func Alias() rdf.Alias {
	return rdf.Alias{
		Symbol:   AliasSymbol,
		Encoding: Encoding,
		Binding:  binding,
	}
}

// Registrar is the part of *rdf.Registry that Register needs.
type Registrar interface {
	Register(rdf.Descriptor, *rdf.Binding) error
	RegisterAlias(rdf.Alias) error
}

// Register publishes the JSON-LD descriptor and its alias into reg.
func Register(reg Registrar) error {
	if err := reg.Register(Descriptor(), binding); err != nil {
		return err
	}
	return reg.RegisterAlias(Alias())
}

func init() {
	if err := Register(rdf.DefaultRegistry); err != nil {
		panic(err)
	}
}
