// Package jsonld registers the JSON-LD serialization with the rdf format
// registry.
//
// Importing the package publishes the format into rdf.DefaultRegistry:
//
//	import _ "github.com/yut148/json-ld/jsonld"
//
//	entry, _ := rdf.DefaultRegistry.ForFileName("etc/foaf.jsonld")
//	entry, _ = rdf.DefaultRegistry.ForMediaType("application/x-ld+json")
//	entry, _ = rdf.DefaultRegistry.ForSymbol("json-ld") // alias, same binding
//
// Use Register to publish the same descriptor into a registry of your own.
//
// Reading and writing go through github.com/piprate/json-gold. Readers load
// the whole document before yielding quads; writers buffer quads and emit the
// document on Close.
package jsonld
