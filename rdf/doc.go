// Package rdf provides a registry of RDF serialization formats and the small
// statement model their readers and writers exchange.
//
// A format publishes a Descriptor (canonical media type, alias media types,
// file-name extensions, declared encoding, short symbol and a Sniffer) paired
// with a Binding of reader and writer constructors. Callers then find the
// format from whatever they know about an input:
//
//	entry, ok := reg.ForSymbol("jsonld")
//	entry, ok := reg.ForMediaType("application/ld+json; profile=x")
//	entry, ok := reg.ForFileName("etc/foaf.ld")
//	entry, ok := reg.ForSample(sample)
//
// Resolve combines these: static metadata is consulted first and the sample
// is sniffed only when nothing else matched. Detect reads the sample from a
// stream and hands back a reader that replays it:
//
//	entry, r, err := reg.Detect(r)
//	if err != nil {
//	    // handle error
//	}
//	dec, err := entry.Binding.NewReader(r, rdf.NewOptions())
//
// Aliases share an existing Binding under another symbol or media type. They
// are never sniffed and never matched by extension.
//
// Registration replaces any earlier format with the same canonical media
// type, and a key claimed by two formats belongs to the later one. Every
// registration publishes a new immutable index atomically, so lookups may run
// concurrently with registration and never see a partial descriptor.
//
// Format packages register themselves into DefaultRegistry from init. Tests
// and embedders that need isolation construct their own with NewRegistry.
package rdf
