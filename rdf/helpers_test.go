package rdf

import (
	"bytes"
	"io"
	"strings"
)

// lineReader yields one quad per non-empty input line, using the line as the
// subject IRI. It is enough to observe which binding handled an input.
type lineReader struct {
	lines []string
	index int
}

func (r *lineReader) Next() (Quad, error) {
	for r.index < len(r.lines) {
		line := strings.TrimSpace(r.lines[r.index])
		r.index++
		if line == "" {
			continue
		}
		return Quad{S: IRI{Value: line}, P: IRI{Value: "urn:p"}, O: Literal{Lexical: "x"}}, nil
	}
	return Quad{}, io.EOF
}

func (r *lineReader) Close() error { return nil }

type lineWriter struct {
	w      io.Writer
	closed bool
}

func (w *lineWriter) Write(q Quad) error {
	if w.closed {
		return ErrClosed
	}
	_, err := io.WriteString(w.w, q.String()+"\n")
	return err
}

func (w *lineWriter) Flush() error { return nil }

func (w *lineWriter) Close() error {
	w.closed = true
	return nil
}

func newLineBinding() *Binding {
	return &Binding{
		NewReader: func(r io.Reader, opts Options) (Reader, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return &lineReader{lines: strings.Split(string(data), "\n")}, nil
		},
		NewWriter: func(w io.Writer, opts Options) (Writer, error) {
			return &lineWriter{w: w}, nil
		},
	}
}

func prefixSniffer(prefix string) Sniffer {
	return func(sample []byte) bool {
		return bytes.HasPrefix(sample, []byte(prefix))
	}
}

func testDescriptor(symbol, mediaType string, extensions ...string) Descriptor {
	return Descriptor{
		Symbol:     symbol,
		MediaType:  mediaType,
		Extensions: extensions,
		Encoding:   "utf-8",
		Detect:     prefixSniffer(symbol + ":"),
	}
}
