package rdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ReadSample reads up to n leading bytes from r. It returns the sample and a
// reader that yields the sample followed by the rest of r, so a decoder can
// still start from the beginning.
func ReadSample(r io.Reader, n int) ([]byte, io.Reader, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, r, err
	}
	sample := buf[:read]
	return sample, io.MultiReader(bytes.NewReader(sample), r), nil
}

// Detect sniffs the leading bytes of r against every registered format.
// The returned reader replays the consumed bytes and must be used in place
// of r whether or not detection succeeded.
func (r *Registry) Detect(in io.Reader) (*Entry, io.Reader, error) {
	sample, replay, err := ReadSample(in, r.sampleSize)
	if err != nil {
		return nil, replay, fmt.Errorf("rdf: reading detection sample: %w", err)
	}
	entry, ok := r.ForSample(sample)
	if !ok {
		return nil, replay, ErrFormatNotFound
	}
	return entry, replay, nil
}
