package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeFormatNotFound indicates that no registered format matched a lookup.
	ErrCodeFormatNotFound ErrorCode = "FORMAT_NOT_FOUND"
	// ErrCodeInvalidDescriptor indicates a descriptor or alias that cannot be registered.
	ErrCodeInvalidDescriptor ErrorCode = "INVALID_DESCRIPTOR"
	// ErrCodeInputTooLarge indicates the input exceeded the configured size limit.
	ErrCodeInputTooLarge ErrorCode = "INPUT_TOO_LARGE"
	// ErrCodeQuadLimitExceeded indicates that the maximum number of quads was exceeded.
	ErrCodeQuadLimitExceeded ErrorCode = "QUAD_LIMIT_EXCEEDED"
	// ErrCodeClosed indicates use of a closed reader or writer.
	ErrCodeClosed ErrorCode = "CLOSED"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

var (
	// ErrFormatNotFound indicates that no registered format matched a lookup.
	ErrFormatNotFound = errors.New("rdf: format not found")
	// ErrInvalidDescriptor indicates a descriptor or alias that cannot be registered.
	ErrInvalidDescriptor = errors.New("rdf: invalid format descriptor")
	// ErrInputTooLarge indicates the input exceeded the configured size limit.
	ErrInputTooLarge = errors.New("rdf: input exceeds configured limit")
	// ErrQuadLimitExceeded indicates that the maximum number of quads was exceeded.
	ErrQuadLimitExceeded = errors.New("rdf: maximum number of quads exceeded")
	// ErrClosed indicates use of a closed reader or writer.
	ErrClosed = errors.New("rdf: use of closed reader or writer")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF (which is not an error condition).
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	switch {
	case errors.Is(err, ErrFormatNotFound):
		return ErrCodeFormatNotFound
	case errors.Is(err, ErrInvalidDescriptor):
		return ErrCodeInvalidDescriptor
	case errors.Is(err, ErrInputTooLarge):
		return ErrCodeInputTooLarge
	case errors.Is(err, ErrQuadLimitExceeded):
		return ErrCodeQuadLimitExceeded
	case errors.Is(err, ErrClosed):
		return ErrCodeClosed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}

	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // Format symbol (e.g., "jsonld")
	Statement string // Offending input excerpt, if known
	Offset    int64  // Byte offset in input (-1 if unknown)
	Err       error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)
	if e.Offset >= 0 {
		fmt.Fprintf(&msg, " (offset %d)", e.Offset)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())

	if e.Statement != "" {
		const maxExcerptLen = 80
		excerpt := e.Statement
		if len(excerpt) > maxExcerptLen {
			excerpt = excerpt[:maxExcerptLen] + "..."
		}
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// WrapParseError adds format and position context to err. Errors that are
// already a *ParseError, and nil, are returned unchanged.
func WrapParseError(format string, offset int64, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &ParseError{Format: format, Offset: offset, Err: err}
}
