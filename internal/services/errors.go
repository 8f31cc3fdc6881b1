package services

import (
	"errors"
	"fmt"
)

// Request-terminating extraction failures. Everything downstream of text
// extraction degrades silently instead of erroring.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyText         = errors.New("could not extract text from file")
)

// ExtractionError wraps the underlying decode/parse/OCR failure for a
// recognized format.
type ExtractionError struct {
	Format DocumentFormat
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("error processing %s: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
