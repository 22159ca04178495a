package rembg

import (
	"bytes"
	"errors"
)

// Sentinel is what the removal script prints when it could not produce an image.
const Sentinel = "False"

var (
	ErrEmptyOutput = errors.New("removal process produced no output")
	ErrSentinel    = errors.New("removal process reported failure")
)

// ParseOutput reads the script's text protocol: a base64 PNG on success, the
// Sentinel or nothing on failure.
func ParseOutput(out []byte) (string, error) {
	trimmed := bytes.TrimSpace(out)
	switch {
	case len(trimmed) == 0:
		return "", ErrEmptyOutput
	case string(trimmed) == Sentinel:
		return "", ErrSentinel
	}
	return string(trimmed), nil
}
