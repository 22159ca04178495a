package util

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const PNGDataURIPrefix = "data:image/png;base64,"

var ErrNotDataURI = errors.New("not a base64 data URI")

// PNGDataURI prefixes an already base64-encoded PNG.
func PNGDataURI(b64 string) string {
	return PNGDataURIPrefix + b64
}

// DecodeDataURI returns the payload and media type of a base64 data URI.
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI payload: %w", err)
	}
	return data, mediaType, nil
}
