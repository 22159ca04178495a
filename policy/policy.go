// Package policy decides whether a selected or uploaded image is acceptable.
//
// Two checks exist. ValidateDeclared trusts the media type reported by the
// picker and is advisory only. ValidateContent sniffs the bytes and is the
// authoritative check used by the gateway. Both apply the type rule before the
// size rule and stop at the first failure.
package policy

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxUploadSize = 3 * 1024 * 1024

	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
)

var (
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrTooLarge        = errors.New("file too large")
)

// Rejection is returned when a file breaks a rule. Reason is shown to the user verbatim.
type Rejection struct {
	Rule   error
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

func (r *Rejection) Unwrap() error {
	return r.Rule
}

// Messages holds the user-facing reason for each rule.
type Messages struct {
	UnsupportedType string
	TooLarge        string
}

var (
	clientMessages = Messages{
		UnsupportedType: "Please upload a valid PNG or JPG.",
		TooLarge:        "Image size should be less than 3MB.",
	}
	serverMessages = Messages{
		UnsupportedType: "Unsupported file type. Please upload PNG or JPG.",
		TooLarge:        "Image is too large (max 3MB).",
	}
)

type Policy struct {
	MaxBytes int64
	Allowed  []string
}

func Default() Policy {
	return Policy{
		MaxBytes: MaxUploadSize,
		Allowed:  []string{MediaTypePNG, MediaTypeJPEG},
	}
}

// ValidateDeclared checks the media type reported by the caller and the byte size.
func (p Policy) ValidateDeclared(mediaType string, size int64) error {
	return p.check(slices.Contains(p.Allowed, mediaType), size, clientMessages)
}

// ValidateContent sniffs r to find the actual media type, then checks size.
// Only the leading bytes of r are consumed.
func (p Policy) ValidateContent(r io.Reader, size int64) error {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return fmt.Errorf("detect media type: %w", err)
	}
	return p.check(p.allows(mt), size, serverMessages)
}

// Sniff returns the detected media type of data, without parameters.
func Sniff(data []byte) string {
	return mimetype.Detect(data).String()
}

func (p Policy) allows(mt *mimetype.MIME) bool {
	for _, allowed := range p.Allowed {
		if mt.Is(allowed) {
			return true
		}
	}
	return false
}

func (p Policy) check(typeOK bool, size int64, msgs Messages) error {
	if !typeOK {
		return &Rejection{Rule: ErrUnsupportedType, Reason: msgs.UnsupportedType}
	}
	if size > p.MaxBytes {
		return &Rejection{Rule: ErrTooLarge, Reason: msgs.TooLarge}
	}
	return nil
}
