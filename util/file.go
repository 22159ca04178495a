package util

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ReadImageFile reads a local file and reports the media type a file picker
// would declare for it, which is based on the extension alone.
func ReadImageFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image file: %w", err)
	}
	return data, DeclaredMediaType(path), nil
}

// DeclaredMediaType guesses a media type from the file extension.
func DeclaredMediaType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".jfif":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return ""
	}
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	return mt
}
