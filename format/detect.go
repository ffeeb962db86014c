// Package format provides input format detection for the batch driver.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JPEG indicates a JPEG image.
	JPEG
	// PNG indicates a PNG image.
	PNG
	// TIFF indicates a TIFF image.
	TIFF
	// WEBP indicates a WebP image.
	WEBP
	// TokenJSON indicates a JSON file of precomputed OCR results.
	TokenJSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	case TIFF:
		return "TIFF"
	case WEBP:
		return "WEBP"
	case TokenJSON:
		return "TokenJSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case PNG:
		return ".png"
	case TIFF:
		return ".tif"
	case WEBP:
		return ".webp"
	case TokenJSON:
		return ".json"
	default:
		return ""
	}
}

// IsImage reports whether the format is an image the OCR engine can read.
func (f Format) IsImage() bool {
	switch f {
	case JPEG, PNG, TIFF, WEBP:
		return true
	default:
		return false
	}
}

// Detect determines the input format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return JPEG
	case ".png":
		return PNG
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WEBP
	case ".json":
		return TokenJSON
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine the format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// JPEG magic: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return JPEG
	}

	// PNG magic: \x89PNG
	if data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' {
		return PNG
	}

	// TIFF magic: II*\x00 (little endian) or MM\x00* (big endian)
	if bytes.HasPrefix(data, []byte{'I', 'I', 0x2A, 0x00}) ||
		bytes.HasPrefix(data, []byte{'M', 'M', 0x00, 0x2A}) {
		return TIFF
	}

	// WEBP: RIFF....WEBP
	if len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return WEBP
	}

	// JSON: first non-whitespace byte opens an object or array
	if detectJSONMagic(data) {
		return TokenJSON
	}

	return Unknown
}

// detectJSONMagic checks if the data looks like a JSON document.
func detectJSONMagic(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
