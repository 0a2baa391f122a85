// Package extract turns uploaded document bytes into plain text.
package extract

import (
	"errors"
	"strings"
)

// ErrUnsupportedFormat is returned for filename suffixes other than
// .pdf and .docx, before any parsing is attempted.
var ErrUnsupportedFormat = errors.New("unsupported file type, expected .pdf or .docx")

// ErrExtractionFailed is returned for any parser-level failure. The
// underlying parser error is wrapped for logging but never reaches the
// API response verbatim.
var ErrExtractionFailed = errors.New("could not extract text from document")

// Format returns the extraction format for a filename, or "" when the
// suffix is unsupported.
func Format(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "pdf"
	case strings.HasSuffix(name, ".docx"):
		return "docx"
	default:
		return ""
	}
}

// Extract converts document bytes to plain text based on the filename
// suffix. It is a pure transform: no truncation, no whitespace policy
// beyond what the per-format parsers produce.
func Extract(data []byte, filename string) (string, error) {
	switch Format(filename) {
	case "pdf":
		return extractPDF(data)
	case "docx":
		return extractDOCX(data)
	default:
		return "", ErrUnsupportedFormat
	}
}
