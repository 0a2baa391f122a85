package middleware

import (
	"errors"
	"unicode/utf8"
)

// MaxUploadBytes caps uploaded document size at 20MB.
const MaxUploadBytes = 20 << 20

// ValidateMessageContent validates message content before it enters the
// pipeline. Emptiness itself is the pipeline's concern; this guards size
// and encoding.
func ValidateMessageContent(content string) error {
	if len(content) > 100000 { // ~100KB limit
		return errors.New("content exceeds maximum length")
	}
	if !utf8.ValidString(content) {
		return errors.New("content must be valid UTF-8")
	}
	return nil
}

// ValidatePromptText validates the caller-supplied analysis instruction.
func ValidatePromptText(prompt string) error {
	if len(prompt) > 4096 {
		return errors.New("prompt_text exceeds maximum length")
	}
	if !utf8.ValidString(prompt) {
		return errors.New("prompt_text must be valid UTF-8")
	}
	return nil
}
