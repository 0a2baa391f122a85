// Package service provides the conversation pipeline.
package service

import "errors"

// ErrEmptyContent is returned when a message is appended with empty or
// absent content.
var ErrEmptyContent = errors.New("message_content cannot be empty")

// ErrNoExtractableText is returned when a document parses cleanly but
// yields no usable text.
var ErrNoExtractableText = errors.New("could not extract any text from the document")
