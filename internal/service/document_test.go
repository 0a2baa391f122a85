package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casemate-ai/casemate-gateway/internal/extract"
	"github.com/casemate-ai/casemate-gateway/pkg/logger"
)

func fixedExtractor(text string, err error) Extractor {
	return func(data []byte, filename string) (string, error) {
		return text, err
	}
}

func TestAnalyzeTruncatesPromptKeepsOriginal(t *testing.T) {
	longText := strings.Repeat("x", MaxPromptChars+1000)
	client := &fakeLLM{reply: "structured analysis"}
	svc := NewDocumentService(fixedExtractor(longText, nil), client, logger.NewNop())

	result, err := svc.Analyze(context.Background(), []byte("raw"), "contract.pdf", "")
	require.NoError(t, err)

	// The caller sees the full extraction.
	assert.Equal(t, longText, result.OriginalText)
	assert.Equal(t, "structured analysis", result.AnalysisResult)

	// The prompt embeds exactly the truncated text.
	require.Equal(t, 1, client.calls())
	history := client.histories[0]
	require.Len(t, history, 1)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, MaxPromptChars, strings.Count(history[0].Content, "x"))
}

func TestAnalyzeNoTruncationUnderLimit(t *testing.T) {
	text := strings.Repeat("x", 512)
	client := &fakeLLM{reply: "ok"}
	svc := NewDocumentService(fixedExtractor(text, nil), client, logger.NewNop())

	result, err := svc.Analyze(context.Background(), []byte("raw"), "contract.docx", "")
	require.NoError(t, err)
	assert.Equal(t, text, result.OriginalText)

	require.Equal(t, 1, client.calls())
	assert.Equal(t, 512, strings.Count(client.histories[0][0].Content, "x"))
}

func TestAnalyzePromptInterpolation(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	svc := NewDocumentService(fixedExtractor("the tenant shall pay rent", nil), client, logger.NewNop())

	_, err := svc.Analyze(context.Background(), []byte("raw"), "lease.pdf", "List the penalties.")
	require.NoError(t, err)

	require.Equal(t, 1, client.calls())
	prompt := client.histories[0][0].Content
	assert.Contains(t, prompt, "DOCUMENT: the tenant shall pay rent")
	assert.Contains(t, prompt, "USER REQUEST: List the penalties.")
}

func TestAnalyzeDefaultPrompt(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	svc := NewDocumentService(fixedExtractor("some text", nil), client, logger.NewNop())

	_, err := svc.Analyze(context.Background(), []byte("raw"), "doc.docx", "")
	require.NoError(t, err)

	require.Equal(t, 1, client.calls())
	assert.Contains(t, client.histories[0][0].Content, DefaultAnalysisPrompt)
}

func TestAnalyzeWhitespaceOnlyText(t *testing.T) {
	client := &fakeLLM{reply: "unused"}
	svc := NewDocumentService(fixedExtractor("  \n\t ", nil), client, logger.NewNop())

	_, err := svc.Analyze(context.Background(), []byte("raw"), "blank.pdf", "")
	require.ErrorIs(t, err, ErrNoExtractableText)
	assert.Zero(t, client.calls())
}

func TestAnalyzeExtractorErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unsupported format", err: extract.ErrUnsupportedFormat},
		{name: "extraction failed", err: extract.ErrExtractionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeLLM{reply: "unused"}
			svc := NewDocumentService(fixedExtractor("", tt.err), client, logger.NewNop())

			_, err := svc.Analyze(context.Background(), []byte("raw"), "file.bin", "")
			require.ErrorIs(t, err, tt.err)
			assert.Zero(t, client.calls())
		})
	}
}
