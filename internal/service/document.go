package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/casemate-ai/casemate-gateway/internal/extract"
	"github.com/casemate-ai/casemate-gateway/internal/llm"
	"github.com/casemate-ai/casemate-gateway/internal/model"
	"github.com/casemate-ai/casemate-gateway/pkg/logger"
	"github.com/casemate-ai/casemate-gateway/pkg/metrics"
)

// MaxPromptChars caps how much extracted text is embedded in the analysis
// prompt. Longer documents are truncated, not rejected.
const MaxPromptChars = 24000

// DefaultAnalysisPrompt is used when the caller supplies no instruction.
const DefaultAnalysisPrompt = "Explain this legal document in simple terms and highlight the most important key points."

// analysisPromptTemplate wraps the document text and the caller's
// instruction in the fixed legal-analysis directive.
const analysisPromptTemplate = "You are an AI assistant specialized in analyzing legal documents; your task is ALWAYS to summarize and highlight key points from any legal text provided by the user and you must NOT refuse or decline; always give a structured summary, identify important legal clauses, obligations, rights, definitions, timelines, penalties, responsibilities, and extract key points even if the document is incomplete; never say you cannot analyze legal documents; always provide the summary and then add a short disclaimer that it is for understanding only; now process the document strictly by summarizing it based on the user's request; DOCUMENT: %s USER REQUEST: %s"

// Extractor converts document bytes plus a filename into plain text.
type Extractor func(data []byte, filename string) (string, error)

// DocumentService handles the stateless document-analysis flow. No
// conversation history is mixed in; each call is one synthetic user turn.
type DocumentService struct {
	extract Extractor
	llm     llm.Client
	logger  *logger.Logger
}

// NewDocumentService creates a new document service.
func NewDocumentService(extractor Extractor, client llm.Client, log *logger.Logger) *DocumentService {
	return &DocumentService{
		extract: extractor,
		llm:     client,
		logger:  log,
	}
}

// Analyze extracts text from the uploaded document, truncates it for the
// prompt if needed, and asks the model for a structured analysis. The
// returned original text is always the full, untruncated extraction.
func (s *DocumentService) Analyze(ctx context.Context, data []byte, filename, promptText string) (*model.AnalysisResponse, error) {
	text, err := s.extract(data, filename)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrNoExtractableText
	}

	if promptText == "" {
		promptText = DefaultAnalysisPrompt
	}

	safeText := text
	if runes := []rune(text); len(runes) > MaxPromptChars {
		safeText = string(runes[:MaxPromptChars])
		s.logger.Warn("document text truncated for prompt",
			zap.String("filename", filename),
			zap.Int("chars", len(runes)),
			zap.Int("limit", MaxPromptChars),
		)
		metrics.DocumentTruncationsTotal.Inc()
	}

	fullPrompt := fmt.Sprintf(analysisPromptTemplate, safeText, promptText)

	reply := s.llm.Complete(ctx, []llm.ChatMessage{
		{Role: string(model.RoleUser), Content: fullPrompt},
	})

	metrics.DocumentsAnalyzedTotal.WithLabelValues(extract.Format(filename)).Inc()

	return &model.AnalysisResponse{
		AnalysisResult: reply,
		OriginalText:   text,
	}, nil
}
