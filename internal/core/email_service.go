package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/brightmatter/competitor-email-api/internal/store"
	"go.uber.org/zap"
)

const (
	bodySystemInstruction = "You are an expert at writing brief, human-sounding B2B emails that convert without being salesy."

	bodyTemperature = 0.7
	bodyMaxTokens   = 400

	// The subject call samples hotter but is capped short; it only has to
	// produce 4-6 words.
	subjectTemperature = 0.8
	subjectMaxTokens   = 20

	toneConversational = "conversational"
)

// GeneratedEmail is the pipeline's output. It lives for one request and is
// never persisted.
type GeneratedEmail struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Tone      string `json:"tone"`
	WordCount int    `json:"word_count"`
}

// Completer is the single operation the email service needs from the
// generation client.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

// EmailService sequences prompt construction and the two generation calls
// into one logical email-production operation. The subject call depends on
// the finished body, so the two calls are strictly sequential; either one
// failing fails the whole operation with no partial output.
type EmailService struct {
	completer Completer
	log       *zap.Logger
}

func NewEmailService(completer Completer, log *zap.Logger) *EmailService {
	return &EmailService{
		completer: completer,
		log:       log,
	}
}

func (s *EmailService) GenerateCompetitorEmail(ctx context.Context, signals store.Signals, chunks []store.KnowledgeChunk, competitorID, orgID string) (*GeneratedEmail, error) {
	bodyPrompt := BuildBodyPrompt(signals, chunks, competitorID, orgID)

	body, err := s.completer.Complete(ctx, bodySystemInstruction, bodyPrompt, bodyTemperature, bodyMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate email: %w", err)
	}
	body = strings.TrimSpace(body)

	subject, err := s.completer.Complete(ctx, "", BuildSubjectPrompt(body), subjectTemperature, subjectMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate email: %w", err)
	}
	subject = sanitizeSubject(subject)

	s.log.Debug("generated competitor email",
		zap.String("competitor_id", competitorID),
		zap.String("subject", subject))

	return &GeneratedEmail{
		Subject:   subject,
		Body:      body,
		Tone:      toneConversational,
		WordCount: len(strings.Fields(body)),
	}, nil
}

// sanitizeSubject strips surrounding quote characters and a single trailing
// terminal punctuation mark; models add both despite the prompt saying not to.
func sanitizeSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	subject = strings.Trim(subject, `"'`)
	subject = strings.TrimSpace(subject)
	if n := len(subject); n > 0 && strings.ContainsRune(".!?", rune(subject[n-1])) {
		subject = subject[:n-1]
	}
	return strings.Trim(strings.TrimSpace(subject), `"'`)
}
