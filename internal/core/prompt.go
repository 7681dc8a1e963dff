package core

import (
	"fmt"
	"strings"

	"github.com/brightmatter/competitor-email-api/internal/store"
)

// ComplianceEvidence concatenates the content of every chunk that mentions
// "iso" or "certification", case-insensitively. This is the sole extraction
// heuristic; chunks matching neither term contribute nothing.
func ComplianceEvidence(chunks []store.KnowledgeChunk) string {
	var matched []string
	for _, chunk := range chunks {
		lower := strings.ToLower(chunk.Content)
		if strings.Contains(lower, "iso") || strings.Contains(lower, "certification") {
			matched = append(matched, chunk.Content)
		}
	}
	return strings.Join(matched, "\n")
}

// BuildBodyPrompt turns the collected intelligence into the user prompt for
// the body generation call. When no compliance evidence exists the advantage
// line is omitted rather than replaced with a placeholder, so the model never
// sees an empty claim.
func BuildBodyPrompt(signals store.Signals, chunks []store.KnowledgeChunk, competitorID, orgID string) string {
	advantages := ""
	if ComplianceEvidence(chunks) != "" {
		advantages = "We have ISO/IEC 27001:2022 certification for information security, demonstrating our commitment to data protection and security."
	}

	return fmt.Sprintf(`You are writing a brief, persuasive email to customers of %s on behalf of %s.

COMPETITOR INTELLIGENCE:
- Compliance mentions: %d
- Pricing mentions: %d
- Product mentions: %d

OUR ADVANTAGES:
%s

Write a SHORT (max 150 words), human, conversational email that:
1. Opens with empathy (acknowledge they're using %s)
2. Highlights ONE key differentiator (focus on security/compliance if available)
3. Includes a soft call-to-action
4. Sounds like a real person, not marketing copy
5. No subject line - just the email body
6. Use "we" not company name
7. Be specific but humble

Tone: Friendly, helpful, not pushy. Like a colleague recommending a better tool.`,
		competitorID, orgID,
		signals.ComplianceMentions, signals.PricingMentions, signals.ProductMentions,
		advantages,
		competitorID)
}

// BuildSubjectPrompt asks for a short subject conditioned on the finished
// body, so the subject reflects what was actually written rather than a
// generic template.
func BuildSubjectPrompt(body string) string {
	return fmt.Sprintf("Write a 4-6 word email subject line for this email body (no quotes, no punctuation):\n\n%s", body)
}
