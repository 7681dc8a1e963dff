package core

import (
	"strings"
	"testing"

	"github.com/brightmatter/competitor-email-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestComplianceEvidence(t *testing.T) {
	chunks := []store.KnowledgeChunk{
		{Content: "They hold ISO 27001 for their EU region."},
		{Content: "Their Certification Program covers resellers."},
		{Content: "Pricing starts at $49 per seat."},
	}

	evidence := ComplianceEvidence(chunks)

	assert.Contains(t, evidence, "ISO 27001")
	assert.Contains(t, evidence, "Certification Program")
	assert.NotContains(t, evidence, "Pricing starts")
	assert.Equal(t, 2, len(strings.Split(evidence, "\n")))
}

func TestComplianceEvidenceCaseInsensitive(t *testing.T) {
	chunks := []store.KnowledgeChunk{
		{Content: "compliant with iso/iec 27001:2022"},
		{Content: "CERTIFICATION audit passed in March"},
	}

	evidence := ComplianceEvidence(chunks)

	assert.Contains(t, evidence, "iso/iec 27001:2022")
	assert.Contains(t, evidence, "CERTIFICATION audit")
}

func TestComplianceEvidenceNoMatch(t *testing.T) {
	chunks := []store.KnowledgeChunk{
		{Content: "They raised a Series B last quarter."},
	}
	assert.Empty(t, ComplianceEvidence(chunks))
	assert.Empty(t, ComplianceEvidence(nil))
}

func TestBuildBodyPrompt(t *testing.T) {
	signals := store.Signals{ComplianceMentions: 3, PricingMentions: 1, ProductMentions: 5}
	chunks := []store.KnowledgeChunk{
		{Content: "Customers ask about ISO/IEC 27001 constantly."},
	}

	prompt := BuildBodyPrompt(signals, chunks, "comp_9", "org_1")

	assert.Contains(t, prompt, "customers of comp_9 on behalf of org_1")
	assert.Contains(t, prompt, "Compliance mentions: 3")
	assert.Contains(t, prompt, "Pricing mentions: 1")
	assert.Contains(t, prompt, "Product mentions: 5")
	assert.Contains(t, prompt, "ISO/IEC 27001:2022 certification")
	assert.Contains(t, prompt, "No subject line")
}

func TestBuildBodyPromptWithoutEvidence(t *testing.T) {
	prompt := BuildBodyPrompt(store.Signals{}, nil, "comp_9", "org_1")

	// No placeholder claim when no chunk carries compliance evidence.
	assert.NotContains(t, prompt, "ISO/IEC 27001")
	assert.Contains(t, prompt, "Compliance mentions: 0")
}

func TestBuildSubjectPrompt(t *testing.T) {
	prompt := BuildSubjectPrompt("We noticed you rely on Acme.")

	assert.Contains(t, prompt, "4-6 word email subject line")
	assert.Contains(t, prompt, "We noticed you rely on Acme.")
	assert.Contains(t, prompt, "no quotes, no punctuation")
}
