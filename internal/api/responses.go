package api

import (
	"encoding/json"
	"net/http"

	"github.com/brightmatter/competitor-email-api/internal/core"
	"github.com/brightmatter/competitor-email-api/internal/store"
)

type generateEmailRequest struct {
	OrgID        string `json:"org_id"`
	CompetitorID string `json:"competitor_id"`
}

type emailMetadata struct {
	GeneratedAt          string        `json:"generated_at"`
	CompetitorID         string        `json:"competitor_id"`
	OrgID                string        `json:"org_id"`
	SignalsUsed          store.Signals `json:"signals_used"`
	KnowledgeChunksCount int           `json:"knowledge_chunks_count"`
}

type generateEmailResponse struct {
	Success  bool                 `json:"success"`
	Email    *core.GeneratedEmail `json:"email"`
	Metadata emailMetadata        `json:"metadata"`
}

type receivedFields struct {
	OrgID        string `json:"org_id"`
	CompetitorID string `json:"competitor_id"`
}

// errorResponse is the body shape for every non-2xx outcome. Received echoes
// the caller's identifiers on validation failures; Stack is populated only in
// development mode.
type errorResponse struct {
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Received *receivedFields `json:"received,omitempty"`
	Stack    string          `json:"stack,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
