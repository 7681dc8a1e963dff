package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/brightmatter/competitor-email-api/internal/core"
	"github.com/brightmatter/competitor-email-api/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxKnowledgeChunks caps how much chunk evidence one generation consumes.
const maxKnowledgeChunks = 5

// IntelligenceStore is the read surface the handler needs from the document
// store. FindSignals returns (nil, nil) when no record exists.
type IntelligenceStore interface {
	FindSignals(ctx context.Context, orgID, competitorID string) (*store.SignalsRecord, error)
	FindKnowledgeChunks(ctx context.Context, orgID, competitorID string, limit int64) ([]store.KnowledgeChunk, error)
}

// EmailGenerator produces a complete email or fails; it never returns partial
// output.
type EmailGenerator interface {
	GenerateCompetitorEmail(ctx context.Context, signals store.Signals, chunks []store.KnowledgeChunk, competitorID, orgID string) (*core.GeneratedEmail, error)
}

type Handler struct {
	store       IntelligenceStore
	generator   EmailGenerator
	log         *zap.Logger
	development bool
}

func NewHandler(st IntelligenceStore, gen EmailGenerator, log *zap.Logger, development bool) *Handler {
	return &Handler{
		store:       st,
		generator:   gen,
		log:         log,
		development: development,
	}
}

// GenerateEmail handles POST /api/generate-email. Method filtering and CORS
// preflight are handled by the router; by the time this runs the request is a
// POST with a size-capped body.
func (h *Handler) GenerateEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log.With(zap.String("generation_id", uuid.NewString()))

	var req generateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Debug("unparseable request body", zap.Error(err))
	}

	if req.OrgID == "" || req.CompetitorID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:    "Missing required fields",
			Message:  "Both org_id and competitor_id are required",
			Received: &receivedFields{OrgID: req.OrgID, CompetitorID: req.CompetitorID},
		})
		return
	}

	log = log.With(zap.String("org_id", req.OrgID), zap.String("competitor_id", req.CompetitorID))

	signals, err := h.store.FindSignals(ctx, req.OrgID, req.CompetitorID)
	if err != nil {
		h.internalError(w, log, err)
		return
	}
	if signals == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "No signals found",
			Message: "No website signals found for org_id: " + req.OrgID + ", competitor_id: " + req.CompetitorID,
		})
		return
	}

	chunks, err := h.store.FindKnowledgeChunks(ctx, req.OrgID, req.CompetitorID, maxKnowledgeChunks)
	if err != nil {
		h.internalError(w, log, err)
		return
	}
	if len(chunks) == 0 {
		log.Warn("no knowledge chunks found, proceeding with signals only")
	}

	email, err := h.generator.GenerateCompetitorEmail(ctx, signals.Signals, chunks, req.CompetitorID, req.OrgID)
	if err != nil {
		h.internalError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, generateEmailResponse{
		Success: true,
		Email:   email,
		Metadata: emailMetadata{
			GeneratedAt:          time.Now().UTC().Format(time.RFC3339),
			CompetitorID:         req.CompetitorID,
			OrgID:                req.OrgID,
			SignalsUsed:          signals.Signals,
			KnowledgeChunksCount: len(chunks),
		},
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// internalError maps any unhandled retrieval or generation failure to a 500.
// The cause goes to the caller in the message; the stack only in development.
func (h *Handler) internalError(w http.ResponseWriter, log *zap.Logger, err error) {
	log.Error("request failed", zap.Error(err))

	resp := errorResponse{
		Error:   "Internal server error",
		Message: err.Error(),
	}
	if h.development {
		resp.Stack = string(debug.Stack())
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}
