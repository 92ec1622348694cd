package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"echofeed-backend/internal/ai"
	"echofeed-backend/internal/models"
	"echofeed-backend/internal/notifier"
	"echofeed-backend/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type FeedbackHandler struct {
	store    store.Store
	analyzer *ai.Analyzer
	notifier notifier.Notifier
}

func NewFeedbackHandler(s store.Store, analyzer *ai.Analyzer, n notifier.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		store:    s,
		analyzer: analyzer,
		notifier: n,
	}
}

// Pointer fields distinguish absent from zero-valued input.
type SubmitFeedbackRequest struct {
	Rating     *int    `json:"rating"`
	ReviewText *string `json:"reviewText"`
}

type PatchFeedbackRequest struct {
	HelpfulResponse *bool `json:"helpfulResponse"`
}

// --- POST /api/feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	if req.Rating == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "rating is required"})
		return
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "rating must be between 1 and 5"})
		return
	}
	if req.ReviewText == nil || *req.ReviewText == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "reviewText is required"})
		return
	}

	// Enrichment never blocks ingestion — on any AI failure the analyzer
	// hands back the fixed fallback result.
	analysis := h.analyzer.Analyze(r.Context(), *req.Rating, *req.ReviewText)

	submission := &models.Submission{
		ID:         uuid.New().String(),
		Rating:     *req.Rating,
		ReviewText: *req.ReviewText,
		AIAnalysis: analysis,
	}

	if err := h.store.Insert(r.Context(), submission); err != nil {
		log.Error().Err(err).Msg("failed to store submission")
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	// Fire the notification in a background goroutine (best-effort)
	go func(s models.Submission) {
		if err := h.notifier.Publish(context.Background(), &s); err != nil {
			log.Error().Err(err).Str("submission_id", s.ID).Msg("failed to publish feedback notification")
		}
	}(*submission)

	writeJSON(w, http.StatusCreated, submission)
}

// --- GET /api/feedback ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.store.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list submissions")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

// --- PATCH /api/feedback/{id} ---

func (h *FeedbackHandler) PatchFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PatchFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	if req.HelpfulResponse == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "helpfulResponse is required"})
		return
	}

	updated, err := h.store.UpdatePartial(r.Context(), id, store.Fields{
		"helpfulResponse": *req.HelpfulResponse,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "submission not found"})
			return
		}
		log.Error().Err(err).Str("submission_id", id).Msg("failed to update submission")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
