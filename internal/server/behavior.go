package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/storage"
)

// BehaviorHandler handles behavior record ingestion and management.
type BehaviorHandler struct {
	store        *storage.Store
	maxBatchSize int
}

// NewBehaviorHandler creates a new behavior handler
func NewBehaviorHandler(store *storage.Store, maxBatchSize int) *BehaviorHandler {
	return &BehaviorHandler{
		store:        store,
		maxBatchSize: maxBatchSize,
	}
}

// recordPayload is the ingest shape for one record. IncludeInAnalysis
// defaults to true when the field is absent, so it is a pointer here.
type recordPayload struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Source            string    `json:"source"`
	BehaviorType      string    `json:"behavior_type"`
	Category          string    `json:"category"`
	Keywords          []string  `json:"keywords"`
	Content           string    `json:"content"`
	Sentiment         string    `json:"sentiment"`
	Tilt              string    `json:"political_tilt"`
	Author            string    `json:"author"`
	VideoID           string    `json:"video_id"`
	Channel           string    `json:"channel"`
	Timestamp         time.Time `json:"timestamp"`
	IsSensitive       bool      `json:"is_sensitive"`
	IncludeInAnalysis *bool     `json:"include_in_analysis"`
}

// toRecord fills server-side defaults: a fresh UUID when no ID was sent,
// the current time when no timestamp was sent, and content truncation.
func (p recordPayload) toRecord() *models.Record {
	r := &models.Record{
		ID:                p.ID,
		UserID:            p.UserID,
		Source:            p.Source,
		BehaviorType:      p.BehaviorType,
		Category:          p.Category,
		Keywords:          p.Keywords,
		Content:           models.TruncateContent(p.Content),
		Sentiment:         p.Sentiment,
		Tilt:              p.Tilt,
		Author:            p.Author,
		VideoID:           p.VideoID,
		Channel:           p.Channel,
		Timestamp:         p.Timestamp,
		IsSensitive:       p.IsSensitive,
		IncludeInAnalysis: true,
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	if p.IncludeInAnalysis != nil {
		r.IncludeInAnalysis = *p.IncludeInAnalysis
	}
	return r
}

// LogRecord stores a single behavior record.
func (h *BehaviorHandler) LogRecord(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record := payload.toRecord()
	if err := record.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.store.SaveRecord(r.Context(), record); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save record", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// LogBatch stores multiple behavior records in one transaction.
func (h *BehaviorHandler) LogBatch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Records []recordPayload `json:"records"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if len(payload.Records) == 0 {
		respondWithError(w, http.StatusBadRequest, "Batch must contain at least one record", nil)
		return
	}
	if len(payload.Records) > h.maxBatchSize {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Batch exceeds maximum size of %d records", h.maxBatchSize), nil)
		return
	}

	records := make([]*models.Record, 0, len(payload.Records))
	for _, p := range payload.Records {
		records = append(records, p.toRecord())
	}

	saved, err := h.store.SaveBatch(r.Context(), records)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":         fmt.Sprintf("Processed %d behavior records", saved),
		"records_created": saved,
	})
}

// ListRecords returns the user's behavior records inside the window.
func (h *BehaviorHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}

	q := storage.Query{
		UserID:           userID,
		IncludeSensitive: boolParam(r, "include_sensitive"),
		IncludeExcluded:  true,
	}
	if days := daysBackParam(r, 0); days > 0 {
		q.Since = time.Now().UTC().AddDate(0, 0, -days)
	}
	if limit := intParam(r, "limit"); limit > 0 {
		q.Limit = limit
	}

	records, err := h.store.Records(r.Context(), q)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// UpdateSensitivity flips the sensitivity flag on one record.
func (h *BehaviorHandler) UpdateSensitivity(w http.ResponseWriter, r *http.Request) {
	h.updateFlag(w, r, "is_sensitive", h.store.SetSensitivity, "Sensitivity updated successfully")
}

// UpdateInclusion flips the include-in-analysis flag on one record.
func (h *BehaviorHandler) UpdateInclusion(w http.ResponseWriter, r *http.Request) {
	h.updateFlag(w, r, "include_in_analysis", h.store.SetInclusion, "Analysis inclusion updated successfully")
}

func (h *BehaviorHandler) updateFlag(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, userID, recordID string, value bool) error,
	message string,
) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing record ID", nil)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID, _ := payload["user_id"].(string)
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user_id", nil)
		return
	}
	value, ok := payload[field].(bool)
	if !ok {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Missing %s", field), nil)
		return
	}

	if err := update(r.Context(), userID, recordID, value); err != nil {
		respondWithError(w, http.StatusNotFound, "Behavior record not found", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

// DeleteRecord removes one record owned by the user.
func (h *BehaviorHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing record ID", nil)
		return
	}
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}

	if err := h.store.DeleteRecord(r.Context(), userID, recordID); err != nil {
		respondWithError(w, http.StatusNotFound, "Behavior record not found", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Behavior record deleted successfully",
	})
}

// DeleteUserRecords removes all records for a user.
func (h *BehaviorHandler) DeleteUserRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}

	deleted, err := h.store.DeleteUserRecords(r.Context(), userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete records", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "Behavior records deleted successfully",
		"records_deleted": deleted,
	})
}
