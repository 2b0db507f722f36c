package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mirrorme/mirrord/internal/analysis"
	"github.com/mirrorme/mirrord/internal/narrative"
	"github.com/mirrorme/mirrord/internal/storage"
	"github.com/mirrorme/mirrord/internal/taxonomy"
)

// PersonaHandler serves full persona analysis and quick insights.
type PersonaHandler struct {
	store      *storage.Store
	generator  *narrative.Generator
	windowDays int
}

// NewPersonaHandler creates a new persona handler
func NewPersonaHandler(store *storage.Store, generator *narrative.Generator, windowDays int) *PersonaHandler {
	return &PersonaHandler{
		store:      store,
		generator:  generator,
		windowDays: windowDays,
	}
}

// Analyze runs the full persona pipeline over the user's window and attaches
// the generated narrative summary.
func (h *PersonaHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID           string `json:"user_id"`
		DaysBack         int    `json:"days_back"`
		IncludeSensitive bool   `json:"include_sensitive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if payload.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "Missing user_id", nil)
		return
	}
	days := payload.DaysBack
	if days < 1 {
		days = h.windowDays
	}

	records, err := h.store.Records(r.Context(), storage.Query{
		UserID:           payload.UserID,
		Since:            time.Now().UTC().AddDate(0, 0, -days),
		IncludeSensitive: payload.IncludeSensitive,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	profile := analysis.BuildProfile(payload.UserID, records)
	if len(records) > 0 {
		profile.Narrative, profile.NarrativeProvider = h.generator.PersonaSummary(
			r.Context(), profile.Topics, profile.Sentiment)
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// Insights returns quick persona highlights without the narrative call.
func (h *PersonaHandler) Insights(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}
	days := daysBackParam(r, h.windowDays)

	records, err := h.store.Records(r.Context(), storage.Query{
		UserID: userID,
		Since:  time.Now().UTC().AddDate(0, 0, -days),
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	if len(records) == 0 {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "No persona data available. Run analysis first.",
			"has_data": false,
		})
		return
	}

	topics := analysis.TopicCounts(records)
	sentiment := analysis.SentimentDistribution(records)
	political := analysis.PoliticalDistribution(records)
	platforms := analysis.PlatformSummaries(records)

	topTopics := make([]string, 0, 5)
	for _, tc := range taxonomy.Top(topics, 5) {
		topTopics = append(topTopics, tc.Topic)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"top_topics":         topTopics,
		"personality_traits": analysis.DeriveTraits(records, topics, sentiment, political),
		"insights":           analysis.DeriveInsights(records, topics, sentiment, political, platforms),
		"data_points_count":  len(records),
		"has_data":           true,
	})
}
