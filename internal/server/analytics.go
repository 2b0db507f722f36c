package server

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mirrorme/mirrord/internal/analysis"
	"github.com/mirrorme/mirrord/internal/influence"
	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/narrative"
	"github.com/mirrorme/mirrord/internal/perception"
	"github.com/mirrorme/mirrord/internal/storage"
)

// AnalyticsHandler serves the derived analytics surface.
type AnalyticsHandler struct {
	store      *storage.Store
	generator  *narrative.Generator
	windowDays int
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(store *storage.Store, generator *narrative.Generator, windowDays int) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:      store,
		generator:  generator,
		windowDays: windowDays,
	}
}

// windowRecords loads the analysis batch for a request: the user's records
// inside the trailing window, honoring the privacy flags.
func (h *AnalyticsHandler) windowRecords(r *http.Request, userID string, days int) ([]models.Record, error) {
	return h.store.Records(r.Context(), storage.Query{
		UserID:           userID,
		Since:            time.Now().UTC().AddDate(0, 0, -days),
		IncludeSensitive: boolParam(r, "include_sensitive"),
	})
}

// Enhanced returns political tilt, sentiment, platform behavior and
// engagement pattern counts for the window.
func (h *AnalyticsHandler) Enhanced(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}
	days := daysBackParam(r, h.windowDays)

	records, err := h.windowRecords(r, userID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	if len(records) == 0 {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"political_tilt":         models.Distribution{"neutral": 1.0},
			"platform_behavior":      map[string]interface{}{},
			"sentiment_distribution": map[string]interface{}{},
			"engagement_patterns":    map[string]interface{}{},
			"data_points":            0,
		})
		return
	}

	searches, social, video := 0, 0, 0
	for _, rec := range records {
		switch {
		case rec.BehaviorType == "search":
			searches++
		case strings.HasPrefix(rec.BehaviorType, "tweet_"):
			social++
		case strings.HasPrefix(rec.BehaviorType, "youtube_"):
			video++
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"political_tilt":         analysis.PoliticalDistribution(records),
		"sentiment_distribution": analysis.SentimentDistribution(records),
		"platform_behavior":      analysis.PlatformSummaries(records),
		"engagement_patterns": map[string]int{
			"searches":            searches,
			"social_interactions": social,
			"video_consumption":   video,
			"total_sessions":      len(records),
		},
		"data_points":          len(records),
		"analysis_period_days": days,
	})
}

// DigitalAvatars returns the platform persona facets for the window.
func (h *AnalyticsHandler) DigitalAvatars(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}
	days := daysBackParam(r, h.windowDays)

	records, err := h.windowRecords(r, userID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	if len(records) == 0 {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"digital_avatars": []models.Avatar{},
			"message":         "No behavior data available. Start browsing with the extension to generate your digital avatars.",
			"data_points":     0,
		})
		return
	}

	platforms := analysis.PlatformSummaries(records)
	avatars := analysis.BuildAvatars(records, platforms)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"digital_avatars":      avatars,
		"data_points":          len(records),
		"analysis_period_days": days,
		"total_avatars":        len(avatars),
	})
}

// AlgorithmInfluence returns the day-by-day influence timeline and detected
// manipulation patterns.
func (h *AnalyticsHandler) AlgorithmInfluence(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}
	days := daysBackParam(r, h.windowDays)

	records, err := h.windowRecords(r, userID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	report := influence.AnalyzeTimeline(userID, records, days)

	if len(records) == 0 {
		report.Patterns.Recommendations = []string{
			"Collect more browsing data to detect algorithmic influence patterns",
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"report":  report,
			"message": "No behavior data available for algorithm influence analysis",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// TopicBias returns topic exposure, pushed topics and coordination signals.
func (h *AnalyticsHandler) TopicBias(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}
	days := daysBackParam(r, h.windowDays)

	records, err := h.windowRecords(r, userID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	report := influence.DetectTopicBias(userID, records)

	if len(records) == 0 {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"report":  report,
			"message": "No behavior data available for topic bias analysis",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// perceptionResponse is a Perception plus the generated feedback text.
type perceptionResponse struct {
	*perception.Perception
	AIFeedback       string `json:"ai_feedback"`
	FeedbackProvider string `json:"feedback_provider"`
}

// PerceptionAnalysis simulates how one observer archetype reads the user.
func (h *AnalyticsHandler) PerceptionAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}
	perceiver := perception.ParsePerceiver(chi.URLParam(r, "perceiver"))
	days := daysBackParam(r, h.windowDays)

	records, err := h.windowRecords(r, userID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	if len(records) == 0 {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"perceiver_type":     perceiver,
			"overall_impression": "insufficient_data",
			"message":            "Not enough data for perception analysis. Continue using the web to build your digital profile.",
			"recommendations": []string{
				"Use the browser extension to track more online behavior",
				"Engage with diverse content to build a richer profile",
			},
		})
		return
	}

	result := perception.Analyze(perceiver, perception.BuildInputs(records))
	feedback, provider := h.generator.PerceptionFeedback(r.Context(),
		string(result.Perceiver), result.Score, result.Impression,
		result.Positives, result.Negatives, result.RedFlags)

	respondWithJSON(w, http.StatusOK, perceptionResponse{
		Perception:       result,
		AIFeedback:       feedback,
		FeedbackProvider: provider,
	})
}

// PerceptionComparison runs every observer archetype and summarizes the spread.
func (h *AnalyticsHandler) PerceptionComparison(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing user_id parameter", nil)
		return
	}
	days := daysBackParam(r, h.windowDays)

	records, err := h.windowRecords(r, userID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	if len(records) == 0 {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message":     "Not enough data for comparison analysis",
			"perceptions": map[string]interface{}{},
		})
		return
	}

	results := perception.Compare(perception.BuildInputs(records))

	perceptions := make(map[string]*perception.Perception, len(results))
	total := 0
	strongest, concerning := "", ""
	for p, result := range results {
		perceptions[string(p)] = result
		total += result.Score
		if strongest == "" || result.Score > perceptions[strongest].Score ||
			(result.Score == perceptions[strongest].Score && string(p) < strongest) {
			strongest = string(p)
		}
		if concerning == "" || result.Score < perceptions[concerning].Score ||
			(result.Score == perceptions[concerning].Score && string(p) < concerning) {
			concerning = string(p)
		}
	}
	average := float64(total) / float64(len(results))

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"perceptions": perceptions,
		"summary": map[string]interface{}{
			"average_perception_score":   round1(average),
			"strongest_perception":       strongest,
			"most_concerning_perception": concerning,
			"total_behavior_records":     len(records),
		},
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
