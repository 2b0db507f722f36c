package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mirrorme/mirrord/internal/config"
	"github.com/mirrorme/mirrord/internal/narrative"
	"github.com/mirrorme/mirrord/internal/storage"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	generator := narrative.NewGenerator(nil, 0, time.Second)

	return NewRouter(
		config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           0,
			RequestTimeout: 10 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		config.AnalysisConfig{DefaultWindowDays: 30, MaxBatchSize: 10},
		store,
		generator,
	)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func recordBody(userID string, overrides map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{
		"user_id":       userID,
		"source":        "extension",
		"behavior_type": "search",
		"keywords":      []string{"programming"},
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected status: %v", body["status"])
	}
}

func TestLogRecord(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
		recordBody("user-1", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["id"] == "" || body["id"] == nil {
		t.Error("expected a generated record ID")
	}
	if body["include_in_analysis"] != true {
		t.Error("expected include_in_analysis to default to true")
	}
}

func TestLogRecordInvalid(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
		recordBody("user-1", map[string]interface{}{"behavior_type": ""}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogBatch(t *testing.T) {
	router := newTestRouter(t)

	records := make([]map[string]interface{}, 5)
	for i := range records {
		records[i] = recordBody("user-1", nil)
	}

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/behavior/records/batch",
		map[string]interface{}{"records": records})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["records_created"] != float64(5) {
		t.Errorf("expected 5 records created, got %v", body["records_created"])
	}
}

func TestLogBatchTooLarge(t *testing.T) {
	router := newTestRouter(t)

	records := make([]map[string]interface{}, 11)
	for i := range records {
		records[i] = recordBody("user-1", nil)
	}

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/behavior/records/batch",
		map[string]interface{}{"records": records})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListRecords(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 3; i++ {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
			recordBody("user-1", nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed record failed: %d", rec.Code)
		}
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/behavior/records?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["count"] != float64(3) {
		t.Errorf("expected 3 records, got %v", body["count"])
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/behavior/records", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without user_id, got %d", rec.Code)
	}
}

func TestUpdateAndDeleteRecord(t *testing.T) {
	router := newTestRouter(t)

	_, created := doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
		recordBody("user-1", nil))
	id := created["id"].(string)

	rec, body := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/behavior/records/%s/sensitivity", id),
		map[string]interface{}{"user_id": "user-1", "is_sensitive": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("sensitivity update failed: %d: %s", rec.Code, rec.Body.String())
	}
	if body["message"] != "Sensitivity updated successfully" {
		t.Errorf("unexpected message: %v", body["message"])
	}

	// Sensitive records drop out of the default listing.
	_, listed := doJSON(t, router, http.MethodGet, "/api/v1/behavior/records?user_id=user-1", nil)
	if listed["count"] != float64(0) {
		t.Errorf("expected sensitive record hidden, got count %v", listed["count"])
	}
	_, listed = doJSON(t, router, http.MethodGet,
		"/api/v1/behavior/records?user_id=user-1&include_sensitive=true", nil)
	if listed["count"] != float64(1) {
		t.Errorf("expected sensitive record with flag, got count %v", listed["count"])
	}

	rec, _ = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/behavior/records/%s/analysis", id),
		map[string]interface{}{"user_id": "user-1", "include_in_analysis": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("inclusion update failed: %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/behavior/records/%s?user_id=user-1", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/behavior/records/%s?user_id=user-1", id), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestDeleteUserRecords(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 2; i++ {
		doJSON(t, router, http.MethodPost, "/api/v1/behavior/records", recordBody("user-1", nil))
	}

	rec, body := doJSON(t, router, http.MethodDelete, "/api/v1/behavior/records?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["records_deleted"] != float64(2) {
		t.Errorf("expected 2 deleted, got %v", body["records_deleted"])
	}
}

func TestEnhancedAnalytics(t *testing.T) {
	router := newTestRouter(t)

	// Empty window returns the neutral default.
	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/analytics/enhanced?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["data_points"] != float64(0) {
		t.Errorf("expected 0 data points, got %v", body["data_points"])
	}

	doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
		recordBody("user-1", map[string]interface{}{"sentiment": "positive"}))
	doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
		recordBody("user-1", map[string]interface{}{"behavior_type": "tweet_like", "sentiment": "positive"}))

	rec, body = doJSON(t, router, http.MethodGet, "/api/v1/analytics/enhanced?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["data_points"] != float64(2) {
		t.Errorf("expected 2 data points, got %v", body["data_points"])
	}
	patterns := body["engagement_patterns"].(map[string]interface{})
	if patterns["searches"] != float64(1) || patterns["social_interactions"] != float64(1) {
		t.Errorf("unexpected engagement patterns: %v", patterns)
	}
	sentiment := body["sentiment_distribution"].(map[string]interface{})
	if sentiment["positive"] != float64(1) {
		t.Errorf("unexpected sentiment distribution: %v", sentiment)
	}
}

func TestDigitalAvatarsEmpty(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet,
		"/api/v1/analytics/digital-avatars?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["message"] == nil {
		t.Error("expected guidance message for empty window")
	}
}

func TestDigitalAvatars(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 4; i++ {
		doJSON(t, router, http.MethodPost, "/api/v1/behavior/records", recordBody("user-1", nil))
	}

	rec, body := doJSON(t, router, http.MethodGet,
		"/api/v1/analytics/digital-avatars?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	avatars := body["digital_avatars"].([]interface{})
	if len(avatars) == 0 {
		t.Fatal("expected at least one avatar for a search-heavy batch")
	}
	first := avatars[0].(map[string]interface{})
	if first["name"] != "The Searcher" {
		t.Errorf("expected search persona first, got %v", first["name"])
	}
}

func TestAlgorithmInfluence(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet,
		"/api/v1/analytics/algorithm-influence?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["message"] == nil {
		t.Error("expected empty-window message")
	}

	doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
		recordBody("user-1", map[string]interface{}{"political_tilt": "left"}))

	rec, body = doJSON(t, router, http.MethodGet,
		"/api/v1/analytics/algorithm-influence?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["timeline"] == nil {
		t.Error("expected a timeline in the report")
	}
	patterns := body["patterns"].(map[string]interface{})
	if patterns["polarization_trend"] != "stable" {
		t.Errorf("expected stable trend for one day of data, got %v", patterns["polarization_trend"])
	}
}

func TestTopicBias(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 3; i++ {
		doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
			recordBody("user-1", map[string]interface{}{"keywords": []string{"crypto"}}))
	}

	rec, body := doJSON(t, router, http.MethodGet,
		"/api/v1/analytics/topic-bias-detection?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	exposure := body["topic_exposure"].(map[string]interface{})
	if exposure["finance"] == nil {
		t.Errorf("expected finance exposure, got %v", exposure)
	}
}

func TestPerceptionAnalysis(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet,
		"/api/v1/analytics/perception-analysis/recruiter?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["overall_impression"] != "insufficient_data" {
		t.Errorf("expected insufficient_data, got %v", body["overall_impression"])
	}

	for i := 0; i < 3; i++ {
		doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
			recordBody("user-1", map[string]interface{}{"keywords": []string{"career", "programming"}}))
	}

	rec, body = doJSON(t, router, http.MethodGet,
		"/api/v1/analytics/perception-analysis/recruiter?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["perceiver_type"] != "recruiter" {
		t.Errorf("unexpected perceiver: %v", body["perceiver_type"])
	}
	if body["score_label"] != "hire_likelihood" {
		t.Errorf("unexpected score label: %v", body["score_label"])
	}
	// No providers configured, so feedback comes from the template path.
	if body["feedback_provider"] != "template" {
		t.Errorf("expected template feedback, got %v", body["feedback_provider"])
	}
	if body["ai_feedback"] == "" || body["ai_feedback"] == nil {
		t.Error("expected non-empty feedback text")
	}
}

func TestPerceptionComparison(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 3; i++ {
		doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
			recordBody("user-1", map[string]interface{}{"keywords": []string{"software"}}))
	}

	rec, body := doJSON(t, router, http.MethodGet,
		"/api/v1/analytics/perception-comparison?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	perceptions := body["perceptions"].(map[string]interface{})
	if len(perceptions) != 8 {
		t.Errorf("expected 8 perceptions, got %d", len(perceptions))
	}
	summary := body["summary"].(map[string]interface{})
	if summary["average_perception_score"] == nil {
		t.Error("expected an average score in the summary")
	}
	if summary["strongest_perception"] == "" {
		t.Error("expected a strongest perception")
	}
}

func TestPersonaAnalyze(t *testing.T) {
	router := newTestRouter(t)

	// Empty window still returns a neutral profile.
	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/persona/analyze",
		map[string]interface{}{"user_id": "user-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["total_records"] != float64(0) {
		t.Errorf("expected 0 records, got %v", body["total_records"])
	}
	if body["narrative_provider"] != "template" {
		t.Errorf("expected template provider, got %v", body["narrative_provider"])
	}

	for i := 0; i < 3; i++ {
		doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
			recordBody("user-1", map[string]interface{}{"keywords": []string{"fitness"}}))
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/v1/persona/analyze",
		map[string]interface{}{"user_id": "user-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["total_records"] != float64(3) {
		t.Errorf("expected 3 records, got %v", body["total_records"])
	}
	if body["narrative"] == "" || body["narrative"] == nil {
		t.Error("expected a narrative summary")
	}
	topics := body["topics"].(map[string]interface{})
	if topics["health"] != float64(3) {
		t.Errorf("expected health topic count 3, got %v", topics["health"])
	}
}

func TestPersonaInsights(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/persona/insights?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["has_data"] != false {
		t.Errorf("expected has_data false, got %v", body["has_data"])
	}

	doJSON(t, router, http.MethodPost, "/api/v1/behavior/records",
		recordBody("user-1", map[string]interface{}{"keywords": []string{"investment"}}))

	rec, body = doJSON(t, router, http.MethodGet, "/api/v1/persona/insights?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["has_data"] != true {
		t.Errorf("expected has_data true, got %v", body["has_data"])
	}
	topTopics := body["top_topics"].([]interface{})
	if len(topTopics) == 0 || topTopics[0] != "finance" {
		t.Errorf("expected finance as top topic, got %v", topTopics)
	}
}
