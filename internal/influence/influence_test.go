package influence

import (
	"fmt"
	"testing"
	"time"

	"github.com/mirrorme/mirrord/internal/models"
)

func recOn(daysAgo int, behaviorType string, opts ...func(*models.Record)) models.Record {
	r := models.Record{
		ID:           fmt.Sprintf("r-%d", daysAgo),
		UserID:       "u1",
		BehaviorType: behaviorType,
		Timestamp:    time.Now().AddDate(0, 0, -daysAgo),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func tilted(tilt string) func(*models.Record) {
	return func(r *models.Record) { r.Tilt = tilt }
}

func sentimented(s string) func(*models.Record) {
	return func(r *models.Record) { r.Sentiment = s }
}

func keyed(kws ...string) func(*models.Record) {
	return func(r *models.Record) { r.Keywords = kws }
}

func TestAnalyzeTimelineShortWindow(t *testing.T) {
	// Two active days only: below the detection minimum.
	records := []models.Record{
		recOn(1, "search", tilted("left")),
		recOn(2, "search", tilted("right")),
	}

	report := AnalyzeTimeline("u1", records, 30)

	if len(report.Timeline) != 2 {
		t.Fatalf("timeline days = %d, want 2", len(report.Timeline))
	}
	if report.Patterns.BiasReinforcement {
		t.Error("bias reinforcement must not trigger below 3 days")
	}
	if report.Patterns.PolarizationTrend != "stable" {
		t.Errorf("trend = %q, want stable", report.Patterns.PolarizationTrend)
	}
	if report.Patterns.SentimentManipulation {
		t.Error("sentiment manipulation must not trigger below 3 days")
	}
}

func TestAnalyzeTimelinePolarizationIncrease(t *testing.T) {
	// 14 active days: first week neutral, last week strongly left.
	var records []models.Record
	for day := 14; day >= 8; day-- {
		records = append(records, recOn(day, "search", tilted("neutral")))
	}
	for day := 7; day >= 1; day-- {
		records = append(records, recOn(day, "tweet_view", tilted("left")))
	}

	report := AnalyzeTimeline("u1", records, 30)

	if !report.Patterns.BiasReinforcement {
		t.Error("expected bias reinforcement")
	}
	if report.Patterns.PolarizationTrend != "increasing" {
		t.Errorf("trend = %q, want increasing", report.Patterns.PolarizationTrend)
	}
	if len(report.Patterns.Recommendations) == 0 {
		t.Error("expected a recommendation")
	}
}

func TestAnalyzeTimelineSentimentVolatility(t *testing.T) {
	// Alternate fully positive and fully negative days in the last week.
	var records []models.Record
	for day := 6; day >= 1; day-- {
		s := "positive"
		if day%2 == 0 {
			s = "negative"
		}
		records = append(records, recOn(day, "search", sentimented(s)))
	}

	report := AnalyzeTimeline("u1", records, 30)

	if !report.Patterns.SentimentManipulation {
		t.Error("expected sentiment manipulation detection")
	}
}

func TestAnalyzeTimelineEchoChamber(t *testing.T) {
	// Recent week dominated by one topic.
	var records []models.Record
	for day := 5; day >= 1; day-- {
		records = append(records, recOn(day, "search", keyed("crypto", "stock")))
	}
	records = append(records, recOn(3, "search", keyed("movie")))

	report := AnalyzeTimeline("u1", records, 30)

	if len(report.Patterns.EchoChambers) != 1 {
		t.Fatalf("echo chambers = %v, want exactly finance", report.Patterns.EchoChambers)
	}
	chamber := report.Patterns.EchoChambers[0]
	if chamber.Topic != "finance" {
		t.Errorf("topic = %q, want finance", chamber.Topic)
	}
	if chamber.Concentration <= 40 {
		t.Errorf("concentration = %v, want > 40", chamber.Concentration)
	}
}

func TestAnalyzeTimelinePlatformBias(t *testing.T) {
	// Twitter active on 5 strongly left days.
	var records []models.Record
	for day := 5; day >= 1; day-- {
		records = append(records, recOn(day, "tweet_view", tilted("left")))
	}

	report := AnalyzeTimeline("u1", records, 30)

	if len(report.Patterns.PlatformBias) != 1 {
		t.Fatalf("platform bias = %v, want one warning", report.Patterns.PlatformBias)
	}
	warning := report.Patterns.PlatformBias[0]
	if warning.Platform != "twitter" || warning.Leaning != "left-leaning" {
		t.Errorf("warning = %+v", warning)
	}
	if warning.Strength <= 15 {
		t.Errorf("strength = %v, want > 15", warning.Strength)
	}
}

func TestDetectTopicBiasPushedThreshold(t *testing.T) {
	// 40 matched keywords: finance at exactly 20% stays out, technology
	// at 80% is flagged.
	var records []models.Record
	for i := 0; i < 8; i++ {
		records = append(records, recOn(1, "search", keyed("crypto")))
	}
	for i := 0; i < 32; i++ {
		records = append(records, recOn(1, "search", keyed("software")))
	}

	report := DetectTopicBias("u1", records)

	if report.TotalMatched != 40 {
		t.Fatalf("total matched = %d, want 40", report.TotalMatched)
	}
	if len(report.PushedTopics) != 1 {
		t.Fatalf("pushed topics = %v, want only technology", report.PushedTopics)
	}
	pushed := report.PushedTopics[0]
	if pushed.Topic != "technology" {
		t.Errorf("pushed topic = %q, want technology", pushed.Topic)
	}
	if pushed.SharePercent != 80.0 {
		t.Errorf("share = %v, want 80", pushed.SharePercent)
	}
	// finance sits exactly at the 20% threshold and must stay out
	for _, p := range report.PushedTopics {
		if p.Topic == "finance" {
			t.Error("finance at exactly 20% must not be flagged")
		}
	}
}

func TestDetectTopicBiasSignals(t *testing.T) {
	var records []models.Record
	for i := 0; i < 8; i++ {
		records = append(records, recOn(1, "search", keyed("crypto"), sentimented("negative"), tilted("right")))
	}
	for i := 0; i < 2; i++ {
		records = append(records, recOn(1, "search", keyed("crypto"), sentimented("positive")))
	}

	report := DetectTopicBias("u1", records)

	if len(report.PushedTopics) != 1 {
		t.Fatalf("pushed topics = %v", report.PushedTopics)
	}
	pushed := report.PushedTopics[0]
	if !pushed.SentimentBias.Detected || pushed.SentimentBias.Dominant != "negative" {
		t.Errorf("sentiment bias = %+v, want negative dominant", pushed.SentimentBias)
	}
	if !pushed.PoliticalBias.Detected || pushed.PoliticalBias.Dominant != "right" {
		t.Errorf("political bias = %+v, want right dominant", pushed.PoliticalBias)
	}
}

func TestDetectCoordinationEvenSpread(t *testing.T) {
	// Same topic pushed with identical counts on two platforms: zero
	// variance reports the capped strength.
	var records []models.Record
	for i := 0; i < 6; i++ {
		records = append(records, recOn(1, "search", keyed("crypto")))
		records = append(records, recOn(1, "tweet_view", keyed("crypto")))
	}

	report := DetectTopicBias("u1", records)

	if len(report.CoordinatedTopics) != 1 {
		t.Fatalf("coordinated topics = %v, want one", report.CoordinatedTopics)
	}
	topic := report.CoordinatedTopics[0]
	if topic.Topic != "finance" || topic.Total != 12 {
		t.Errorf("coordinated = %+v", topic)
	}
	if topic.Strength != maxCoordinationStrength {
		t.Errorf("strength = %v, want capped at %v", topic.Strength, maxCoordinationStrength)
	}
}

func TestDetectCoordinationUnevenSpread(t *testing.T) {
	// Heavy skew toward one platform: variance too high to flag.
	var records []models.Record
	for i := 0; i < 11; i++ {
		records = append(records, recOn(1, "search", keyed("crypto")))
	}
	records = append(records, recOn(1, "tweet_view", keyed("crypto")))

	report := DetectTopicBias("u1", records)

	if len(report.CoordinatedTopics) != 0 {
		t.Errorf("coordinated topics = %v, want none", report.CoordinatedTopics)
	}
}
