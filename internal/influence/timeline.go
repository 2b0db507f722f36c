// Package influence analyzes behavior over time for signs of algorithmic
// steering: polarization drift, sentiment volatility, topic echo chambers,
// per-platform political skew and cross-platform topic pushing.
//
// All detections are threshold heuristics over the per-day timeline. Fewer
// than three timeline days yields a stable, empty-pattern report.
package influence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mirrorme/mirrord/internal/analysis"
	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/taxonomy"
)

// AnalyzeTimeline builds the per-day influence timeline and runs pattern
// detection over it. Records are expected pre-filtered to the analysis
// window; daysAnalyzed is echoed into the report.
func AnalyzeTimeline(userID string, records []models.Record, daysAnalyzed int) *models.InfluenceReport {
	byDay := make(map[string]*dayAccum)
	for _, r := range records {
		key := r.Timestamp.Format("2006-01-02")
		day := byDay[key]
		if day == nil {
			day = newDayAccum()
			byDay[key] = day
		}
		day.add(r)
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	timeline := make([]models.TimelinePoint, 0, len(dates))
	var politicalTrend, sentimentTrend []float64
	for _, date := range dates {
		point := byDay[date].point(date)
		timeline = append(timeline, point)
		politicalTrend = append(politicalTrend, point.PoliticalLeft-point.PoliticalRight)
		sentimentTrend = append(sentimentTrend, point.SentimentPositive-point.SentimentNegative)
	}

	return &models.InfluenceReport{
		UserID:         userID,
		DaysAnalyzed:   daysAnalyzed,
		Timeline:       timeline,
		PoliticalTrend: politicalTrend,
		SentimentTrend: sentimentTrend,
		Patterns:       detectPatterns(timeline, politicalTrend, sentimentTrend),
	}
}

type dayAccum struct {
	total     int
	political map[string]int
	sentiment map[string]int
	platforms map[string]int
	topics    map[string]int
}

func newDayAccum() *dayAccum {
	return &dayAccum{
		political: make(map[string]int),
		sentiment: make(map[string]int),
		platforms: make(map[string]int),
		topics:    make(map[string]int),
	}
}

func (d *dayAccum) add(r models.Record) {
	d.total++
	if r.Tilt != "" {
		d.political[r.Tilt]++
	}
	if r.Sentiment != "" {
		d.sentiment[r.Sentiment]++
	}
	d.platforms[analysis.PlatformOf(r)]++
	for _, kw := range r.Keywords {
		if topic := taxonomy.FirstMatch(kw); topic != "" {
			d.topics[topic]++
		}
	}
}

func (d *dayAccum) point(date string) models.TimelinePoint {
	pct := func(n int) float64 {
		return float64(n) / float64(d.total) * 100
	}
	return models.TimelinePoint{
		Date:              date,
		TotalInteractions: d.total,
		PoliticalLeft:     pct(d.political["left"]),
		PoliticalRight:    pct(d.political["right"]),
		PoliticalNeutral:  pct(d.political["neutral"]),
		SentimentPositive: pct(d.sentiment["positive"]),
		SentimentNegative: pct(d.sentiment["negative"]),
		SentimentNeutral:  pct(d.sentiment["neutral"]),
		Platforms:         d.platforms,
		Topics:            d.topics,
	}
}

func detectPatterns(timeline []models.TimelinePoint, politicalTrend, sentimentTrend []float64) models.InfluencePatterns {
	patterns := models.InfluencePatterns{
		PolarizationTrend: "stable",
		EchoChambers:      []models.EchoChamber{},
		PlatformBias:      []models.PlatformBiasWarning{},
		Recommendations:   []string{},
	}
	if len(politicalTrend) < 3 {
		return patterns
	}

	recent := tail(politicalTrend, 7)
	var early []float64
	if len(politicalTrend) >= 14 {
		early = politicalTrend[:7]
	} else {
		early = politicalTrend[:len(politicalTrend)/2]
	}

	if len(recent) >= 3 && len(early) >= 3 {
		change := abs(mean(recent)) - abs(mean(early))
		if change > 10 {
			patterns.BiasReinforcement = true
			patterns.PolarizationTrend = "increasing"
			patterns.Recommendations = append(patterns.Recommendations,
				"Your content consumption is becoming more politically polarized. Consider diversifying your sources.")
		} else if change < -5 {
			patterns.PolarizationTrend = "moderating"
		}
	}

	recentSentiment := tail(sentimentTrend, 7)
	if len(recentSentiment) >= 3 {
		volatility := maxOf(recentSentiment) - minOf(recentSentiment)
		if volatility > 30 {
			patterns.SentimentManipulation = true
			patterns.Recommendations = append(patterns.Recommendations,
				"Your emotional responses to content show high volatility. Algorithms may be triggering strong reactions.")
		}
	}

	recentPoints := timeline
	if len(recentPoints) > 7 {
		recentPoints = recentPoints[len(recentPoints)-7:]
	}

	patterns.EchoChambers = detectEchoChambers(recentPoints)
	patterns.PlatformBias = detectPlatformBias(recentPoints)
	return patterns
}

func detectEchoChambers(recentPoints []models.TimelinePoint) []models.EchoChamber {
	concentrations := make(map[string]int)
	total := 0
	for _, point := range recentPoints {
		for topic, count := range point.Topics {
			concentrations[topic] += count
			total += count
		}
	}
	if total == 0 {
		return []models.EchoChamber{}
	}

	topics := make([]string, 0, len(concentrations))
	for topic := range concentrations {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	chambers := []models.EchoChamber{}
	for _, topic := range topics {
		share := float64(concentrations[topic]) / float64(total) * 100
		if share > 40 {
			chambers = append(chambers, models.EchoChamber{
				Topic:         topic,
				Concentration: share,
				Warning: fmt.Sprintf(
					"You're seeing %.1f%% %s content - algorithms may be creating an echo chamber",
					share, topic),
			})
		}
	}
	return chambers
}

func detectPlatformBias(recentPoints []models.TimelinePoint) []models.PlatformBiasWarning {
	// For each platform active on a day, record that day's overall lean.
	leans := make(map[string][]float64)
	for _, point := range recentPoints {
		dayLean := point.PoliticalLeft - point.PoliticalRight
		for platform := range point.Platforms {
			leans[platform] = append(leans[platform], dayLean)
		}
	}

	platforms := make([]string, 0, len(leans))
	for platform := range leans {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	warnings := []models.PlatformBiasWarning{}
	for _, platform := range platforms {
		shifts := leans[platform]
		if len(shifts) < 3 {
			continue
		}
		avg := mean(shifts)
		if abs(avg) <= 15 {
			continue
		}
		direction := "left"
		leaning := "left-leaning"
		if avg < 0 {
			direction = "right"
			leaning = "right-leaning"
		}
		warnings = append(warnings, models.PlatformBiasWarning{
			Platform: platform,
			Leaning:  leaning,
			Strength: abs(avg),
			Warning: fmt.Sprintf("%s is showing you predominantly %s-leaning content",
				titleCase(platform), direction),
		})
	}
	return warnings
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func tail(values []float64, n int) []float64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
