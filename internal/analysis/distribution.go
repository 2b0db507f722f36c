// Package analysis derives persona aggregates from labeled behavior records:
// topic counts, sentiment and political distributions, per-platform summaries,
// the interest network, personality traits, avatars and textual insights.
//
// Everything here is deterministic and heuristic. No call leaves the process;
// the narrative layer is the only component with an external dependency.
package analysis

import (
	"github.com/mirrorme/mirrord/internal/models"
)

// SentimentDistribution computes the normalized sentiment shares of a batch.
// Only labeled records count toward the denominator. Every sentiment label is
// present in the result, at 0.0 when unobserved. A batch with no labeled
// records yields {"neutral": 1.0}.
func SentimentDistribution(records []models.Record) models.Distribution {
	counts := map[string]int{
		models.SentimentPositive: 0,
		models.SentimentNegative: 0,
		models.SentimentNeutral:  0,
	}
	labeled := 0
	for _, r := range records {
		if r.Sentiment == "" {
			continue
		}
		counts[r.Sentiment]++
		labeled++
	}
	return normalize(counts, labeled)
}

// PoliticalDistribution computes the normalized political tilt shares of a
// batch, with the same labeled-only denominator and all-labels-present rules
// as sentiment.
func PoliticalDistribution(records []models.Record) models.Distribution {
	counts := map[string]int{
		models.TiltLeft:    0,
		models.TiltRight:   0,
		models.TiltNeutral: 0,
	}
	labeled := 0
	for _, r := range records {
		if r.Tilt == "" {
			continue
		}
		counts[r.Tilt]++
		labeled++
	}
	return normalize(counts, labeled)
}

func normalize(counts map[string]int, total int) models.Distribution {
	if total == 0 {
		return models.Distribution{"neutral": 1.0}
	}
	dist := make(models.Distribution, len(counts))
	for label, n := range counts {
		dist[label] = float64(n) / float64(total)
	}
	return dist
}
