// Package perception simulates how different observers would read a user's
// behavior batch: human perceivers (recruiter, romantic partner, colleague,
// family member) and machine perceivers (advertiser, content feeder, data
// broker, AI system), plus a general-public baseline.
//
// Every variant runs the same shape of computation: a signed score delta
// accumulated from threshold rules, clamped into [0,100] around a base of 50,
// then bucketed into a variant-specific impression label.
package perception

import (
	"sort"
	"strings"

	"github.com/mirrorme/mirrord/internal/analysis"
	"github.com/mirrorme/mirrord/internal/models"
)

// Perceiver identifies a simulated observer.
type Perceiver string

const (
	Recruiter       Perceiver = "recruiter"
	RomanticPartner Perceiver = "romantic_partner"
	Colleague       Perceiver = "colleague"
	FamilyMember    Perceiver = "family_member"
	Advertiser      Perceiver = "advertiser"
	ContentFeeder   Perceiver = "content_feeder"
	DataBroker      Perceiver = "data_broker"
	AISystem        Perceiver = "ai_system"
	General         Perceiver = "general_public"
)

// Perceivers lists every simulated observer in comparison order.
var Perceivers = []Perceiver{
	Recruiter, RomanticPartner, Colleague, FamilyMember,
	Advertiser, ContentFeeder, DataBroker, AISystem,
}

// ParsePerceiver maps a request string to a Perceiver. Unknown values fall
// back to the general-public baseline.
func ParsePerceiver(s string) Perceiver {
	switch Perceiver(strings.ToLower(strings.TrimSpace(s))) {
	case Recruiter, RomanticPartner, Colleague, FamilyMember,
		Advertiser, ContentFeeder, DataBroker, AISystem:
		return Perceiver(strings.ToLower(strings.TrimSpace(s)))
	default:
		return General
	}
}

// ScoreLabel names the score field of a variant, e.g. "hire_likelihood".
func (p Perceiver) ScoreLabel() string {
	switch p {
	case Recruiter:
		return "hire_likelihood"
	case RomanticPartner:
		return "compatibility_score"
	case Colleague:
		return "collaboration_score"
	case FamilyMember:
		return "family_harmony_score"
	case Advertiser:
		return "targeting_value"
	case ContentFeeder:
		return "engagement_score"
	case DataBroker:
		return "data_value"
	case AISystem:
		return "ai_confidence"
	default:
		return "public_perception_score"
	}
}

// Perception is the uniform result shape shared by all variants. The
// Positives/Negatives buckets carry variant-specific labels so API clients
// can render them with the observer's vocabulary.
type Perception struct {
	Perceiver     Perceiver `json:"perceiver_type"`
	Impression    string    `json:"overall_impression"`
	Score         int       `json:"score"`
	ScoreLabel    string    `json:"score_label"`
	PositiveLabel string    `json:"positive_label"`
	NegativeLabel string    `json:"negative_label"`

	Positives       []string `json:"positives"`
	Negatives       []string `json:"negatives"`
	RedFlags        []string `json:"red_flags"`
	Insights        []string `json:"insights,omitempty"`
	Recommendations []string `json:"recommendations"`

	CommunicationStyle string `json:"communication_style,omitempty"`

	Detail map[string]any `json:"detailed_analysis"`
}

// Inputs holds the pre-aggregated signals every scorer reads.
type Inputs struct {
	TopicCounts      map[string]int
	Sentiment        models.Distribution
	Political        models.Distribution
	PlatformActivity map[string]int
	TimePatterns     map[int]int // hour of day -> count
	ContentSamples   []string
}

// BuildInputs aggregates a record batch into scorer inputs.
func BuildInputs(records []models.Record) Inputs {
	in := Inputs{
		PlatformActivity: make(map[string]int),
		TimePatterns:     make(map[int]int),
	}
	var keywords []string
	for _, r := range records {
		keywords = append(keywords, r.Keywords...)
		if r.Content != "" {
			in.ContentSamples = append(in.ContentSamples, models.TruncateContent(r.Content))
		}
		in.PlatformActivity[analysis.PlatformOf(r)]++
		in.TimePatterns[r.Timestamp.Hour()]++
	}
	in.TopicCounts = analysis.TopicCounts(records)
	in.Sentiment = analysis.SentimentDistribution(records)
	in.Political = analysis.PoliticalDistribution(records)
	return in
}

// Analyze runs the scorer for one perceiver.
func Analyze(p Perceiver, in Inputs) *Perception {
	switch p {
	case Recruiter:
		return recruiterPerception(in)
	case RomanticPartner:
		return romanticPerception(in)
	case Colleague:
		return colleaguePerception(in)
	case FamilyMember:
		return familyPerception(in)
	case Advertiser:
		return advertiserPerception(in)
	case ContentFeeder:
		return contentFeederPerception(in)
	case DataBroker:
		return dataBrokerPerception(in)
	case AISystem:
		return aiSystemPerception(in)
	default:
		return generalPerception(in)
	}
}

// Compare runs every perceiver over the same inputs.
func Compare(in Inputs) map[Perceiver]*Perception {
	out := make(map[Perceiver]*Perception, len(Perceivers))
	for _, p := range Perceivers {
		out[p] = Analyze(p, in)
	}
	return out
}

func clampScore(delta int) int {
	score := delta + 50
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func (in Inputs) totalTopicHits() int {
	total := 0
	for _, n := range in.TopicCounts {
		total += n
	}
	if total == 0 {
		return 1
	}
	return total
}

func (in Inputs) totalActivity() int {
	total := 0
	for _, n := range in.PlatformActivity {
		total += n
	}
	if total == 0 {
		return 1
	}
	return total
}

func (in Inputs) topicShare(topics ...string) float64 {
	sum := 0
	for _, t := range topics {
		sum += in.TopicCounts[t]
	}
	return float64(sum) / float64(in.totalTopicHits())
}

func (in Inputs) samplesMatching(patterns []string, limit int) int {
	samples := in.ContentSamples
	if limit > 0 && len(samples) > limit {
		samples = samples[:limit]
	}
	count := 0
	for _, sample := range samples {
		lower := strings.ToLower(sample)
		for _, p := range patterns {
			if strings.Contains(lower, p) {
				count++
				break
			}
		}
	}
	return count
}

func peakHour(timePatterns map[int]int) (int, int) {
	bestHour, bestCount := 12, 0
	hours := make([]int, 0, len(timePatterns))
	for h := range timePatterns {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		if timePatterns[h] > bestCount {
			bestHour, bestCount = h, timePatterns[h]
		}
	}
	return bestHour, bestCount
}

func hourRangeShare(timePatterns map[int]int, from, to int) float64 {
	total := 0
	window := 0
	for hour, n := range timePatterns {
		total += n
		if hour >= from && hour < to {
			window += n
		}
	}
	if total == 0 {
		return 0
	}
	return float64(window) / float64(total)
}
