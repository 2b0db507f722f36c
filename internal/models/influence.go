package models

// TimelinePoint is the per-day aggregate of the influence timeline.
// Percentages are relative to the day's total interactions.
type TimelinePoint struct {
	Date              string         `json:"date"` // YYYY-MM-DD
	TotalInteractions int            `json:"total_interactions"`
	PoliticalLeft     float64        `json:"political_left"`
	PoliticalRight    float64        `json:"political_right"`
	PoliticalNeutral  float64        `json:"political_neutral"`
	SentimentPositive float64        `json:"sentiment_positive"`
	SentimentNegative float64        `json:"sentiment_negative"`
	SentimentNeutral  float64        `json:"sentiment_neutral"`
	Platforms         map[string]int `json:"platform_distribution"`
	Topics            map[string]int `json:"topic_distribution"`
}

// EchoChamber flags a topic dominating recent activity.
type EchoChamber struct {
	Topic         string  `json:"topic"`
	Concentration float64 `json:"concentration"` // share of recent topic mentions, in percent
	Warning       string  `json:"warning"`
}

// PlatformBiasWarning flags a platform whose usage days skew politically.
type PlatformBiasWarning struct {
	Platform string  `json:"platform"`
	Leaning  string  `json:"leaning"` // "left-leaning" or "right-leaning"
	Strength float64 `json:"strength"`
	Warning  string  `json:"warning"`
}

// InfluencePatterns holds the detection results over the timeline.
type InfluencePatterns struct {
	BiasReinforcement     bool                  `json:"bias_reinforcement"`
	PolarizationTrend     string                `json:"polarization_trend"` // "increasing", "moderating", "stable"
	SentimentManipulation bool                  `json:"sentiment_manipulation"`
	EchoChambers          []EchoChamber         `json:"echo_chambers"`
	PlatformBias          []PlatformBiasWarning `json:"platform_bias"`
	Recommendations       []string              `json:"recommendations"`
}

// InfluenceReport is the full output of the influence timeline analysis.
type InfluenceReport struct {
	UserID         string            `json:"user_id"`
	DaysAnalyzed   int               `json:"days_analyzed"`
	Timeline       []TimelinePoint   `json:"timeline"`
	PoliticalTrend []float64         `json:"political_trend"` // left% - right% per day, ascending date
	SentimentTrend []float64         `json:"sentiment_trend"` // positive% - negative% per day, ascending date
	Patterns       InfluencePatterns `json:"patterns"`
}
