package models

// TopicExposure aggregates how much and through which channels a topic
// reached the user.
type TopicExposure struct {
	Topic     string         `json:"topic"`
	Total     int            `json:"total"`
	Platforms map[string]int `json:"platforms"`
	Sentiment map[string]int `json:"sentiment"`
	Political map[string]int `json:"political"`
}

// BiasSignal describes the dominant label of an exposure breakdown.
// Detected is set when one label holds more than 60% of the labeled counts.
type BiasSignal struct {
	Detected     bool               `json:"detected"`
	Dominant     string             `json:"dominant,omitempty"`
	Share        float64            `json:"share,omitempty"` // percent
	Distribution map[string]float64 `json:"distribution,omitempty"`
}

// PushedTopic flags a topic taking a disproportionate share of matched
// interactions, together with any label skew riding on it.
type PushedTopic struct {
	Topic         string         `json:"topic"`
	SharePercent  float64        `json:"share_percent"`
	SentimentBias BiasSignal     `json:"sentiment_bias"`
	PoliticalBias BiasSignal     `json:"political_bias"`
	Platforms     map[string]int `json:"platform_breakdown"`
	Warning       string         `json:"warning"`
}

// CoordinatedTopic flags a topic whose per-platform exposure counts are
// suspiciously uniform across multiple platforms.
type CoordinatedTopic struct {
	Topic     string   `json:"topic"`
	Platforms []string `json:"platforms"`
	Total     int      `json:"total"`
	Strength  float64  `json:"strength"` // mean/variance ratio, capped at 100
	Warning   string   `json:"warning"`
}

// TopicBiasReport is the full output of the topic bias detection pass.
type TopicBiasReport struct {
	UserID            string                   `json:"user_id"`
	TotalMatched      int                      `json:"total_matched"`
	Exposure          map[string]TopicExposure `json:"topic_exposure"`
	PushedTopics      []PushedTopic            `json:"pushed_topics"`
	CoordinatedTopics []CoordinatedTopic       `json:"coordinated_topics"`
}
