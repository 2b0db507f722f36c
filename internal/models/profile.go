package models

// Distribution maps a label to its normalized share of labeled records.
// Shares sum to 1.0 when any labeled record exists. A batch with no labeled
// records yields {"neutral": 1.0}.
type Distribution map[string]float64

// Dominant returns the label with the largest share and that share.
// Ties resolve to the lexicographically smallest label so callers get a
// stable answer. An empty distribution returns ("neutral", 0).
func (d Distribution) Dominant() (string, float64) {
	if len(d) == 0 {
		return "neutral", 0
	}
	best := ""
	bestShare := -1.0
	for label, share := range d {
		if share > bestShare || (share == bestShare && label < best) {
			best = label
			bestShare = share
		}
	}
	return best, bestShare
}

// ChannelCount is one entry of a ranked channel list.
type ChannelCount struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

// PlatformSummary aggregates the per-platform activity of a batch.
type PlatformSummary struct {
	Platform     string         `json:"platform"`
	Interactions int            `json:"interactions"`
	Engagement   map[string]int `json:"engagement,omitempty"`
	Sentiment    Distribution   `json:"sentiment,omitempty"`
	Political    Distribution   `json:"political,omitempty"`
	TopChannels  []ChannelCount `json:"top_channels,omitempty"`
}

// InterestNode is one topic in the interest network.
type InterestNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
	Size   float64 `json:"size"`
}

// InterestEdge connects two topics. Edges are reserved for co-occurrence
// analysis and are currently always empty.
type InterestEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// InterestNetwork is the graph-shaped view of topic engagement.
type InterestNetwork struct {
	Nodes             []InterestNode `json:"nodes"`
	Edges             []InterestEdge `json:"edges"`
	TotalInteractions int            `json:"total_interactions"`
}

// Avatar is one behavioral persona facet surfaced from a batch.
type Avatar struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Emoji       string   `json:"emoji"`
	Platform    string   `json:"platform"`
	Strength    float64  `json:"strength"` // share of the batch driving this facet, in [0,1]
	Traits      []string `json:"traits"`
	Interests   []string `json:"interests"`
	Political   string   `json:"political_leaning"`
	Sentiment   string   `json:"emotional_tone"`
	Pattern     string   `json:"behavior_pattern"`
}

// Profile is the full persona aggregate for one analysis pass.
type Profile struct {
	UserID            string                     `json:"user_id"`
	TotalRecords      int                        `json:"total_records"`
	Topics            map[string]int             `json:"topics"`
	Sentiment         Distribution               `json:"sentiment_distribution"`
	Political         Distribution               `json:"political_distribution"`
	Platforms         map[string]PlatformSummary `json:"platforms"`
	InterestNetwork   InterestNetwork            `json:"interest_network"`
	Traits            []string                   `json:"personality_traits"`
	Avatars           []Avatar                   `json:"avatars"`
	Insights          []string                   `json:"insights"`
	Narrative         string                     `json:"narrative"`
	NarrativeProvider string                     `json:"narrative_provider"` // provider name or "template"
}
