package analysis

import (
	"github.com/mirrorme/mirrord/internal/models"
)

// EmptyBatchMessage is returned as the narrative for a batch with no records.
const EmptyBatchMessage = "No behavior data available for analysis. Start browsing with the extension or log some sample behaviors to generate insights."

// BuildProfile runs the full deterministic pipeline over a batch. The
// narrative field is left empty; the caller attaches it via the narrative
// generator so this function never blocks on a network call.
//
// An empty batch yields a neutral profile carrying EmptyBatchMessage.
func BuildProfile(userID string, records []models.Record) *models.Profile {
	if len(records) == 0 {
		return &models.Profile{
			UserID:            userID,
			TotalRecords:      0,
			Topics:            map[string]int{},
			Sentiment:         models.Distribution{"neutral": 1.0},
			Political:         models.Distribution{"neutral": 1.0},
			Platforms:         map[string]models.PlatformSummary{},
			InterestNetwork:   models.InterestNetwork{Edges: []models.InterestEdge{}},
			Traits:            []string{},
			Avatars:           []models.Avatar{},
			Insights:          []string{"Collect more browsing data to generate personalized insights"},
			Narrative:         EmptyBatchMessage,
			NarrativeProvider: "template",
		}
	}

	topics := TopicCounts(records)
	sentiment := SentimentDistribution(records)
	political := PoliticalDistribution(records)
	platforms := PlatformSummaries(records)

	return &models.Profile{
		UserID:          userID,
		TotalRecords:    len(records),
		Topics:          topics,
		Sentiment:       sentiment,
		Political:       political,
		Platforms:       platforms,
		InterestNetwork: BuildInterestNetwork(topics),
		Traits:          DeriveTraits(records, topics, sentiment, political),
		Avatars:         BuildAvatars(records, platforms),
		Insights:        DeriveInsights(records, topics, sentiment, political, platforms),
	}
}
