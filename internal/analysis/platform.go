package analysis

import (
	"sort"
	"strings"

	"github.com/mirrorme/mirrord/internal/models"
)

// PlatformOf classifies a record into its coarse platform bucket.
func PlatformOf(r models.Record) string {
	switch {
	case strings.HasPrefix(r.BehaviorType, "tweet_"):
		return "twitter"
	case strings.HasPrefix(r.BehaviorType, "youtube_"):
		return "youtube"
	case r.BehaviorType == "search":
		return "search"
	case r.BehaviorType == "engagement":
		return "general_web"
	default:
		return "other"
	}
}

func isTwitter(r models.Record) bool {
	author := strings.ToLower(r.Author)
	return strings.Contains(author, "twitter.com") ||
		strings.Contains(author, "x.com") ||
		strings.HasPrefix(r.BehaviorType, "tweet_")
}

func isYouTube(r models.Record) bool {
	return strings.HasPrefix(r.BehaviorType, "youtube_") || r.VideoID != ""
}

// PlatformSummaries builds the per-platform aggregates of a batch. Platforms
// with no matching records are omitted.
func PlatformSummaries(records []models.Record) map[string]models.PlatformSummary {
	out := make(map[string]models.PlatformSummary)
	if s, ok := twitterSummary(records); ok {
		out["twitter"] = s
	}
	if s, ok := youtubeSummary(records); ok {
		out["youtube"] = s
	}
	return out
}

func twitterSummary(records []models.Record) (models.PlatformSummary, bool) {
	var subset []models.Record
	engagement := map[string]int{
		"views":        0,
		"likes":        0,
		"retweets":     0,
		"compositions": 0,
	}
	for _, r := range records {
		if !isTwitter(r) {
			continue
		}
		subset = append(subset, r)
		switch r.BehaviorType {
		case "tweet_view":
			engagement["views"]++
		case "tweet_like":
			engagement["likes"]++
		case "tweet_retweet":
			engagement["retweets"]++
		case "tweet_compose":
			engagement["compositions"]++
		}
	}
	if len(subset) == 0 {
		return models.PlatformSummary{}, false
	}
	return models.PlatformSummary{
		Platform:     "twitter",
		Interactions: len(subset),
		Engagement:   engagement,
		Sentiment:    SentimentDistribution(subset),
		Political:    PoliticalDistribution(subset),
	}, true
}

func youtubeSummary(records []models.Record) (models.PlatformSummary, bool) {
	var subset []models.Record
	engagement := map[string]int{
		"video_watches": 0,
		"comment_views": 0,
	}
	counts := make(map[string]int)
	var channels []string // first-encounter order
	for _, r := range records {
		if !isYouTube(r) {
			continue
		}
		subset = append(subset, r)
		switch r.BehaviorType {
		case "youtube_video_watch":
			engagement["video_watches"]++
		case "youtube_comment_view":
			engagement["comment_views"]++
		}
		if r.Channel != "" {
			if _, seen := counts[r.Channel]; !seen {
				channels = append(channels, r.Channel)
			}
			counts[r.Channel]++
		}
	}
	if len(subset) == 0 {
		return models.PlatformSummary{}, false
	}
	return models.PlatformSummary{
		Platform:     "youtube",
		Interactions: len(subset),
		Engagement:   engagement,
		Sentiment:    SentimentDistribution(subset),
		Political:    PoliticalDistribution(subset),
		TopChannels:  topChannels(channels, counts, 5),
	}, true
}

// topChannels ranks channels by count; ties keep first-encounter order.
func topChannels(channels []string, counts map[string]int, n int) []models.ChannelCount {
	ranked := make([]models.ChannelCount, 0, len(channels))
	for _, ch := range channels {
		ranked = append(ranked, models.ChannelCount{Channel: ch, Count: counts[ch]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
