package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/taxonomy"
)

// BuildAvatars surfaces up to five behavioral facets from a batch, each
// anchored to a record subset. Strength is the subset's share of the batch;
// facets with an empty subset are skipped. Output is sorted by strength
// descending.
func BuildAvatars(records []models.Record, platforms map[string]models.PlatformSummary) []models.Avatar {
	var avatars []models.Avatar

	if a, ok := searcherAvatar(records); ok {
		avatars = append(avatars, a)
	}
	if a, ok := socialAvatar(records, platforms); ok {
		avatars = append(avatars, a)
	}
	if a, ok := consumerAvatar(records, platforms); ok {
		avatars = append(avatars, a)
	}
	if a, ok := professionalAvatar(records); ok {
		avatars = append(avatars, a)
	}
	if a, ok := explorerAvatar(records); ok {
		avatars = append(avatars, a)
	}

	sort.SliceStable(avatars, func(i, j int) bool {
		return avatars[i].Strength > avatars[j].Strength
	})
	if len(avatars) > 5 {
		avatars = avatars[:5]
	}
	return avatars
}

func strength(subset, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(subset) / float64(total)
}

func dominantLabel(counts map[string]int) string {
	best := "neutral"
	bestCount := 0
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}

func topNames(counts map[string]int, n int) []string {
	ranked := taxonomy.Top(counts, n)
	out := make([]string, len(ranked))
	for i, tc := range ranked {
		out[i] = tc.Topic
	}
	return out
}

func searcherAvatar(records []models.Record) (models.Avatar, bool) {
	var searches []models.Record
	politics := make(map[string]int)
	sentiment := make(map[string]int)
	var keywords []string
	for _, r := range records {
		if r.BehaviorType != "search" {
			continue
		}
		searches = append(searches, r)
		keywords = append(keywords, r.Keywords...)
		if r.Tilt != "" {
			politics[r.Tilt]++
		}
		if r.Sentiment != "" {
			sentiment[r.Sentiment]++
		}
	}
	if len(searches) == 0 {
		return models.Avatar{}, false
	}

	topics := taxonomy.ExtractTopics(keywords)
	focus := "various topics"
	if ranked := taxonomy.Top(topics, 1); len(ranked) > 0 {
		focus = ranked[0].Topic
	}

	return models.Avatar{
		Name:        "The Searcher",
		Description: "Your intellectual curious side that actively seeks information",
		Emoji:       "🔍",
		Platform:    "Google/Search Engines",
		Strength:    strength(len(searches), len(records)),
		Traits:      []string{"curious", "research-oriented", "analytical"},
		Interests:   topNames(topics, 3),
		Political:   dominantLabel(politics),
		Sentiment:   dominantLabel(sentiment),
		Pattern:     fmt.Sprintf("Searches %d times, focuses on %s", len(searches), focus),
	}, true
}

func socialAvatar(records []models.Record, platforms map[string]models.PlatformSummary) (models.Avatar, bool) {
	summary, ok := platforms["twitter"]
	if !ok {
		return models.Avatar{}, false
	}

	tweets := 0
	for _, r := range records {
		if strings.HasPrefix(r.BehaviorType, "tweet_") {
			tweets++
		}
	}

	var traits []string
	eng := summary.Engagement
	if float64(eng["likes"]) > float64(eng["views"])*0.1 {
		traits = append(traits, "highly-engaged")
	}
	if eng["retweets"] > 0 {
		traits = append(traits, "content-amplifier")
	}
	if eng["compositions"] > 0 {
		traits = append(traits, "content-creator")
	}
	if len(traits) == 0 {
		traits = []string{"social-observer"}
	}

	politics, _ := summary.Political.Dominant()
	tone, _ := summary.Sentiment.Dominant()

	return models.Avatar{
		Name:        "The Social Connector",
		Description: "Your social media persona that engages with trends and people",
		Emoji:       "🐦",
		Platform:    "Twitter/X",
		Strength:    strength(tweets, len(records)),
		Traits:      traits,
		Interests:   []string{"social-trends", "current-events", "discussions"},
		Political:   politics,
		Sentiment:   tone,
		Pattern:     fmt.Sprintf("%d likes, %d retweets", eng["likes"], eng["retweets"]),
	}, true
}

func consumerAvatar(records []models.Record, platforms map[string]models.PlatformSummary) (models.Avatar, bool) {
	summary, ok := platforms["youtube"]
	if !ok {
		return models.Avatar{}, false
	}

	watches := 0
	for _, r := range records {
		if strings.HasPrefix(r.BehaviorType, "youtube_") {
			watches++
		}
	}

	traits := []string{"entertainment-focused"}
	if len(summary.TopChannels) > 3 {
		traits = append(traits, "diverse-viewer")
	}
	if summary.Engagement["comment_views"] > 0 {
		traits = append(traits, "community-engaged")
	}

	topChannel := "Various creators"
	if len(summary.TopChannels) > 0 {
		topChannel = summary.TopChannels[0].Channel
	}

	politics, _ := summary.Political.Dominant()
	tone, _ := summary.Sentiment.Dominant()

	return models.Avatar{
		Name:        "The Content Consumer",
		Description: "Your entertainment-seeking side that watches and learns",
		Emoji:       "📺",
		Platform:    "YouTube",
		Strength:    strength(watches, len(records)),
		Traits:      traits,
		Interests:   []string{"video-content", "learning", "entertainment"},
		Political:   politics,
		Sentiment:   tone,
		Pattern:     fmt.Sprintf("Watches videos, top channel: %s", topChannel),
	}, true
}

var professionalKeywords = map[string]bool{
	"technology":  true,
	"programming": true,
	"business":    true,
	"career":      true,
	"work":        true,
}

func professionalAvatar(records []models.Record) (models.Avatar, bool) {
	var work []models.Record
	var keywords []string
	for _, r := range records {
		matched := false
		for _, kw := range r.Keywords {
			if professionalKeywords[kw] {
				matched = true
				break
			}
		}
		if matched {
			work = append(work, r)
			keywords = append(keywords, r.Keywords...)
		}
	}
	if len(work) == 0 {
		return models.Avatar{}, false
	}

	topics := taxonomy.ExtractTopics(keywords)
	interests := topNames(topics, 3)
	if len(interests) == 0 {
		interests = []string{"professional-development"}
	}
	focus := "professional growth"
	if ranked := taxonomy.Top(topics, 1); len(ranked) > 0 {
		focus = ranked[0].Topic
	}

	return models.Avatar{
		Name:        "The Professional",
		Description: "Your career-focused identity that seeks growth and knowledge",
		Emoji:       "💼",
		Platform:    "Professional/Work Context",
		Strength:    strength(len(work), len(records)),
		Traits:      []string{"career-focused", "skill-building", "ambitious"},
		Interests:   interests,
		Political:   "neutral",
		Sentiment:   "positive",
		Pattern:     fmt.Sprintf("Focuses on %s", focus),
	}, true
}

func explorerAvatar(records []models.Record) (models.Avatar, bool) {
	var personal []models.Record
	var keywords []string
	for _, r := range records {
		if r.BehaviorType != "visit" && r.BehaviorType != "engagement" {
			continue
		}
		personal = append(personal, r)
		keywords = append(keywords, r.Keywords...)
	}
	if len(personal) == 0 {
		return models.Avatar{}, false
	}

	topics := taxonomy.ExtractTopics(keywords)
	diversity := 0.0
	if len(keywords) > 0 {
		unique := make(map[string]bool)
		for _, kw := range keywords {
			unique[kw] = true
		}
		diversity = float64(len(unique)) / float64(len(keywords))
	}

	traits := []string{"curious"}
	if diversity > 0.7 {
		traits = append(traits, "diverse-interests")
	}
	if len(topics) > 5 {
		traits = append(traits, "renaissance-minded")
	}

	interests := topNames(topics, 3)
	if len(interests) == 0 {
		interests = []string{"exploration"}
	}

	return models.Avatar{
		Name:        "The Explorer",
		Description: "Your genuine self that explores diverse interests and ideas",
		Emoji:       "🌟",
		Platform:    "General Web/Personal",
		Strength:    strength(len(personal), len(records)),
		Traits:      traits,
		Interests:   interests,
		Political:   "balanced",
		Sentiment:   "curious",
		Pattern:     fmt.Sprintf("Explores %d different topics broadly", len(topics)),
	}, true
}
