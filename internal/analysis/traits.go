package analysis

import (
	"sort"
	"strings"

	"github.com/mirrorme/mirrord/internal/models"
)

// DeriveTraits maps aggregate signals to personality trait labels. The rule
// set is fixed; output is deduplicated and sorted for stable responses.
func DeriveTraits(records []models.Record, topics map[string]int, sentiment, political models.Distribution) []string {
	traits := make(map[string]bool)

	if len(topics) >= 5 {
		traits["curious"] = true
	}
	if len(topics) >= 3 {
		traits["diverse-interests"] = true
	}

	if sentiment["positive"] > 0.6 {
		traits["optimistic"] = true
	} else if sentiment["negative"] > 0.4 {
		traits["analytical"] = true
	}

	if political["left"] > 0.4 || political["right"] > 0.4 {
		traits["politically-engaged"] = true
	}

	total := 0
	for _, n := range topics {
		total += n
	}
	if total > 0 && float64(topics["technology"]) > float64(total)*0.3 {
		traits["tech-savvy"] = true
	}
	if topics["health"] > 0 {
		traits["health-conscious"] = true
	}
	if topics["education"] > 0 {
		traits["learning-oriented"] = true
	}

	searches, tweets := 0, 0
	for _, r := range records {
		if r.BehaviorType == "search" {
			searches++
		}
		if strings.HasPrefix(r.BehaviorType, "tweet_") {
			tweets++
		}
	}
	if len(records) > 0 {
		if float64(searches) > float64(len(records))*0.7 {
			traits["research-oriented"] = true
		}
		if float64(tweets) > float64(len(records))*0.3 {
			traits["social-media-active"] = true
		}
	}

	out := make([]string, 0, len(traits))
	for trait := range traits {
		out = append(out, trait)
	}
	sort.Strings(out)
	return out
}
