// Package taxonomy defines the fixed keyword-to-topic mapping used by every
// analyzer. The topic order is part of the contract: first-match classification
// walks Topics in declaration order, so reordering changes results.
package taxonomy

import (
	"sort"
	"strings"
)

// Topic is one entry of the ordered taxonomy.
type Topic struct {
	Name  string
	Seeds []string
}

// Topics is the ordered topic table. Matching is case-insensitive substring
// against each seed.
var Topics = []Topic{
	{Name: "technology", Seeds: []string{"tech", "software", "programming", "ai", "computer", "app", "digital", "code"}},
	{Name: "health", Seeds: []string{"health", "fitness", "medical", "wellness", "exercise", "nutrition", "mental"}},
	{Name: "finance", Seeds: []string{"money", "investment", "crypto", "stock", "finance", "budget", "economy"}},
	{Name: "education", Seeds: []string{"learn", "study", "course", "education", "tutorial", "knowledge", "skill"}},
	{Name: "entertainment", Seeds: []string{"movie", "music", "game", "tv", "show", "entertainment", "fun"}},
	{Name: "news", Seeds: []string{"news", "politics", "world", "current", "events", "breaking", "update"}},
	{Name: "lifestyle", Seeds: []string{"fashion", "travel", "food", "home", "lifestyle", "culture", "art"}},
	{Name: "career", Seeds: []string{"job", "career", "work", "professional", "business", "interview", "resume"}},
}

// Names returns the topic names in taxonomy order.
func Names() []string {
	out := make([]string, len(Topics))
	for i, t := range Topics {
		out[i] = t.Name
	}
	return out
}

func matches(keyword string, t Topic) bool {
	for _, seed := range t.Seeds {
		if strings.Contains(keyword, seed) {
			return true
		}
	}
	return false
}

// ExtractTopics counts topic hits across keywords. A keyword fans out to
// every topic it matches, but increments each topic at most once.
func ExtractTopics(keywords []string) map[string]int {
	counts := make(map[string]int)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, t := range Topics {
			if matches(kw, t) {
				counts[t.Name]++
			}
		}
	}
	return counts
}

// FirstMatch returns the first topic in taxonomy order matching the keyword,
// or "" when no topic matches.
func FirstMatch(keyword string) string {
	kw := strings.ToLower(keyword)
	for _, t := range Topics {
		if matches(kw, t) {
			return t.Name
		}
	}
	return ""
}

// TopicCount is one ranked entry of a topic count map.
type TopicCount struct {
	Topic string
	Count int
}

// Top returns the n highest-count topics, count descending with alphabetical
// tie-break so output is deterministic.
func Top(counts map[string]int, n int) []TopicCount {
	ranked := make([]TopicCount, 0, len(counts))
	for topic, count := range counts {
		ranked = append(ranked, TopicCount{Topic: topic, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Topic < ranked[j].Topic
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
