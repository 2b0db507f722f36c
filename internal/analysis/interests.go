package analysis

import (
	"sort"
	"strings"

	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/taxonomy"
)

// TopicCounts extracts and sums topic hits across all record keywords.
func TopicCounts(records []models.Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		for topic, n := range taxonomy.ExtractTopics(r.Keywords) {
			counts[topic] += n
		}
	}
	return counts
}

// BuildInterestNetwork renders topic counts as a weighted node set. Node
// weight is the topic's share of all topic hits; size is a display hint
// capped at 10. Edges are reserved for co-occurrence analysis. Total
// interactions is the sum of topic hits, not the record count.
func BuildInterestNetwork(topicCounts map[string]int) models.InterestNetwork {
	total := 0
	for _, n := range topicCounts {
		total += n
	}

	names := make([]string, 0, len(topicCounts))
	for topic := range topicCounts {
		names = append(names, topic)
	}
	sort.Strings(names)

	nodes := make([]models.InterestNode, 0, len(names))
	for _, topic := range names {
		count := topicCounts[topic]
		size := float64(count) / 5.0
		if size > 10 {
			size = 10
		}
		nodes = append(nodes, models.InterestNode{
			ID:     topic,
			Label:  titleCase(topic),
			Weight: float64(count) / float64(total),
			Size:   size,
		})
	}

	return models.InterestNetwork{
		Nodes:             nodes,
		Edges:             []models.InterestEdge{},
		TotalInteractions: total,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
