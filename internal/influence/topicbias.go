package influence

import (
	"fmt"
	"sort"

	"github.com/mirrorme/mirrord/internal/analysis"
	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/taxonomy"
)

const (
	pushedShareThreshold = 20.0 // percent of matched interactions
	biasShareThreshold   = 60.0 // percent of labeled counts
	coordinationMinTotal = 10
	// Zero variance across platforms means perfectly even pushing; the
	// strength ratio is undefined there, so it reports the cap.
	maxCoordinationStrength = 100.0
)

// DetectTopicBias measures how exposure concentrates on topics and whether
// the same topics surface uniformly across platforms. Records are expected
// pre-filtered to the analysis window.
func DetectTopicBias(userID string, records []models.Record) *models.TopicBiasReport {
	exposure := make(map[string]models.TopicExposure)
	platformTopics := make(map[string]map[string]int)

	totalMatched := 0
	for _, r := range records {
		platform := analysis.PlatformOf(r)
		for _, kw := range r.Keywords {
			topic := taxonomy.FirstMatch(kw)
			if topic == "" {
				continue
			}
			totalMatched++

			e, ok := exposure[topic]
			if !ok {
				e = models.TopicExposure{
					Topic:     topic,
					Platforms: make(map[string]int),
					Sentiment: make(map[string]int),
					Political: make(map[string]int),
				}
			}
			e.Total++
			e.Platforms[platform]++
			if r.Sentiment != "" {
				e.Sentiment[r.Sentiment]++
			}
			if r.Tilt != "" {
				e.Political[r.Tilt]++
			}
			exposure[topic] = e

			if platformTopics[platform] == nil {
				platformTopics[platform] = make(map[string]int)
			}
			platformTopics[platform][topic]++
		}
	}

	return &models.TopicBiasReport{
		UserID:            userID,
		TotalMatched:      totalMatched,
		Exposure:          exposure,
		PushedTopics:      detectPushedTopics(exposure, totalMatched),
		CoordinatedTopics: detectCoordination(platformTopics),
	}
}

func detectPushedTopics(exposure map[string]models.TopicExposure, totalMatched int) []models.PushedTopic {
	pushed := []models.PushedTopic{}
	if totalMatched == 0 {
		return pushed
	}

	topics := make([]string, 0, len(exposure))
	for topic := range exposure {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		e := exposure[topic]
		share := float64(e.Total) / float64(totalMatched) * 100
		if share <= pushedShareThreshold {
			continue
		}
		pushed = append(pushed, models.PushedTopic{
			Topic:         topic,
			SharePercent:  share,
			SentimentBias: biasSignal(e.Sentiment),
			PoliticalBias: biasSignal(e.Political),
			Platforms:     e.Platforms,
			Warning: fmt.Sprintf(
				"You're seeing unusually high amounts of %s content (%.1f%%)", topic, share),
		})
	}
	return pushed
}

func biasSignal(breakdown map[string]int) models.BiasSignal {
	total := 0
	for _, n := range breakdown {
		total += n
	}
	if total == 0 {
		return models.BiasSignal{Dominant: "neutral"}
	}

	distribution := make(map[string]float64, len(breakdown))
	dominant := ""
	best := -1.0
	labels := make([]string, 0, len(breakdown))
	for label := range breakdown {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		share := float64(breakdown[label]) / float64(total) * 100
		distribution[label] = share
		if share > best {
			dominant = label
			best = share
		}
	}

	return models.BiasSignal{
		Detected:     best > biasShareThreshold,
		Dominant:     dominant,
		Share:        best,
		Distribution: distribution,
	}
}

func detectCoordination(platformTopics map[string]map[string]int) []models.CoordinatedTopic {
	type spread struct {
		platforms []string
		counts    []float64
		total     int
	}

	byTopic := make(map[string]*spread)
	platforms := make([]string, 0, len(platformTopics))
	for platform := range platformTopics {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	for _, platform := range platforms {
		for topic, count := range platformTopics[platform] {
			s := byTopic[topic]
			if s == nil {
				s = &spread{}
				byTopic[topic] = s
			}
			s.platforms = append(s.platforms, platform)
			s.counts = append(s.counts, float64(count))
			s.total += count
		}
	}

	topics := make([]string, 0, len(byTopic))
	for topic := range byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	coordinated := []models.CoordinatedTopic{}
	for _, topic := range topics {
		s := byTopic[topic]
		if len(s.platforms) < 2 || s.total < coordinationMinTotal {
			continue
		}

		avg := mean(s.counts)
		variance := 0.0
		for _, c := range s.counts {
			variance += (c - avg) * (c - avg)
		}
		variance /= float64(len(s.counts))

		if variance >= avg*0.5 {
			continue
		}

		strength := maxCoordinationStrength
		if variance > 0 {
			strength = avg / variance
			if strength > maxCoordinationStrength {
				strength = maxCoordinationStrength
			}
		}

		coordinated = append(coordinated, models.CoordinatedTopic{
			Topic:     topic,
			Platforms: s.platforms,
			Total:     s.total,
			Strength:  strength,
			Warning: fmt.Sprintf("%s content is being pushed consistently across %d platforms",
				titleCase(topic), len(s.platforms)),
		})
	}
	return coordinated
}
