package perception

import (
	"fmt"
	"math"
)

var shoppingKeywords = []string{"buy", "purchase", "review", "price", "deal"}

func advertiserPerception(in Inputs) *Perception {
	p := &Perception{
		Perceiver:       Advertiser,
		ScoreLabel:      Advertiser.ScoreLabel(),
		PositiveLabel:   "valuable_signals",
		NegativeLabel:   "ad_resistance",
		Positives:       []string{},
		Negatives:       []string{},
		RedFlags:        []string{},
		Recommendations: []string{},
	}

	delta := 0

	purchaseShare := in.topicShare("technology", "health", "finance", "lifestyle")
	if purchaseShare > 0.5 {
		p.Positives = append(p.Positives, "Strong consumer interest signals across multiple categories")
		delta += 20
	}

	hour, count := peakHour(in.TimePatterns)
	if count > 0 {
		p.Positives = append(p.Positives, fmt.Sprintf(
			"Predictable online activity pattern - most active around %02d:00", hour))
		delta += 15
	}

	switch diversity := len(in.PlatformActivity); {
	case diversity > 3:
		p.Positives = append(p.Positives, "Multi-platform user - high reach potential")
		delta += 10
	case diversity == 1:
		p.Negatives = append(p.Negatives, "Limited platform engagement - harder to reach")
		delta -= 10
	}

	if in.Sentiment["positive"] > 0.6 {
		p.Positives = append(p.Positives, "Positive sentiment suggests higher ad receptivity")
		delta += 15
	} else if in.Sentiment["negative"] > 0.5 {
		p.Negatives = append(p.Negatives, "Frequently negative sentiment may resist advertising")
		delta -= 15
	}

	if in.Political["left"] > 0.6 || in.Political["right"] > 0.6 {
		p.Negatives = append(p.Negatives, "Strong political views limit acceptable ad content")
		delta -= 10
	}

	if len(in.TopicCounts) > 5 {
		p.Positives = append(p.Positives, "Diverse interests enable broad targeting opportunities")
		delta += 12
	}

	if in.topicShare("technology") > 0.3 {
		p.Negatives = append(p.Negatives, "Tech-savvy user likely uses ad blockers")
		delta -= 20
	}

	p.Score = clampScore(delta)
	switch {
	case p.Score >= 75:
		p.Impression = "high_value"
	case p.Score >= 60:
		p.Impression = "valuable"
	case p.Score >= 40:
		p.Impression = "neutral"
	default:
		p.Impression = "low_value"
	}

	if delta < 40 {
		p.Recommendations = append(p.Recommendations,
			"Increase engagement signals through interactive content",
			"Build stronger consumer intent signals")
	}

	var peak any = "Unknown"
	if count > 0 {
		peak = hour
	}
	p.Detail = map[string]any{
		"purchase_intent":    fmt.Sprintf("%.1f%% purchase-related content", purchaseShare*100),
		"sentiment_profile":  in.Sentiment,
		"platform_reach":     in.PlatformActivity,
		"peak_activity_hour": peak,
	}
	return p
}

func contentFeederPerception(in Inputs) *Perception {
	p := &Perception{
		Perceiver:       ContentFeeder,
		ScoreLabel:      ContentFeeder.ScoreLabel(),
		PositiveLabel:   "engagement_drivers",
		NegativeLabel:   "algorithm_challenges",
		Positives:       []string{},
		Negatives:       []string{},
		RedFlags:        []string{},
		Recommendations: []string{},
	}

	delta := 0
	totalHits := in.totalTopicHits()

	topTopic := "unknown"
	topCount := 0
	for topic, n := range in.TopicCounts {
		if n > topCount || (n == topCount && topic < topTopic) {
			topTopic, topCount = topic, n
		}
	}

	depth := float64(topCount) / float64(totalHits)
	if depth > 0.4 {
		p.Positives = append(p.Positives, fmt.Sprintf(
			"Strong preference for %s content - high engagement probability", topTopic))
		delta += 20
	}

	if _, count := peakHour(in.TimePatterns); count > 0 {
		total := 0
		for _, n := range in.TimePatterns {
			total += n
		}
		if float64(count) > float64(total)*0.3 {
			p.Positives = append(p.Positives, "Concentrated usage patterns - good for session-based recommendations")
			delta += 15
		}
	}

	dominantSentiment, dominantShare := in.Sentiment.Dominant()
	if dominantShare > 0.6 {
		p.Positives = append(p.Positives, fmt.Sprintf("Consistent %s content preference", dominantSentiment))
		delta += 10
	} else if dominantShare < 0.4 {
		p.Negatives = append(p.Negatives, "Inconsistent sentiment preferences make content matching difficult")
		delta -= 15
	}

	switch diversity := len(in.PlatformActivity); {
	case diversity == 1:
		p.Positives = append(p.Positives, "Single platform focus - consistent engagement context")
		delta += 12
	case diversity > 4:
		p.Negatives = append(p.Negatives, "Multi-platform behavior creates fragmented user profile")
		delta -= 10
	}

	breadth := len(in.TopicCounts)
	if depth > 0.5 && breadth < 4 {
		p.Positives = append(p.Positives, "Deep interest in few topics - easy to serve relevant content")
		delta += 18
	} else if breadth > 7 && depth < 0.3 {
		p.Negatives = append(p.Negatives, "Broad but shallow interests make targeting difficult")
		delta -= 12
	}

	if in.Political["left"] > 0.7 || in.Political["right"] > 0.7 {
		p.Negatives = append(p.Negatives, "Strong political bias requires careful content curation")
		delta -= 10
	}

	p.Score = clampScore(delta)
	switch {
	case p.Score >= 75:
		p.Impression = "highly_predictable"
	case p.Score >= 60:
		p.Impression = "targetable"
	case p.Score >= 40:
		p.Impression = "neutral"
	default:
		p.Impression = "unpredictable"
	}

	p.Detail = map[string]any{
		"primary_interest":            topTopic,
		"interest_concentration":      fmt.Sprintf("%.1f%%", depth*100),
		"platform_distribution":       in.PlatformActivity,
		"content_preference_strength": dominantShare,
	}
	return p
}

func dataBrokerPerception(in Inputs) *Perception {
	p := &Perception{
		Perceiver:       DataBroker,
		ScoreLabel:      DataBroker.ScoreLabel(),
		PositiveLabel:   "profitable_traits",
		NegativeLabel:   "data_gaps",
		Positives:       []string{},
		Negatives:       []string{},
		RedFlags:        []string{},
		Recommendations: []string{},
	}

	delta := 0

	valuableShare := in.topicShare("finance", "health", "technology", "career")
	if valuableShare > 0.4 {
		p.Positives = append(p.Positives, "High-value demographic signals in finance, health, and technology")
		delta += 25
	}

	timeConsistency := 0.0
	if _, count := peakHour(in.TimePatterns); count > 0 {
		total := 0
		for _, n := range in.TimePatterns {
			total += n
		}
		timeConsistency = float64(count) / float64(total)
	}
	if timeConsistency > 0.3 {
		p.Positives = append(p.Positives, "Predictable behavior patterns valuable for modeling")
		delta += 15
	}

	if float64(in.samplesMatching(shoppingKeywords, 0)) > float64(len(in.ContentSamples))*0.2 {
		p.Positives = append(p.Positives, "Strong purchase intent signals")
		delta += 20
	}

	mobileShare := float64(in.PlatformActivity["mobile"]) / float64(in.totalActivity())
	if mobileShare > 0.5 {
		p.Positives = append(p.Positives, "High mobile usage suggests location data availability")
		delta += 12
	}

	richness := len(in.TopicCounts) + len(in.PlatformActivity)
	if len(in.TimePatterns) > 0 {
		richness++
	}
	if richness < 5 {
		p.Negatives = append(p.Negatives, "Limited data points reduce profile completeness")
		delta -= 15
	}

	if in.topicShare("technology") > 0.3 {
		p.Negatives = append(p.Negatives, "Tech-savvy users likely use privacy tools, limiting data collection")
		delta -= 20
	}

	if sentimentSpread(in.Sentiment) > 0.4 {
		p.Negatives = append(p.Negatives, "High sentiment volatility reduces data reliability")
		delta -= 10
	}

	if len(in.PlatformActivity) > 3 {
		p.Positives = append(p.Positives, "Multi-platform presence enables cross-platform tracking")
		delta += 15
	}

	p.Score = clampScore(delta)
	switch {
	case p.Score >= 75:
		p.Impression = "premium_profile"
	case p.Score >= 60:
		p.Impression = "valuable_data"
	case p.Score >= 40:
		p.Impression = "standard_profile"
	default:
		p.Impression = "limited_value"
	}

	p.Detail = map[string]any{
		"demographic_value":           fmt.Sprintf("%.1f%% high-value signals", valuableShare*100),
		"behavioral_predictability":   fmt.Sprintf("%.1f%%", timeConsistency*100),
		"data_completeness":           fmt.Sprintf("%d/10 data dimensions", richness),
		"cross_platform_trackability": len(in.PlatformActivity),
	}
	return p
}

func aiSystemPerception(in Inputs) *Perception {
	p := &Perception{
		Perceiver:       AISystem,
		ScoreLabel:      AISystem.ScoreLabel(),
		PositiveLabel:   "ai_advantages",
		NegativeLabel:   "ai_limitations",
		Positives:       []string{},
		Negatives:       []string{},
		RedFlags:        []string{},
		Recommendations: []string{},
	}

	delta := 0
	totalHits := in.totalTopicHits()

	total := 0
	for _, n := range in.TopicCounts {
		total += n
	}
	if total > 100 {
		p.Positives = append(p.Positives, "Sufficient data volume for reliable AI analysis")
		delta += 20
	} else if total < 20 {
		p.Negatives = append(p.Negatives, "Limited data volume reduces AI prediction accuracy")
		delta -= 25
	}

	if len(in.TopicCounts) > 0 {
		entropy := topicEntropy(in.TopicCounts, totalHits)
		if entropy < 2 {
			p.Positives = append(p.Positives, "Consistent behavioral patterns enable accurate predictions")
			delta += 15
		} else if entropy > 4 {
			p.Negatives = append(p.Negatives, "Highly random behavior patterns challenge AI modeling")
			delta -= 15
		}
	}

	_, consistency := in.Sentiment.Dominant()
	if consistency > 0.7 {
		p.Positives = append(p.Positives, "Consistent emotional patterns improve sentiment analysis accuracy")
		delta += 12
	} else if consistency < 0.4 {
		p.Negatives = append(p.Negatives, "Inconsistent emotional patterns complicate sentiment modeling")
		delta -= 10
	}

	temporal := 0.0
	if _, count := peakHour(in.TimePatterns); count > 0 {
		sum := 0
		for _, n := range in.TimePatterns {
			sum += n
		}
		temporal = float64(count) / float64(sum)
		if temporal > 0.4 {
			p.Positives = append(p.Positives, "Strong temporal patterns enable time-based predictions")
			delta += 10
		}
	}

	dimensions := 0
	if len(in.TopicCounts) > 0 {
		dimensions++
	}
	if len(in.Sentiment) > 0 {
		dimensions++
	}
	if len(in.Political) > 0 {
		dimensions++
	}
	if len(in.PlatformActivity) > 0 {
		dimensions++
	}
	if len(in.TimePatterns) > 0 {
		dimensions++
	}
	if dimensions >= 4 {
		p.Positives = append(p.Positives, "Multi-dimensional data enables sophisticated AI modeling")
		delta += 15
	} else if dimensions < 3 {
		p.Negatives = append(p.Negatives, "Limited data dimensions constrain AI model complexity")
		delta -= 12
	}

	if in.topicShare("technology") > 0.4 {
		p.Negatives = append(p.Negatives, "High tech sophistication may indicate AI-aware behavior")
		delta -= 15
	}

	if len(in.ContentSamples) > 10 {
		p.Positives = append(p.Positives, "Sufficient content samples for anomaly detection")
		delta += 8
	}

	p.Score = clampScore(delta)
	switch {
	case p.Score >= 80:
		p.Impression = "high_confidence"
	case p.Score >= 65:
		p.Impression = "reliable_predictions"
	case p.Score >= 40:
		p.Impression = "moderate_accuracy"
	default:
		p.Impression = "low_confidence"
	}

	var temporalDetail any = "Unknown"
	if len(in.TimePatterns) > 0 {
		temporalDetail = fmt.Sprintf("%.1f%%", temporal*100)
	}
	p.Detail = map[string]any{
		"data_volume":             total,
		"pattern_consistency":     fmt.Sprintf("%.1f%%", consistency*100),
		"data_dimensions":         dimensions,
		"temporal_predictability": temporalDetail,
	}
	return p
}

// topicEntropy is the Shannon entropy of the topic share distribution, in
// bits. Eight taxonomy topics bound it at 3.
func topicEntropy(counts map[string]int, total int) float64 {
	entropy := 0.0
	for _, n := range counts {
		if n == 0 {
			continue
		}
		share := float64(n) / float64(total)
		entropy -= share * math.Log2(share)
	}
	return entropy
}

func sentimentSpread(dist map[string]float64) float64 {
	if len(dist) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range dist {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}
