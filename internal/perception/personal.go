package perception

import "fmt"

var (
	relationshipRedFlags = []string{"ex-", "dating app", "hookup", "single", "breakup", "toxic", "cheating"}
	creativeKeywords     = []string{"art", "music", "creative", "design", "photography", "writing"}
	familyConcernWords   = []string{"party", "drunk", "wild", "inappropriate"}
)

func romanticPerception(in Inputs) *Perception {
	p := &Perception{
		Perceiver:       RomanticPartner,
		ScoreLabel:      RomanticPartner.ScoreLabel(),
		PositiveLabel:   "attractive_qualities",
		NegativeLabel:   "potential_concerns",
		Positives:       []string{},
		Negatives:       []string{},
		RedFlags:        []string{},
		Insights:        []string{},
		Recommendations: []string{},
	}

	delta := 0

	if in.Sentiment["positive"] > 0.5 {
		p.Positives = append(p.Positives, "Positive outlook and optimistic personality")
		delta += 15
	} else if in.Sentiment["negative"] > 0.6 {
		p.Negatives = append(p.Negatives, "Frequently negative online - may indicate pessimistic worldview")
		delta -= 20
	}

	if in.topicShare("entertainment") > 0.3 || in.topicShare("lifestyle") > 0.2 {
		p.Positives = append(p.Positives, "Enjoys entertainment and lifestyle content - likely fun to be around")
		delta += 10
	}

	if in.TopicCounts["health"] > 0 {
		p.Positives = append(p.Positives, "Health-conscious lifestyle choices")
		delta += 10
	}

	dramaCount := in.samplesMatching(relationshipRedFlags, 15)
	if dramaCount > 3 {
		p.RedFlags = append(p.RedFlags, "Frequent mentions of dating/relationship drama - may indicate instability")
		delta -= 25
	} else if dramaCount == 0 {
		p.Positives = append(p.Positives, "Discrete about personal relationships - respects privacy")
		delta += 5
	}

	if in.Political["left"] > 0.8 || in.Political["right"] > 0.8 {
		p.Negatives = append(p.Negatives, "Strong political views may create relationship friction if values don't align")
		delta -= 10
	} else if in.Political["left"] > 0.3 || in.Political["right"] > 0.3 {
		p.Positives = append(p.Positives, "Has values and principles - likely thoughtful partner")
		delta += 8
	}

	socialActivity := in.PlatformActivity["twitter"] + in.PlatformActivity["instagram"]
	socialShare := float64(socialActivity) / float64(in.totalActivity())
	if socialShare > 0.7 {
		p.Negatives = append(p.Negatives, "Heavy social media usage - may prioritize online validation over real connections")
		delta -= 15
	} else if socialShare < 0.2 {
		p.Positives = append(p.Positives, "Not overly focused on social media - likely present in real-life interactions")
		delta += 10
	}

	if in.TopicCounts["education"] > 0 ||
		float64(in.PlatformActivity["search"]) > float64(in.totalActivity())*0.3 {
		p.Positives = append(p.Positives, "Curious and learning-oriented - interesting conversation partner")
		delta += 12
	}

	if len(in.TimePatterns) > 0 && hourRangeShare(in.TimePatterns, 18, 23) > 0.4 {
		p.Negatives = append(p.Negatives, "Heavy internet usage during evening hours - may limit quality time together")
		delta -= 10
	}

	if in.samplesMatching(creativeKeywords, 0) > 2 {
		p.Positives = append(p.Positives, "Creative interests and artistic appreciation")
		delta += 8
	}

	p.Score = clampScore(delta)
	switch {
	case p.Score >= 75:
		p.Impression = "very_attractive"
	case p.Score >= 60:
		p.Impression = "attractive"
	case p.Score >= 40:
		p.Impression = "neutral"
	default:
		p.Impression = "concerning"
	}

	if in.Sentiment["positive"] > 0.6 {
		p.Insights = append(p.Insights, "Likely to bring positivity and joy to a relationship")
	}
	if in.Political["neutral"] > 0.6 {
		p.Insights = append(p.Insights, "Balanced political views suggest open-mindedness and flexibility")
	}
	if float64(in.TopicCounts["technology"]) > float64(in.totalTopicHits())*0.3 {
		p.Insights = append(p.Insights, "Tech-savvy partner who can help with digital challenges")
	}

	discretion := "High"
	if dramaCount != 0 {
		discretion = "Low"
	}
	p.Detail = map[string]any{
		"emotional_tone":          in.Sentiment,
		"political_alignment":     in.Political,
		"social_media_engagement": fmt.Sprintf("%.1f%% of activity", socialShare*100),
		"interests_diversity":     len(in.TopicCounts),
		"relationship_discretion": discretion,
	}
	return p
}

func familyPerception(in Inputs) *Perception {
	p := &Perception{
		Perceiver:       FamilyMember,
		ScoreLabel:      FamilyMember.ScoreLabel(),
		PositiveLabel:   "positive_traits",
		NegativeLabel:   "family_concerns",
		Positives:       []string{},
		Negatives:       []string{},
		RedFlags:        []string{},
		Insights:        []string{},
		Recommendations: []string{},
	}

	delta := 0

	if in.Sentiment["positive"] > 0.5 {
		p.Positives = append(p.Positives, "Generally positive outlook - pleasant to be around at family gatherings")
		delta += 15
	}

	if in.samplesMatching(familyConcernWords, 0) > 2 {
		p.Negatives = append(p.Negatives, "Some content may be concerning to traditional family values")
		delta -= 20
	}

	if in.Political["left"] > 0.6 || in.Political["right"] > 0.6 {
		p.Insights = append(p.Insights, "Strong political views may clash with some family members")
		delta -= 5
	}

	p.Score = clampScore(delta)
	switch {
	case p.Score >= 75:
		p.Impression = "harmonious"
	case p.Score >= 60:
		p.Impression = "positive"
	case p.Score >= 40:
		p.Impression = "neutral"
	default:
		p.Impression = "strained"
	}

	p.Detail = map[string]any{
		"sentiment_profile":   in.Sentiment,
		"political_alignment": in.Political,
	}
	return p
}

func generalPerception(in Inputs) *Perception {
	return &Perception{
		Perceiver:       General,
		Impression:      "neutral",
		Score:           50,
		ScoreLabel:      General.ScoreLabel(),
		PositiveLabel:   "strengths",
		NegativeLabel:   "areas_for_improvement",
		Positives:       []string{"Authentic online presence"},
		Negatives:       []string{"Consider audience when posting"},
		RedFlags:        []string{},
		Recommendations: []string{},
		Detail: map[string]any{
			"sentiment_distribution": in.Sentiment,
			"topic_interests":        in.TopicCounts,
			"platform_activity":      in.PlatformActivity,
		},
	}
}
