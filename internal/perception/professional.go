package perception

import "fmt"

var recruiterRedFlags = []string{"hate", "discriminat", "illegal", "fired", "lawsuit", "drunk", "party"}

func recruiterPerception(in Inputs) *Perception {
	p := &Perception{
		Perceiver:       Recruiter,
		ScoreLabel:      Recruiter.ScoreLabel(),
		PositiveLabel:   "strengths",
		NegativeLabel:   "concerns",
		Positives:       []string{},
		Negatives:       []string{},
		RedFlags:        []string{},
		Recommendations: []string{},
	}

	delta := 0

	professionalShare := in.topicShare("technology", "career", "education", "finance")
	switch {
	case professionalShare > 0.6:
		p.Positives = append(p.Positives, "Strong focus on professional development and industry knowledge")
		delta += 20
	case professionalShare > 0.3:
		p.Positives = append(p.Positives, "Good balance of professional and personal interests")
		delta += 10
	default:
		p.Negatives = append(p.Negatives, "Limited evidence of professional interests or industry engagement")
		delta -= 10
	}

	if in.PlatformActivity["search"] > in.PlatformActivity["twitter"] {
		p.Positives = append(p.Positives, "Research-oriented mindset, likely to be self-directed learner")
		delta += 15
	}

	if in.Political["left"] > 0.7 || in.Political["right"] > 0.7 {
		p.Negatives = append(p.Negatives, "Heavily politically engaged - may bring divisive viewpoints to workplace")
		delta -= 15
	} else if in.Political["left"] > 0.4 || in.Political["right"] > 0.4 {
		p.Positives = append(p.Positives, "Engaged citizen with clear values")
		delta += 5
	}

	if in.Sentiment["negative"] > 0.5 {
		p.Negatives = append(p.Negatives, "Frequently negative or critical online - may impact team morale")
		delta -= 20
	} else if in.Sentiment["positive"] > 0.6 {
		p.Positives = append(p.Positives, "Positive online presence suggests good attitude and team fit")
		delta += 15
	}

	workShare := hourRangeShare(in.TimePatterns, 9, 18)
	if workShare > 0.7 {
		p.Negatives = append(p.Negatives, "Heavy internet usage during work hours - potential productivity concerns")
		delta -= 15
	} else if workShare < 0.3 {
		p.Positives = append(p.Positives, "Good work-life digital boundaries")
		delta += 10
	}

	if in.samplesMatching(recruiterRedFlags, 10) > 0 {
		p.RedFlags = append(p.RedFlags, "Potentially concerning language or behavior patterns in online content")
		delta -= 25
	}

	if float64(in.TopicCounts["technology"]) > float64(in.totalTopicHits())*0.2 {
		p.Positives = append(p.Positives, "Tech-savvy, likely adaptable to new digital tools and systems")
		delta += 10
	}

	p.Score = clampScore(delta)
	switch {
	case p.Score >= 75:
		p.Impression = "very_positive"
	case p.Score >= 60:
		p.Impression = "positive"
	case p.Score >= 40:
		p.Impression = "neutral"
	default:
		p.Impression = "concerning"
	}

	// Recommendations key off the raw delta so a profile that merely
	// clears the clamp floor still gets advice.
	if delta < 40 {
		p.Recommendations = append(p.Recommendations,
			"Consider sharing more professional achievements and industry insights",
			"Engage with thought leaders and professional content in your field")
	}
	if in.Sentiment["negative"] > 0.4 {
		p.Recommendations = append(p.Recommendations,
			"Balance critical posts with more positive, solution-oriented content")
	}
	if _, hasSearch := in.PlatformActivity["search"]; !hasSearch {
		if _, hasYouTube := in.PlatformActivity["youtube"]; !hasYouTube {
			p.Recommendations = append(p.Recommendations,
				"Demonstrate continuous learning through educational content engagement")
		}
	}

	professionalism := "High"
	if len(p.RedFlags) > 0 {
		professionalism = "Concerning"
	}
	p.Detail = map[string]any{
		"professional_interests":  fmt.Sprintf("%.1f%% of content", professionalShare*100),
		"political_engagement":    in.Political,
		"sentiment_profile":       in.Sentiment,
		"platform_usage":          in.PlatformActivity,
		"content_professionalism": professionalism,
	}
	return p
}

func colleaguePerception(in Inputs) *Perception {
	p := &Perception{
		Perceiver:       Colleague,
		ScoreLabel:      Colleague.ScoreLabel(),
		PositiveLabel:   "team_fit_qualities",
		NegativeLabel:   "potential_friction",
		Positives:       []string{},
		Negatives:       []string{},
		RedFlags:        []string{},
		Recommendations: []string{},
	}

	delta := 0

	if in.Sentiment["positive"] > 0.5 {
		p.Positives = append(p.Positives, "Positive communicator - likely to boost team morale")
		p.CommunicationStyle = "supportive"
		delta += 15
	} else if in.Sentiment["negative"] > 0.5 {
		p.Negatives = append(p.Negatives, "Often critical or negative - may create tense work environment")
		p.CommunicationStyle = "critical"
		delta -= 15
	} else {
		p.CommunicationStyle = "balanced"
		delta += 5
	}

	if in.topicShare("technology", "career", "education") > 0.4 {
		p.Positives = append(p.Positives, "Strong professional interests - valuable team contributor")
		delta += 20
	}

	if in.Political["left"] > 0.7 || in.Political["right"] > 0.7 {
		p.Negatives = append(p.Negatives, "Strong political views may create workplace tension")
		delta -= 10
	}

	p.Score = clampScore(delta)
	switch {
	case p.Score >= 70:
		p.Impression = "excellent_colleague"
	case p.Score >= 55:
		p.Impression = "good_colleague"
	case p.Score >= 40:
		p.Impression = "neutral"
	default:
		p.Impression = "challenging_colleague"
	}

	p.Detail = map[string]any{
		"communication_style": p.CommunicationStyle,
	}
	return p
}
