package narrative

import (
	"fmt"

	"github.com/mirrorme/mirrord/internal/models"
)

// FallbackSummary renders the deterministic persona summary used when no
// provider is available.
func FallbackSummary(topics map[string]int, sentiment models.Distribution) string {
	top := topicNames(topics, 3)
	dominant, _ := sentiment.Dominant()

	switch {
	case len(top) >= 2:
		return fmt.Sprintf(
			"Your digital behavior shows strong interests in %s and %s, with a generally %s approach to online exploration. You demonstrate curiosity across multiple domains.",
			top[0], top[1], dominant)
	case len(top) == 1:
		return fmt.Sprintf(
			"You show focused interest in %s, with a %s approach to digital exploration.",
			top[0], dominant)
	default:
		return "Your digital behavior shows diverse interests and a balanced approach to online exploration."
	}
}

// FallbackFeedback renders the deterministic per-perceiver feedback used
// when no provider is available. Bands split at 70 and 50.
func FallbackFeedback(perceiver string, score int) string {
	type bands struct{ high, mid, low string }
	table := map[string]bands{
		"advertiser": {
			high: "Your digital behavior shows strong consumer signals that are highly valuable for targeted advertising. Your diverse interests and predictable patterns make you an attractive target for marketers.",
			mid:  "Your online presence provides moderate value for advertisers. Consider diversifying your digital engagement to increase or decrease your advertising profile visibility.",
			low:  "Your digital behavior patterns show strong resistance to advertising targeting. Your privacy-conscious behavior and unpredictable patterns make you a challenging audience to reach.",
		},
		"content_feeder": {
			high: "Your content consumption patterns are highly predictable, making you an ideal user for content recommendation algorithms. Your consistent preferences enable accurate content targeting.",
			mid:  "Your content behavior is moderately predictable for recommendation algorithms. Some patterns are clear while others present targeting challenges for content systems.",
			low:  "Your content consumption patterns are unpredictable and challenging for recommendation algorithms. Your diverse and inconsistent preferences make content targeting difficult.",
		},
		"data_broker": {
			high: "Your digital profile is highly valuable to data brokers due to rich behavioral patterns and valuable demographic signals. Your data would command premium prices in data markets.",
			mid:  "Your digital profile has moderate value for data brokers. Some valuable signals are present but gaps limit the overall market value of your information.",
			low:  "Your digital profile has limited value for data brokers due to privacy-conscious behavior and fragmented data patterns. Your information would be difficult to monetize.",
		},
		"ai_system": {
			high: "AI systems can model your behavior with high confidence due to consistent patterns and rich data. Your digital footprint enables accurate predictions and classifications.",
			mid:  "AI systems have moderate confidence in modeling your behavior. Some patterns are clear while others present challenges for machine learning algorithms.",
			low:  "AI systems struggle to model your behavior due to inconsistent patterns or limited data. Your digital footprint presents significant challenges for algorithmic analysis.",
		},
		"recruiter": {
			high: "Your professional online presence shows strong industry engagement and positive communication. Continue sharing expertise and professional insights to maintain this excellent impression.",
			mid:  "Your online presence is professionally acceptable but could be enhanced. Consider sharing more industry insights and reducing personal content during work hours.",
			low:  "Your online presence may raise concerns for recruiters. Focus on professional content, avoid controversial topics, and showcase your expertise more prominently.",
		},
		"romantic_partner": {
			high: "Your online presence suggests you're a positive, interesting person who would be an engaging partner. Your balanced interests and discrete approach to personal matters are attractive qualities.",
			mid:  "Your online presence is generally appealing but could be more attractive to potential partners. Consider sharing more positive content and diverse interests while maintaining authenticity.",
			low:  "Your online behavior may not be creating the best impression for potential romantic partners. Focus on positive content, reduce controversial posts, and show your fun, creative side more.",
		},
	}

	b, ok := table[perceiver]
	if !ok {
		return "Your online presence shows authentic engagement with diverse topics. Consider your audience when posting and maintain a balance between personal expression and public perception."
	}
	switch {
	case score >= 70:
		return b.high
	case score >= 50:
		return b.mid
	default:
		return b.low
	}
}
