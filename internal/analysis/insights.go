package analysis

import (
	"fmt"
	"strings"

	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/taxonomy"
)

// DeriveInsights turns the aggregates into human-readable observations.
// Each rule contributes at most one line; order follows the rule table.
func DeriveInsights(records []models.Record, topics map[string]int, sentiment, political models.Distribution, platforms map[string]models.PlatformSummary) []string {
	var insights []string

	if ranked := taxonomy.Top(topics, 1); len(ranked) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Your strongest interest area is %s with %d interactions",
			ranked[0].Topic, ranked[0].Count))
	}

	if sentiment["positive"] > 0.7 {
		insights = append(insights, "You tend to engage positively with online content")
	} else if sentiment["negative"] > 0.4 {
		insights = append(insights, "You engage critically and analytically with content")
	}

	if political["left"] > 0.5 {
		insights = append(insights, "Your content consumption shows a progressive/liberal political lean")
	} else if political["right"] > 0.5 {
		insights = append(insights, "Your content consumption shows a conservative political lean")
	} else if political["left"] > 0.3 || political["right"] > 0.3 {
		insights = append(insights, "You engage with political content from multiple perspectives")
	}

	if twitter, ok := platforms["twitter"]; ok {
		eng := twitter.Engagement
		if float64(eng["likes"]) > float64(eng["views"])*0.1 {
			insights = append(insights, "You're an active Twitter engager who likes content frequently")
		}
		if eng["retweets"] > 0 {
			insights = append(insights, "You amplify content through retweets, showing influence behavior")
		}
	}

	if youtube, ok := platforms["youtube"]; ok && len(youtube.TopChannels) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Your most watched YouTube channel is %s", youtube.TopChannels[0].Channel))
	}

	if len(topics) >= 5 {
		insights = append(insights, "You have diverse interests spanning multiple domains")
	} else if len(topics) <= 2 {
		insights = append(insights, "You have focused, specialized interests")
	}

	if len(records) > 0 {
		searches, tweets := 0, 0
		for _, r := range records {
			if r.BehaviorType == "search" {
				searches++
			}
			if strings.HasPrefix(r.BehaviorType, "tweet_") {
				tweets++
			}
		}
		if float64(searches)/float64(len(records)) > 0.6 {
			insights = append(insights, "You're a research-oriented user who actively searches for information")
		}
		if float64(tweets)/float64(len(records)) > 0.3 {
			insights = append(insights, "You're highly active on social media platforms")
		}
	}

	return insights
}
