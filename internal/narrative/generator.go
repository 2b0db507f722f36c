package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mirrorme/mirrord/internal/logger"
	"github.com/mirrorme/mirrord/internal/models"
	"github.com/mirrorme/mirrord/internal/taxonomy"
)

const (
	summaryMaxTokens  = 150
	feedbackMaxTokens = 200

	// TemplateProvider is reported when text came from a fallback template.
	TemplateProvider = "template"
)

// Generator produces narrative text, trying each configured provider in
// order and falling back to templates when all of them fail. A rate limiter
// gates outbound calls so a burst of analysis requests cannot hammer the
// provider quota.
type Generator struct {
	providers []Provider
	limiter   *rate.Limiter
	timeout   time.Duration
}

// NewGenerator creates a generator over the given providers. requestsPerMin
// of 0 disables rate limiting.
func NewGenerator(providers []Provider, requestsPerMin int, timeout time.Duration) *Generator {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMin)), requestsPerMin)
	}
	return &Generator{
		providers: providers,
		limiter:   limiter,
		timeout:   timeout,
	}
}

// generate runs the prompt through the provider chain. The returned provider
// name is the one that produced the text.
func (g *Generator) generate(ctx context.Context, messages []Message, maxTokens int) (string, string, error) {
	if len(g.providers) == 0 {
		return "", "", fmt.Errorf("no narrative providers configured")
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", "", fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var lastErr error
	for _, p := range g.providers {
		text, err := p.Generate(ctx, messages, maxTokens)
		if err != nil {
			logger.Warn("Narrative provider %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		return text, p.Name(), nil
	}
	return "", "", fmt.Errorf("all narrative providers failed: %w", lastErr)
}

// PersonaSummary generates the narrative summary for a profile. The second
// return value names the provider, or TemplateProvider when the template
// fallback was used.
func (g *Generator) PersonaSummary(ctx context.Context, topics map[string]int, sentiment models.Distribution) (string, string) {
	topTopics := topicNames(topics, 5)
	total := 0
	for _, n := range topics {
		total += n
	}

	prompt := fmt.Sprintf(`Based on the following digital behavior data, create a thoughtful persona summary:

Top interests: %s
Emotional tone: %s
Total interactions: %d

Write a 2-3 sentence summary that captures this person's digital personality in a respectful, insightful way. Focus on their curiosity patterns and interests, not judgments.`,
		strings.Join(topTopics, ", "), formatDistribution(sentiment), total)

	messages := []Message{
		{Role: "system", Content: "You are a thoughtful digital behavior analyst who creates respectful, insightful personality summaries."},
		{Role: "user", Content: prompt},
	}

	text, provider, err := g.generate(ctx, messages, summaryMaxTokens)
	if err != nil {
		logger.Debug("Persona summary falling back to template: %v", err)
		return FallbackSummary(topics, sentiment), TemplateProvider
	}
	return text, provider
}

// PerceptionFeedback generates the observer's-eye feedback text for a
// perception result. Buckets arrive pre-labeled so this package stays
// independent of the perception types.
func (g *Generator) PerceptionFeedback(ctx context.Context, perceiver string, score int, impression string, positives, negatives, redFlags []string) (string, string) {
	messages := []Message{
		{Role: "system", Content: "You are a thoughtful digital behavior analyst who provides constructive, actionable feedback on online presence."},
		{Role: "user", Content: feedbackPrompt(perceiver, score, impression, positives, negatives, redFlags)},
	}

	text, provider, err := g.generate(ctx, messages, feedbackMaxTokens)
	if err != nil {
		logger.Debug("Perception feedback falling back to template: %v", err)
		return FallbackFeedback(perceiver, score), TemplateProvider
	}
	return text, provider
}

func feedbackPrompt(perceiver string, score int, impression string, positives, negatives, redFlags []string) string {
	switch perceiver {
	case "advertiser":
		return fmt.Sprintf(`Based on this person's digital behavior analysis, provide feedback on their advertising profile:

Score: %d/100
Valuable Signals: %s
Ad Resistance: %s

Write a 2-3 sentence assessment focusing on:
1. How valuable this person is for targeted advertising
2. What types of ads would be most effective
3. Any challenges in reaching this audience

Be analytical and marketing-focused.`, score, strings.Join(positives, ", "), strings.Join(negatives, ", "))

	case "content_feeder":
		return fmt.Sprintf(`Based on this person's digital behavior analysis, provide feedback on their content algorithm profile:

Score: %d/100
Engagement Drivers: %s
Algorithm Challenges: %s

Write a 2-3 sentence assessment focusing on:
1. How predictable their content preferences are
2. What content recommendation strategies would work best
3. Any algorithmic challenges in serving relevant content

Be technical and algorithm-focused.`, score, strings.Join(positives, ", "), strings.Join(negatives, ", "))

	case "data_broker":
		return fmt.Sprintf(`Based on this person's digital behavior analysis, provide feedback on their data broker profile:

Score: %d/100
Profitable Traits: %s
Data Gaps: %s

Write a 2-3 sentence assessment focusing on:
1. How valuable their data profile is for resale
2. What data points make them attractive to buyers
3. Any limitations in data collection or reliability

Be business and data-focused.`, score, strings.Join(positives, ", "), strings.Join(negatives, ", "))

	case "ai_system":
		return fmt.Sprintf(`Based on this person's digital behavior analysis, provide feedback on their AI system profile:

Score: %d/100
AI Advantages: %s
AI Limitations: %s

Write a 2-3 sentence assessment focusing on:
1. How well AI systems can model and predict their behavior
2. What makes them easy or difficult for AI to understand
3. Any data quality or pattern recognition challenges

Be technical and AI-focused.`, score, strings.Join(positives, ", "), strings.Join(negatives, ", "))

	case "recruiter":
		return fmt.Sprintf(`Based on this person's digital behavior analysis, provide specific feedback on how they appear to potential employers:

Score: %d/100
Strengths: %s
Concerns: %s
Red Flags: %s

Write a 2-3 sentence professional assessment focusing on:
1. What impression this person gives to recruiters
2. Specific suggestions for improving their professional online presence
3. Key strengths they should highlight more

Be constructive and actionable.`, score, strings.Join(positives, ", "), strings.Join(negatives, ", "), strings.Join(redFlags, ", "))

	case "romantic_partner":
		return fmt.Sprintf(`Based on this person's digital behavior analysis, provide feedback on how they appear to potential romantic partners:

Score: %d/100
Attractive Qualities: %s
Concerns: %s
Red Flags: %s

Write a 2-3 sentence assessment focusing on:
1. What dating impression this person creates online
2. How to present themselves more attractively while staying authentic
3. Any behaviors that might be deterring potential partners

Be respectful and helpful.`, score, strings.Join(positives, ", "), strings.Join(negatives, ", "), strings.Join(redFlags, ", "))

	default:
		return fmt.Sprintf(`Based on this person's digital behavior, provide general feedback on their online presence:

Score: %d/100
Overall impression: %s

Write 2-3 sentences about how they come across online and suggestions for improvement.`, score, impression)
	}
}

func topicNames(topics map[string]int, n int) []string {
	ranked := taxonomy.Top(topics, n)
	names := make([]string, len(ranked))
	for i, tc := range ranked {
		names[i] = tc.Topic
	}
	return names
}

func formatDistribution(dist models.Distribution) string {
	labels := make([]string, 0, len(dist))
	for _, label := range []string{"positive", "negative", "neutral"} {
		if share, ok := dist[label]; ok {
			labels = append(labels, fmt.Sprintf("%s %.0f%%", label, share*100))
		}
	}
	return strings.Join(labels, ", ")
}
