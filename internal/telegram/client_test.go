package telegram

import (
	"strings"
	"testing"

	"github.com/mirrorme/mirrord/internal/models"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"80.5% technology", "80\\.5% technology"},
		{"a-b (c)", "a\\-b \\(c\\)"},
		{"*bold*", "\\*bold\\*"},
	}

	for _, tt := range tests {
		result := escapeMarkdownV2(tt.input)
		if result != tt.expected {
			t.Errorf("escapeMarkdownV2(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatDigest(t *testing.T) {
	profile := &models.Profile{
		UserID:       "user-1",
		TotalRecords: 12,
		Topics:       map[string]int{"technology": 8, "health": 4},
		Traits:       []string{"curious", "tech-savvy"},
		Narrative:    "A curious explorer of technology.",
	}
	report := &models.InfluenceReport{
		Patterns: models.InfluencePatterns{
			EchoChambers: []models.EchoChamber{
				{Topic: "technology", Warning: "You're seeing 65.0% technology content - algorithms may be creating an echo chamber"},
			},
		},
	}

	message := formatDigest(profile, report)

	for _, want := range []string{"Persona Digest", "technology", "curious", "echo chamber"} {
		if !strings.Contains(message, want) {
			t.Errorf("digest missing %q:\n%s", want, message)
		}
	}
	if !strings.Contains(message, "⚠️") {
		t.Error("expected a warning marker for the echo chamber")
	}
}

func TestFormatDigestNoWarnings(t *testing.T) {
	profile := &models.Profile{UserID: "user-1", TotalRecords: 3}
	report := &models.InfluenceReport{}

	message := formatDigest(profile, report)

	if !strings.Contains(message, "No algorithmic influence warnings") {
		t.Errorf("expected the all-clear line:\n%s", message)
	}
}
