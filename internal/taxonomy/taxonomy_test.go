package taxonomy

import (
	"reflect"
	"testing"
)

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		want     map[string]int
	}{
		{
			name:     "single technology keyword",
			keywords: []string{"technology"},
			want:     map[string]int{"technology": 1},
		},
		{
			name:     "substring match",
			keywords: []string{"budget"},
			want:     map[string]int{"finance": 1},
		},
		{
			name:     "no match",
			keywords: []string{"zzzz"},
			want:     map[string]int{},
		},
		{
			name:     "case insensitive",
			keywords: []string{"CRYPTO"},
			want:     map[string]int{"finance": 1},
		},
		{
			name:     "keyword fans out across topics",
			keywords: []string{"health tech news"},
			want:     map[string]int{"technology": 1, "health": 1, "news": 1},
		},
		{
			name:     "topic counted once per keyword",
			keywords: []string{"software programming code"},
			want:     map[string]int{"technology": 1},
		},
		{
			name:     "counts accumulate across keywords",
			keywords: []string{"crypto", "stock market", "fitness"},
			want:     map[string]int{"finance": 2, "health": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTopics(tt.keywords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTopics(%v) = %v, want %v", tt.keywords, got, tt.want)
			}
		})
	}
}

func TestFirstMatch(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"programming tutorial", "technology"}, // technology precedes education
		{"health news", "health"},              // health precedes news
		{"budget", "finance"},
		{"unrelated", ""},
		{"Job Interview", "career"},
	}

	for _, tt := range tests {
		if got := FirstMatch(tt.keyword); got != tt.want {
			t.Errorf("FirstMatch(%q) = %q, want %q", tt.keyword, got, tt.want)
		}
	}
}

func TestTop(t *testing.T) {
	counts := map[string]int{
		"technology": 5,
		"health":     5,
		"finance":    2,
		"news":       8,
	}

	got := Top(counts, 3)
	want := []TopicCount{
		{Topic: "news", Count: 8},
		{Topic: "health", Count: 5}, // alphabetical tie-break
		{Topic: "technology", Count: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Top() = %v, want %v", got, want)
	}

	if got := Top(nil, 3); len(got) != 0 {
		t.Errorf("Top(nil) returned %v, want empty", got)
	}
}
