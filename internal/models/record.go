// Package models defines the core domain entities for the mirrord analysis engine.
// These models represent labeled behavior records collected at the browsing boundary,
// and the derived aggregates produced by a persona analysis pass.
//
// Terminology:
//   - Record: one labeled unit of user activity (a search, a tweet like, a video
//     watch, ...) together with any sentiment / political labels attached upstream.
//   - Profile: the cross-cutting persona aggregate derived from a batch of records.
//
// Records are read-only inputs; every derived structure is allocated fresh per
// analysis call and never cached by the engine.
package models

import (
	"errors"
	"time"
)

// Sentiment labels attached to a record by the upstream labeling process.
// An empty string means the record carries no sentiment label.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Political tilt labels attached to a record by the upstream labeling process.
// An empty string means the record carries no tilt label.
const (
	TiltLeft    = "left"
	TiltRight   = "right"
	TiltNeutral = "neutral"
)

// MaxContentLength bounds the stored content snippet (tweet-sized).
// Content beyond this is truncated at the ingest boundary.
const MaxContentLength = 280

// Record represents a single labeled behavior event.
//
// The engine never mutates records. Filtering by the privacy flags and the
// trailing time window happens in the storage layer before a batch reaches
// the analyzers.
type Record struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Source string `json:"source"` // "extension", "mobile_app", ...

	BehaviorType string   `json:"behavior_type"` // "search", "tweet_like", "youtube_video_watch", ...
	Category     string   `json:"category,omitempty"`
	Keywords     []string `json:"keywords"`
	Content      string   `json:"content,omitempty"` // truncated snippet, may be empty

	Sentiment string `json:"sentiment,omitempty"`      // "positive", "negative", "neutral" or unset
	Tilt      string `json:"political_tilt,omitempty"` // "left", "right", "neutral" or unset

	Author  string `json:"author,omitempty"`
	VideoID string `json:"video_id,omitempty"`
	Channel string `json:"channel,omitempty"`

	Timestamp time.Time `json:"timestamp"`

	IsSensitive       bool `json:"is_sensitive"`
	IncludeInAnalysis bool `json:"include_in_analysis"`
}

// Validate checks that all record fields are valid.
func (r *Record) Validate() error {
	if r.ID == "" {
		return errors.New("record ID must not be empty")
	}
	if r.UserID == "" {
		return errors.New("user ID must not be empty")
	}
	if r.BehaviorType == "" {
		return errors.New("behavior type must not be empty")
	}
	switch r.Sentiment {
	case "", SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		return errors.New("sentiment must be 'positive', 'negative', 'neutral' or unset")
	}
	switch r.Tilt {
	case "", TiltLeft, TiltRight, TiltNeutral:
	default:
		return errors.New("political tilt must be 'left', 'right', 'neutral' or unset")
	}
	if len(r.Content) > MaxContentLength {
		return errors.New("content exceeds maximum snippet length")
	}
	if r.Timestamp.IsZero() {
		return errors.New("timestamp must be set")
	}
	return nil
}

// TruncateContent returns s bounded to MaxContentLength bytes.
func TruncateContent(s string) string {
	if len(s) > MaxContentLength {
		return s[:MaxContentLength]
	}
	return s
}
