package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyContent returned when feedback has nothing to analyze
var ErrEmptyContent = errors.New("feedback content is empty")

// Status is a board column of the feedback item
type Status string

// board columns, in display order
const (
	StatusInbox     Status = "inbox"
	StatusReviewing Status = "reviewing"
	StatusPlanned   Status = "planned"
	StatusDone      Status = "done"
)

// Statuses lists all board columns in display order
var Statuses = []Status{StatusInbox, StatusReviewing, StatusPlanned, StatusDone}

// ParseStatus converts a raw value into a board column, unknown values are rejected
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q, expected one of inbox, reviewing, planned, done", s)
	}
	return st, nil
}

// Valid reports whether the status is one of the known board columns
func (s Status) Valid() bool {
	switch s {
	case StatusInbox, StatusReviewing, StatusPlanned, StatusDone:
		return true
	}
	return false
}

// Sentiment of the analyzed feedback
type Sentiment string

// sentiment values
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether the sentiment is a known value
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}

// Urgency tier of the analyzed feedback
type Urgency string

// urgency tiers
const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Valid reports whether the urgency is a known tier
func (u Urgency) Valid() bool {
	return u.Rank() > 0
}

// Rank orders urgency tiers, low is 1 and critical is 4. Unknown tiers rank 0.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyLow:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyHigh:
		return 3
	case UrgencyCritical:
		return 4
	}
	return 0
}

// AnalysisState shows where the item is in the analysis pipeline
type AnalysisState string

// analysis states
const (
	AnalysisPending        AnalysisState = "pending"         // inserted, not dispatched yet
	AnalysisQueued         AnalysisState = "queued"          // workflow accepted the item
	AnalysisDispatchFailed AnalysisState = "dispatch_failed" // workflow could not be scheduled
	AnalysisFailed         AnalysisState = "failed"          // workflow gave up after retries
	AnalysisDone           AnalysisState = "done"
)

// AnalysisResult is the structured output of the feedback analysis
type AnalysisResult struct {
	Sentiment      Sentiment `json:"sentiment"`
	SentimentScore float64   `json:"sentiment_score"`
	Urgency        Urgency   `json:"urgency"`
	Themes         []string  `json:"themes"`
	Summary        string    `json:"summary"`
}

// FeedbackItem is a single piece of product feedback and its analysis
type FeedbackItem struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	SourceID string `json:"source_id,omitempty"`
	Title    string `json:"title,omitempty"`
	Content  string `json:"content"`

	// analysis, empty until processed
	Sentiment      Sentiment `json:"sentiment,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	Urgency        Urgency   `json:"urgency,omitempty"`
	Themes         []string  `json:"themes"`
	Summary        string    `json:"summary,omitempty"`

	Status        Status        `json:"status"`
	AnalysisState AnalysisState `json:"analysis_state"`
	CreatedAt     time.Time     `json:"created_at"`
	ProcessedAt   *time.Time    `json:"processed_at"`
}

// Processed reports whether the analysis has been stored for the item
func (f *FeedbackItem) Processed() bool {
	return f.ProcessedAt != nil
}

// FeedbackFilter represents filtering criteria for feedback listing
type FeedbackFilter struct {
	Status Status // empty means all columns
}
