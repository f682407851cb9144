package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedboard/pkg/domain"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer

// ErrEmptyContent returned when there is nothing to analyze
var ErrEmptyContent = domain.ErrEmptyContent

// fallback values used when the model response can't be parsed
const (
	fallbackScore      = 0.5
	fallbackTheme      = "Uncategorized"
	fallbackSummaryLen = 100
)

// Completer is a text completion backend
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Analyzer derives sentiment, urgency, themes and summary from feedback text.
// Unparseable model output never fails the analysis, a deterministic fallback is returned instead.
type Analyzer struct {
	completer Completer
	maxTokens int
}

// NewAnalyzer makes an analyzer calling the completer with the given output budget
func NewAnalyzer(completer Completer, maxTokens int) *Analyzer {
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &Analyzer{completer: completer, maxTokens: maxTokens}
}

// Analyze classifies a single feedback item. Only completion errors are returned,
// the caller is responsible for retrying them.
func (a *Analyzer) Analyze(ctx context.Context, content, title string) (domain.AnalysisResult, error) {
	if strings.TrimSpace(content) == "" {
		return domain.AnalysisResult{}, ErrEmptyContent
	}

	resp, err := a.completer.Complete(ctx, buildPrompt(content, title), a.maxTokens)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("analysis completion: %w", err)
	}

	res, err := parseAnalysis(resp)
	if err != nil {
		lgr.Printf("[WARN] can't parse analysis response, using fallback: %v", err)
		return Fallback(content), nil
	}
	return res, nil
}

// Fallback returns the result used when the model output is unusable
func Fallback(content string) domain.AnalysisResult {
	summary := content
	if r := []rune(content); len(r) > fallbackSummaryLen {
		summary = string(r[:fallbackSummaryLen])
	}
	return domain.AnalysisResult{
		Sentiment:      domain.SentimentNeutral,
		SentimentScore: fallbackScore,
		Urgency:        domain.UrgencyMedium,
		Themes:         []string{fallbackTheme},
		Summary:        summary,
	}
}

const promptTemplate = `You are a product feedback analyzer. Analyze the following customer feedback and respond with ONLY a valid JSON object (no markdown, no code blocks, just JSON):

{
  "sentiment": "positive" or "negative" or "neutral",
  "sentiment_score": number between 0.0 and 1.0 representing confidence,
  "urgency": "critical" or "high" or "medium" or "low",
  "themes": ["array", "of", "relevant", "themes"],
  "summary": "one sentence summary of the feedback"
}

Classification guidelines:
- CRITICAL urgency: System down, data loss, security issues, blocking issues
- HIGH urgency: Major bugs, significant user impact, time-sensitive
- MEDIUM urgency: Feature requests, improvements, minor bugs
- LOW urgency: Suggestions, cosmetic issues, nice-to-haves

Common themes: Performance, UX, Bug, Feature Request, Documentation, Security, Pricing, Integration, Mobile, API

Feedback to analyze:
`

// buildPrompt creates the classification prompt, title line is added only if set
func buildPrompt(content, title string) string {
	var sb strings.Builder
	sb.WriteString(promptTemplate)
	if title = strings.TrimSpace(title); title != "" {
		sb.WriteString("Title: ")
		sb.WriteString(title)
		sb.WriteString("\n")
	}
	sb.WriteString("Content: ")
	sb.WriteString(content)
	return sb.String()
}

// analysisJSON mirrors the expected model output, pointers detect missing fields
type analysisJSON struct {
	Sentiment      *string   `json:"sentiment"`
	SentimentScore *float64  `json:"sentiment_score"`
	Urgency        *string   `json:"urgency"`
	Themes         *[]string `json:"themes"`
	Summary        *string   `json:"summary"`
}

// parseAnalysis extracts the first JSON object from the response and validates it
func parseAnalysis(resp string) (domain.AnalysisResult, error) {
	obj, ok := extractObject(resp)
	if !ok {
		return domain.AnalysisResult{}, fmt.Errorf("no json object found in response")
	}

	var raw analysisJSON
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("failed to parse json object: %w", err)
	}

	switch {
	case raw.Sentiment == nil:
		return domain.AnalysisResult{}, fmt.Errorf("missing sentiment")
	case raw.SentimentScore == nil:
		return domain.AnalysisResult{}, fmt.Errorf("missing sentiment_score")
	case raw.Urgency == nil:
		return domain.AnalysisResult{}, fmt.Errorf("missing urgency")
	case raw.Themes == nil:
		return domain.AnalysisResult{}, fmt.Errorf("missing themes")
	case raw.Summary == nil:
		return domain.AnalysisResult{}, fmt.Errorf("missing summary")
	}

	res := domain.AnalysisResult{
		Sentiment:      domain.Sentiment(strings.ToLower(strings.TrimSpace(*raw.Sentiment))),
		SentimentScore: clampScore(*raw.SentimentScore),
		Urgency:        domain.Urgency(strings.ToLower(strings.TrimSpace(*raw.Urgency))),
		Themes:         make([]string, 0, len(*raw.Themes)),
		Summary:        strings.TrimSpace(*raw.Summary),
	}
	if !res.Sentiment.Valid() {
		return domain.AnalysisResult{}, fmt.Errorf("unknown sentiment %q", res.Sentiment)
	}
	if !res.Urgency.Valid() {
		return domain.AnalysisResult{}, fmt.Errorf("unknown urgency %q", res.Urgency)
	}
	if res.Summary == "" {
		return domain.AnalysisResult{}, fmt.Errorf("empty summary")
	}
	for _, theme := range *raw.Themes {
		if theme = strings.TrimSpace(theme); theme != "" {
			res.Themes = append(res.Themes, theme)
		}
	}
	return res, nil
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// extractObject returns the first balanced {...} substring. Braces inside JSON strings are ignored.
func extractObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end, ok := matchBrace(s, start); ok {
			return s[start : end+1], true
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// matchBrace finds the position of the brace closing the one at start
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
