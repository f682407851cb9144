package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/llm/mocks"
)

func completerReturning(resp string, err error) *mocks.CompleterMock {
	return &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, prompt string, maxTokens int) (string, error) {
			return resp, err
		},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	completer := completerReturning(`{"sentiment":"negative","sentiment_score":0.92,"urgency":"critical",`+
		`"themes":["Bug","API"],"summary":"Production API returns 500 errors blocking customers."}`, nil)
	analyzer := NewAnalyzer(completer, 300)

	res, err := analyzer.Analyze(context.Background(), "Our integration is broken, /users returns 500", "Urgent: API errors")
	require.NoError(t, err)

	assert.Equal(t, domain.SentimentNegative, res.Sentiment)
	assert.InDelta(t, 0.92, res.SentimentScore, 0.0001)
	assert.Equal(t, domain.UrgencyCritical, res.Urgency)
	assert.Equal(t, []string{"Bug", "API"}, res.Themes)
	assert.Equal(t, "Production API returns 500 errors blocking customers.", res.Summary)

	calls := completer.CompleteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 300, calls[0].MaxTokens)
	assert.Contains(t, calls[0].Prompt, "Title: Urgent: API errors\n")
	assert.Contains(t, calls[0].Prompt, "Content: Our integration is broken, /users returns 500")
}

func TestAnalyzer_AnalyzeEmbeddedJSON(t *testing.T) {
	resp := "Sure! Here's the analysis: ```json\n" +
		`{"sentiment":"negative","sentiment_score":0.8,"urgency":"high","themes":["Bug"],"summary":"App crashes on login."}` +
		"\n```\nLet me know if you need anything else {or more details}."
	analyzer := NewAnalyzer(completerReturning(resp, nil), 300)

	res, err := analyzer.Analyze(context.Background(), "App crashes on login", "")
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentNegative, res.Sentiment)
	assert.Equal(t, domain.UrgencyHigh, res.Urgency)
	assert.Equal(t, []string{"Bug"}, res.Themes)
	assert.Equal(t, "App crashes on login.", res.Summary)
}

func TestAnalyzer_AnalyzeFallback(t *testing.T) {
	longContent := strings.Repeat("abcdefghij", 15) // 150 chars

	tests := []struct {
		name string
		resp string
	}{
		{name: "plain prose", resp: "I think this feedback is mostly negative and quite urgent."},
		{name: "empty response", resp: ""},
		{name: "garbage", resp: "\x00\x01 ]]] }{ not json at all"},
		{name: "malformed json", resp: `{"sentiment": "negative", "urgency": }`},
		{name: "unbalanced", resp: `{"sentiment": "negative"`},
		{name: "missing fields", resp: `{"sentiment":"negative","urgency":"high"}`},
		{name: "missing themes", resp: `{"sentiment":"negative","sentiment_score":0.7,"urgency":"high","summary":"x"}`},
		{name: "unknown sentiment", resp: `{"sentiment":"furious","sentiment_score":0.7,"urgency":"high","themes":[],"summary":"x"}`},
		{name: "unknown urgency", resp: `{"sentiment":"negative","sentiment_score":0.7,"urgency":"asap","themes":[],"summary":"x"}`},
		{name: "empty summary", resp: `{"sentiment":"negative","sentiment_score":0.7,"urgency":"high","themes":[],"summary":"  "}`},
		{name: "score as string", resp: `{"sentiment":"negative","sentiment_score":"0.7","urgency":"high","themes":[],"summary":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewAnalyzer(completerReturning(tt.resp, nil), 300)
			res, err := analyzer.Analyze(context.Background(), longContent, "")
			require.NoError(t, err)
			assert.Equal(t, domain.SentimentNeutral, res.Sentiment)
			assert.InDelta(t, 0.5, res.SentimentScore, 0.0001)
			assert.Equal(t, domain.UrgencyMedium, res.Urgency)
			assert.Equal(t, []string{"Uncategorized"}, res.Themes)
			assert.Equal(t, longContent[:100], res.Summary)
		})
	}
}

func TestAnalyzer_AnalyzeAlwaysWellFormed(t *testing.T) {
	responses := []string{
		"",
		"{}",
		"{{{{",
		"}}}}{",
		`{"a":"}"}`,
		`{"sentiment":"POSITIVE","sentiment_score":7,"urgency":" Low ","themes":["UX",""," "],"summary":"Nice."}`,
		`{"sentiment":"negative","sentiment_score":-3,"urgency":"critical","themes":[],"summary":"Down."}`,
		"```json\n{\"sentiment\": \"neutral\"}\n```",
	}

	for _, resp := range responses {
		analyzer := NewAnalyzer(completerReturning(resp, nil), 300)
		res, err := analyzer.Analyze(context.Background(), "some feedback", "")
		require.NoError(t, err, resp)
		assert.True(t, res.Sentiment.Valid(), resp)
		assert.True(t, res.Urgency.Valid(), resp)
		assert.GreaterOrEqual(t, res.SentimentScore, 0.0, resp)
		assert.LessOrEqual(t, res.SentimentScore, 1.0, resp)
		assert.NotNil(t, res.Themes, resp)
		assert.NotEmpty(t, res.Summary, resp)
	}
}

func TestAnalyzer_AnalyzeNormalizes(t *testing.T) {
	resp := `{"sentiment":"POSITIVE","sentiment_score":7,"urgency":" Low ","themes":["UX",""," Mobile "],"summary":" Nice app. "}`
	analyzer := NewAnalyzer(completerReturning(resp, nil), 300)

	res, err := analyzer.Analyze(context.Background(), "love it", "")
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentPositive, res.Sentiment)
	assert.InDelta(t, 1.0, res.SentimentScore, 0.0001)
	assert.Equal(t, domain.UrgencyLow, res.Urgency)
	assert.Equal(t, []string{"UX", "Mobile"}, res.Themes)
	assert.Equal(t, "Nice app.", res.Summary)
}

func TestAnalyzer_AnalyzeCompletionError(t *testing.T) {
	analyzer := NewAnalyzer(completerReturning("", errors.New("connection refused")), 300)

	_, err := analyzer.Analyze(context.Background(), "App crashes on login", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAnalyzer_AnalyzeEmptyContent(t *testing.T) {
	completer := completerReturning("{}", nil)
	analyzer := NewAnalyzer(completer, 300)

	_, err := analyzer.Analyze(context.Background(), "   ", "title")
	require.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, completer.CompleteCalls())
}

func TestNewAnalyzer_DefaultMaxTokens(t *testing.T) {
	analyzer := NewAnalyzer(completerReturning("", nil), 0)
	assert.Equal(t, 300, analyzer.maxTokens)
}

func TestFallback(t *testing.T) {
	t.Run("short content kept", func(t *testing.T) {
		res := Fallback("App crashes on login")
		assert.Equal(t, "App crashes on login", res.Summary)
	})

	t.Run("multibyte content cut by characters", func(t *testing.T) {
		content := strings.Repeat("ж", 120)
		res := Fallback(content)
		assert.Equal(t, strings.Repeat("ж", 100), res.Summary)
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("with title", func(t *testing.T) {
		prompt := buildPrompt("Dashboard is slow", "Slow dashboard")
		assert.Contains(t, prompt, "CRITICAL urgency: System down, data loss, security issues, blocking issues")
		assert.Contains(t, prompt, "Common themes: Performance, UX, Bug, Feature Request")
		assert.True(t, strings.HasSuffix(prompt, "Title: Slow dashboard\nContent: Dashboard is slow"))
	})

	t.Run("without title", func(t *testing.T) {
		prompt := buildPrompt("Dashboard is slow", "  ")
		assert.NotContains(t, prompt, "Title:")
		assert.True(t, strings.HasSuffix(prompt, "Feedback to analyze:\nContent: Dashboard is slow"))
	})
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "plain object", in: `{"a":1}`, want: `{"a":1}`, ok: true},
		{name: "surrounded by prose", in: `result: {"a":1} done`, want: `{"a":1}`, ok: true},
		{name: "nested", in: `x {"a":{"b":2}} y {"c":3}`, want: `{"a":{"b":2}}`, ok: true},
		{name: "braces in strings", in: `{"a":"}{","b":"\"}"}`, want: `{"a":"}{","b":"\"}"}`, ok: true},
		{name: "first unbalanced", in: `{ open {"a":1}`, want: `{"a":1}`, ok: true},
		{name: "no braces", in: `nothing here`, ok: false},
		{name: "never closed", in: `{"a":1`, ok: false},
		{name: "closing only", in: `}}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractObject(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
