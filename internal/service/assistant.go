package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/llm"
	"github.com/chaisthra/vibetrack/internal/storage"
)

type AnalyzeRequest struct {
	Query     string `json:"query" validate:"required"`
	Timeframe string `json:"timeframe,omitempty"`
}

type QueryLogsRequest struct {
	Query          string `json:"query" validate:"required"`
	Timeframe      string `json:"timeframe,omitempty"`
	CategoryFilter string `json:"category_filter,omitempty"`
}

func ValidateAnalyzeRequest(req *AnalyzeRequest) error {
	return validate.Struct(req)
}

func ValidateQueryLogsRequest(req *QueryLogsRequest) error {
	return validate.Struct(req)
}

type Analysis struct {
	AnalysisType string         `json:"analysis_type"`
	Description  string         `json:"description"`
	Metrics      map[string]any `json:"metrics"`
	Insights     []string       `json:"insights"`
}

type AnalyzeResult struct {
	Analysis  Analysis            `json:"analysis"`
	Total     int                 `json:"total_activities"`
	Timeframe string              `json:"timeframe,omitempty"`
	Start     string              `json:"start,omitempty"`
	End       string              `json:"end"`
	Raw       []internal.Activity `json:"activities"`
}

type LogsAnswer struct {
	Answer             string            `json:"answer"`
	RelevantActivities []string          `json:"relevant_activities"`
	Metrics            map[string]string `json:"metrics"`
	Suggestions        []string          `json:"suggestions"`
}

type QueryLogsResult struct {
	Analysis      LogsAnswer     `json:"analysis"`
	Total         int            `json:"total_activities"`
	Timeframe     string         `json:"timeframe,omitempty"`
	Category      string         `json:"category_filter,omitempty"`
	CategoryStats map[string]int `json:"category_stats"`
}

// TimeframeStart resolves a named timeframe to its inclusive lower bound as
// a store timestamp. Unknown names mean "all time".
func TimeframeStart(now time.Time, timeframe string) (string, bool) {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	// Monday-based week offset, matching the weekday axis.
	weekOffset := (int(now.Weekday()) + 6) % 7

	var start time.Time
	switch timeframe {
	case "today":
		start = midnight
	case "yesterday":
		start = midnight.AddDate(0, 0, -1)
	case "this week", "this_week":
		start = midnight.AddDate(0, 0, -weekOffset)
	case "last week", "last_week":
		start = midnight.AddDate(0, 0, -weekOffset-7)
	case "this month", "this_month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "last month", "last_month":
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = firstOfMonth.AddDate(0, -1, 0)
	default:
		return "", false
	}
	return internal.FormatTime(start), true
}

// Analyze answers a natural-language question about the owner's filtered
// history. A failed or unparseable model reply degrades to an error-shaped
// analysis instead of failing the request.
func Analyze(ctx context.Context, repo storage.ActivityRepository, assistant llm.Assistant, userID string, req *AnalyzeRequest) (*AnalyzeResult, error) {
	start, _ := TimeframeStart(time.Now(), req.Timeframe)
	activities, err := ListActivitiesDesc(ctx, repo, userID, start, "")
	if err != nil {
		return nil, err
	}

	categories := map[string]bool{}
	for _, a := range activities {
		categories[displayCategory(a)] = true
	}
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}

	prompt := fmt.Sprintf(`Analyze this natural language query about activities and return a JSON response.
Query: %s
Timeframe: %s

Available data:
- Total activities: %d
- Categories: %s

Return a JSON with:
{
    "analysis_type": "category_summary|time_analysis|pattern_detection",
    "description": "Natural language description of findings",
    "metrics": {},
    "insights": ["insight 1", "insight 2"]
}`, req.Query, timeframeLabel(req.Timeframe), len(activities), strings.Join(names, ", "))

	analysis := Analysis{
		AnalysisType: "error",
		Description:  "Could not analyze the query",
		Metrics:      map[string]any{},
		Insights:     []string{},
	}
	if content, err := assistant.Answer(ctx, "", prompt); err == nil {
		var parsed Analysis
		if json.Unmarshal([]byte(content), &parsed) == nil && parsed.Description != "" {
			analysis = parsed
		}
	}

	return &AnalyzeResult{
		Analysis:  analysis,
		Total:     len(activities),
		Timeframe: req.Timeframe,
		Start:     start,
		End:       internal.NowString(),
		Raw:       activities,
	}, nil
}

const queryLogsSystem = "You are an AI assistant analyzing activity logs. Provide clear, concise answers with relevant metrics and insights."

// QueryLogs answers a question over the owner's history with optional
// timeframe and category narrowing.
func QueryLogs(ctx context.Context, repo storage.ActivityRepository, assistant llm.Assistant, userID string, req *QueryLogsRequest) (*QueryLogsResult, error) {
	start, _ := TimeframeStart(time.Now(), req.Timeframe)
	activities, err := ListActivitiesDesc(ctx, repo, userID, start, "")
	if err != nil {
		return nil, err
	}
	if req.CategoryFilter != "" {
		filtered := activities[:0]
		for _, a := range activities {
			if a.Category == req.CategoryFilter {
				filtered = append(filtered, a)
			}
		}
		activities = filtered
	}

	categoryStats := map[string]int{}
	for _, a := range activities {
		categoryStats[displayCategory(a)]++
	}

	// Last 10 activities as model context.
	recent := activities
	if len(recent) > 10 {
		recent = recent[:10]
	}
	lines := make([]string, 0, len(recent))
	for _, a := range recent {
		lines = append(lines, fmt.Sprintf("- %s: %s (Category: %s)", a.Timestamp, a.RawText, displayCategory(a)))
	}

	prompt := fmt.Sprintf(`Analyze this query about activity logs and provide a detailed answer.

Context:
- Total activities: %d
- Time period: %s
- Category distribution: %v

Recent activities:
%s

User query: %s

Provide a JSON response with:
{
    "answer": "Detailed natural language answer to the query",
    "relevant_activities": ["List of relevant activity texts"],
    "metrics": {},
    "suggestions": ["Relevant suggestions or insights based on the query"]
}`, len(activities), timeframeLabel(req.Timeframe), categoryStats, strings.Join(lines, "\n"), req.Query)

	answer := LogsAnswer{
		Answer:             "Could not analyze the query properly. Please try rephrasing your question.",
		RelevantActivities: []string{},
		Metrics:            map[string]string{},
		Suggestions:        []string{},
	}
	if content, err := assistant.Answer(ctx, queryLogsSystem, prompt); err == nil {
		var parsed LogsAnswer
		if json.Unmarshal([]byte(content), &parsed) == nil && parsed.Answer != "" {
			answer = parsed
		}
	}

	return &QueryLogsResult{
		Analysis:      answer,
		Total:         len(activities),
		Timeframe:     req.Timeframe,
		Category:      req.CategoryFilter,
		CategoryStats: categoryStats,
	}, nil
}

func displayCategory(a internal.Activity) string {
	if a.Category == "" {
		return "uncategorized"
	}
	return a.Category
}

func timeframeLabel(tf string) string {
	if tf == "" {
		return "all time"
	}
	return tf
}
