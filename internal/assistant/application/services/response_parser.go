package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnalysisPayload is the structured daily review the model is asked for.
type AnalysisPayload struct {
	Summary         string   `json:"summary"`
	Achievements    []string `json:"achievements"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
	OverallScore    int      `json:"overall_score"`
}

// ScheduleItemPayload is one time-blocked entry in a generated day plan.
type ScheduleItemPayload struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Category        string `json:"category"`
}

const fallbackSummaryLimit = 200

// ParseAnalysisResponse decodes the model's daily review. Models wrap JSON
// in markdown fences often enough that the fence is stripped first. A parse
// failure is returned to the caller rather than silently coerced, so the
// caller can decide to fall back.
func ParseAnalysisResponse(raw string) (AnalysisPayload, error) {
	var payload AnalysisPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return AnalysisPayload{}, fmt.Errorf("parse analysis response: %w", err)
	}
	if payload.Achievements == nil {
		payload.Achievements = []string{}
	}
	if payload.Improvements == nil {
		payload.Improvements = []string{}
	}
	if payload.Recommendations == nil {
		payload.Recommendations = []string{}
	}
	return payload, nil
}

// FallbackAnalysis builds the placeholder review used when the model
// answered in prose: the leading text becomes the summary and the score is
// pinned to a neutral 50.
func FallbackAnalysis(raw string) AnalysisPayload {
	summary := strings.TrimSpace(raw)
	if runes := []rune(summary); len(runes) > fallbackSummaryLimit {
		summary = string(runes[:fallbackSummaryLimit])
	}
	return AnalysisPayload{
		Summary:         summary,
		Achievements:    []string{},
		Improvements:    []string{},
		Recommendations: []string{},
		OverallScore:    50,
	}
}

// ParseScheduleResponse decodes a generated day plan. Unlike the analysis
// there is no sensible fallback: a plan that cannot be parsed is an error.
func ParseScheduleResponse(raw string) ([]ScheduleItemPayload, error) {
	var items []ScheduleItemPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		return nil, fmt.Errorf("parse schedule response: %w", err)
	}
	return items, nil
}

// stripCodeFence removes a surrounding markdown code fence and an optional
// leading "json" language tag.
func stripCodeFence(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		parts := strings.Split(clean, "```")
		if len(parts) > 1 {
			clean = parts[1]
		}
		clean = strings.TrimPrefix(clean, "json")
	}
	return strings.TrimSpace(clean)
}
