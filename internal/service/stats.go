package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/chaisthra/vibetrack/internal"
)

// weekdays is Monday-first; it doubles as the tie-break order for
// most-active-day.
var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func hourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

type CategorySuggestion struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	LastUsed string `json:"last_used"`
}

type CategoryBreakdown struct {
	Count     int    `json:"count"`
	TimeSpent int    `json:"time_spent"`
	Color     string `json:"color"`
}

type Trends struct {
	MostActiveDay      string                       `json:"most_active_day"`
	MostActiveHour     string                       `json:"most_active_hour"`
	MostCommonCategory string                       `json:"most_common_category"`
	CategoryBreakdown  map[string]CategoryBreakdown `json:"category_breakdown"`
}

type VisualizationBundle struct {
	Distribution   map[string]int            `json:"distribution"`
	TimeSpent      map[string]int            `json:"time_spent"`
	DailyPatterns  map[string]map[string]int `json:"daily_patterns"`
	HourlyPatterns map[string]map[string]int `json:"hourly_patterns"`
	ColorMapping   map[string]string         `json:"color_mapping"`
	Trends         Trends                    `json:"trends"`
}

// minutesPerActivity is a flat estimate, not a measured duration.
const minutesPerActivity = 30

// StatsForUser projects the owner's sub-record out of each counter entry.
func StatsForUser(counters map[string]*internal.CounterEntry, userID string) map[string]internal.UserCategoryStats {
	stats := map[string]internal.UserCategoryStats{}
	for name, entry := range counters {
		if us, ok := entry.UserStats[userID]; ok && us != nil {
			stats[name] = *us
		}
	}
	return stats
}

// SuggestedCategories ranks the owner's categories by use count, breaking
// equal counts by more recent last use. Timestamps are fixed-width, so the
// string comparison orders correctly.
func SuggestedCategories(counters map[string]*internal.CounterEntry, userID string, limit int) []CategorySuggestion {
	suggestions := []CategorySuggestion{}
	for name, entry := range counters {
		if us, ok := entry.UserStats[userID]; ok && us != nil {
			suggestions = append(suggestions, CategorySuggestion{
				Name:     name,
				Count:    us.Count,
				LastUsed: us.LastUsed,
			})
		}
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Count != suggestions[j].Count {
			return suggestions[i].Count > suggestions[j].Count
		}
		if suggestions[i].LastUsed != suggestions[j].LastUsed {
			return suggestions[i].LastUsed > suggestions[j].LastUsed
		}
		return suggestions[i].Name < suggestions[j].Name
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// VisualizationSummary builds the dashboard bundle over the fixed category
// set. Every day/hour × category bucket exists even with no data; activities
// with an unknown category or a missing/invalid timestamp are skipped from
// the buckets but still count toward the caller's activity total.
func VisualizationSummary(activities []internal.Activity, categories, palette []string) VisualizationBundle {
	known := make(map[string]bool, len(categories))
	distribution := map[string]int{}
	timeSpent := map[string]int{}
	colorMapping := map[string]string{}
	for i, cat := range categories {
		known[cat] = true
		distribution[cat] = 0
		timeSpent[cat] = 0
		colorMapping[cat] = palette[i%len(palette)]
	}

	daily := map[string]map[string]int{}
	for _, day := range weekdays {
		daily[day] = map[string]int{}
		for _, cat := range categories {
			daily[day][cat] = 0
		}
	}
	hourly := map[string]map[string]int{}
	for h := 0; h < 24; h++ {
		hourly[hourLabel(h)] = map[string]int{}
		for _, cat := range categories {
			hourly[hourLabel(h)][cat] = 0
		}
	}

	for _, a := range activities {
		if !known[a.Category] {
			continue
		}
		distribution[a.Category]++
		timeSpent[a.Category] += minutesPerActivity

		if a.Timestamp == "" {
			continue
		}
		ts, err := time.Parse(internal.TimeLayout, a.Timestamp)
		if err != nil {
			continue
		}
		daily[ts.Weekday().String()][a.Category]++
		hourly[hourLabel(ts.Hour())][a.Category]++
	}

	breakdown := map[string]CategoryBreakdown{}
	for _, cat := range categories {
		breakdown[cat] = CategoryBreakdown{
			Count:     distribution[cat],
			TimeSpent: timeSpent[cat],
			Color:     colorMapping[cat],
		}
	}

	return VisualizationBundle{
		Distribution:   distribution,
		TimeSpent:      timeSpent,
		DailyPatterns:  daily,
		HourlyPatterns: hourly,
		ColorMapping:   colorMapping,
		Trends: Trends{
			MostActiveDay:      firstMaxBucket(weekdays, daily),
			MostActiveHour:     firstMaxBucket(hourLabels(), hourly),
			MostCommonCategory: firstMaxCount(categories, distribution),
			CategoryBreakdown:  breakdown,
		},
	}
}

func hourLabels() []string {
	labels := make([]string, 24)
	for h := 0; h < 24; h++ {
		labels[h] = hourLabel(h)
	}
	return labels
}

// firstMaxBucket scans the axis in order and keeps the first strictly
// largest summed bucket, which makes ties deterministic.
func firstMaxBucket(axis []string, buckets map[string]map[string]int) string {
	best := axis[0]
	bestSum := -1
	for _, key := range axis {
		sum := 0
		for _, n := range buckets[key] {
			sum += n
		}
		if sum > bestSum {
			best = key
			bestSum = sum
		}
	}
	return best
}

func firstMaxCount(axis []string, counts map[string]int) string {
	best := axis[0]
	bestCount := -1
	for _, key := range axis {
		if counts[key] > bestCount {
			best = key
			bestCount = counts[key]
		}
	}
	return best
}
