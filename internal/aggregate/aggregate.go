// Package aggregate turns the persisted alert stream into the dashboard
// report: totals, per-action counts, a dense trailing hourly time-series in
// the business timezone, and per-file-category counts.
package aggregate

import (
	"strings"
	"time"

	"github.com/aashig53/InsiderThreatDetector/internal/models"
)

// SeriesHours is the fixed width of the hourly time-series: the trailing 25
// local hours ending at the hour containing "now", inclusive.
const SeriesHours = 25

// hourLabel matches the dashboard's bucket key format.
const hourLabel = "2006-01-02 15:00"

// NoExtension is the category for file names without an extension.
const NoExtension = "no_ext"

// HourBucket is one point of the hourly time-series.
type HourBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// Report is the aggregation result served to the dashboard. ActionCounts and
// FileTypeCounts are unordered maps; HourlySeries is ordered oldest first.
type Report struct {
	TotalAlerts      int            `json:"total_alerts"`
	SuspiciousAlerts int            `json:"suspicious_alerts"`
	ActionCounts     map[string]int `json:"action_counts"`
	HourlySeries     []HourBucket   `json:"hourly_series"`
	FileTypeCounts   map[string]int `json:"file_type_counts"`
}

// BuildReport computes the report over a fixed set of alerts at a fixed
// instant. Deterministic for fixed inputs, modulo map iteration order.
func BuildReport(alerts []models.Alert, now time.Time, loc *time.Location) Report {
	report := Report{
		TotalAlerts:    len(alerts),
		ActionCounts:   make(map[string]int),
		FileTypeCounts: make(map[string]int),
	}

	byHour := make(map[string]int)
	for _, alert := range alerts {
		if alert.SuspicionLevel > 0 {
			report.SuspiciousAlerts++
		}
		report.ActionCounts[alert.Action]++
		report.FileTypeCounts[FileCategory(alert.FileName)]++
		byHour[alert.Timestamp.In(loc).Format(hourLabel)]++
	}

	// Dense series: every trailing hour appears, zeros included.
	localNow := now.In(loc)
	report.HourlySeries = make([]HourBucket, 0, SeriesHours)
	for i := SeriesHours - 1; i >= 0; i-- {
		label := localNow.Add(-time.Duration(i) * time.Hour).Format(hourLabel)
		report.HourlySeries = append(report.HourlySeries, HourBucket{
			Hour:  label,
			Count: byHour[label],
		})
	}

	return report
}

// categorySynonyms folds known extension variants into one canonical
// category.
var categorySynonyms = map[string]string{
	"docx": "doc",
	"xlsx": "xls",
	"jpeg": "jpg",
}

// FileCategory normalizes a file name to its reporting category: the
// lower-cased extension, with known synonyms merged and extension-less names
// bucketed under NoExtension.
func FileCategory(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return NoExtension
	}
	ext := strings.ToLower(fileName[idx+1:])
	if canonical, ok := categorySynonyms[ext]; ok {
		return canonical
	}
	return ext
}
