package stats

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"
)

const day = 24 * time.Hour

// dateLayouts are the formats session dates have been stored in.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// TopicDates returns every session date found anywhere in the topic's schedule
// payload, truncated to midnight UTC. Unparseable values are skipped.
func TopicDates(topic domain.WorkshopTopic) []time.Time {
	var out []time.Time
	collectDates(topic.Schedule, &out)
	return out
}

func collectDates(v interface{}, out *[]time.Time) {
	switch t := v.(type) {
	case string:
		// The payload itself may be JSON encoded.
		s := strings.TrimSpace(t)
		if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
			var decoded interface{}
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				collectDates(decoded, out)
			}
			return
		}
		if d, ok := parseDate(s); ok {
			*out = append(*out, d)
		}
	case map[string]interface{}:
		// Dates sit under "fecha", "fechas", "date" or inside plain lists.
		for _, val := range t {
			collectDates(val, out)
		}
	case []interface{}:
		for _, item := range t {
			collectDates(item, out)
		}
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return dateOnly(ts), true
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WorkshopSpan computes the workshop statistics from its topics.
// Topics counts distinct non-empty active topic names. Days is the calendar span
// from the earliest to the latest session date, inclusive, falling back to Topics
// when no date is recorded.
func WorkshopSpan(topics []domain.WorkshopTopic) (topicCount, days int) {
	names := map[string]struct{}{}
	var dates []time.Time
	for _, t := range topics {
		if name := strings.TrimSpace(t.Name); name != "" && t.IsActive() {
			names[name] = struct{}{}
		}
		dates = append(dates, TopicDates(t)...)
	}
	topicCount = len(names)

	minDate, maxDate, ok := bounds(dates)
	if !ok {
		return topicCount, topicCount
	}
	days = int(math.Ceil(float64(maxDate.Sub(minDate))/float64(day))) + 1
	return topicCount, days
}

func bounds(dates []time.Time) (minDate, maxDate time.Time, ok bool) {
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	return minDate, maxDate, true
}

// WorkshopFinished reports whether the latest session date is strictly before today.
// A workshop without any date counts as finished.
func WorkshopFinished(topics []domain.WorkshopTopic, now time.Time) bool {
	var dates []time.Time
	for _, t := range topics {
		dates = append(dates, TopicDates(t)...)
	}
	_, latest, ok := bounds(dates)
	if !ok {
		return true
	}
	return latest.Before(dateOnly(now))
}

// FinalityDetector decides whether a workshop should drop out of listings.
type FinalityDetector struct {
	topics repository.WorkshopRepository
	now    func() time.Time
}

// NewFinalityDetector creates a detector reading topics from the given repository.
func NewFinalityDetector(topics repository.WorkshopRepository) *FinalityDetector {
	return &FinalityDetector{topics: topics, now: time.Now}
}

// IsFinished fails open: when the topics cannot be read the workshop stays visible.
func (d *FinalityDetector) IsFinished(ctx context.Context, activityID int64) bool {
	topics, err := d.topics.GetTopics(ctx, activityID)
	if err != nil {
		slog.WarnContext(ctx, "workshop finality lookup failed",
			slog.Int64("activity_id", activityID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return WorkshopFinished(topics, d.now())
}
