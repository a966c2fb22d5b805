package stats

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository/memory"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func topicOn(activityID int64, dates ...string) domain.WorkshopTopic {
	sessions := make([]interface{}, 0, len(dates))
	for _, d := range dates {
		sessions = append(sessions, map[string]interface{}{"fecha": d})
	}
	return domain.WorkshopTopic{
		ActivityID: activityID,
		Name:       "Topic",
		Schedule:   map[string]interface{}{"originales": sessions},
	}
}

func TestTopicDatesLayouts(t *testing.T) {
	topic := domain.WorkshopTopic{Schedule: []interface{}{
		map[string]interface{}{"fecha": "2024-03-05"},
		map[string]interface{}{"date": "2024-03-06T18:30:00Z"},
		map[string]interface{}{"fecha": "07/03/2024"},
		map[string]interface{}{"fecha": "tomorrow"},
		map[string]interface{}{"nested": `[{"fecha":"2024-03-08 09:00:00"}]`},
	}}

	got := TopicDates(topic)
	require.Len(t, got, 4)
	require.ElementsMatch(t, []time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	}, got)
}

func TestTopicDatesPlainLists(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	schedules := []interface{}{
		[]interface{}{"2099-01-05", "2099-01-10"},
		map[string]interface{}{"originales": map[string]interface{}{"fechas": []interface{}{"2099-01-05"}}},
		map[string]interface{}{"fecha": []interface{}{"2099-01-05"}},
		`{"fechas":["2099-01-05","not a date"]}`,
		map[string]interface{}{"fechas": []interface{}{map[string]interface{}{"fecha": "2099-01-05"}}},
	}

	for _, schedule := range schedules {
		topic := domain.WorkshopTopic{Name: "Topic", Schedule: schedule}
		require.NotEmpty(t, TopicDates(topic), "%v", schedule)
		require.False(t, WorkshopFinished([]domain.WorkshopTopic{topic}, now), "%v", schedule)
	}

	_, days := WorkshopSpan([]domain.WorkshopTopic{{Name: "A", Schedule: schedules[0]}})
	require.Equal(t, 6, days)
}

func TestWorkshopSpanSingleDate(t *testing.T) {
	topics, days := WorkshopSpan([]domain.WorkshopTopic{topicOn(1, "2024-05-01")})
	require.Equal(t, 1, topics)
	require.Equal(t, 1, days)
}

func TestWorkshopFinished(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	require.True(t, WorkshopFinished(nil, now), "no dates at all")
	require.True(t, WorkshopFinished([]domain.WorkshopTopic{{Name: "A"}}, now))
	require.True(t, WorkshopFinished([]domain.WorkshopTopic{topicOn(1, "2024-06-01", "2024-06-14")}, now))
	require.False(t, WorkshopFinished([]domain.WorkshopTopic{topicOn(1, "2024-06-15")}, now), "a session today is not over")
	require.False(t, WorkshopFinished([]domain.WorkshopTopic{topicOn(1, "2024-06-01"), topicOn(1, "2024-07-01")}, now))
}

func TestFinalityDetector(t *testing.T) {
	store := memory.NewStore()
	store.AddTopic(topicOn(1, "2020-01-01"))
	store.AddTopic(topicOn(2, "2999-01-01"))
	store.AddTopic(domain.WorkshopTopic{ActivityID: 3, Name: "Undated"})
	store.FailActivity(4, errors.New("timeout"))

	d := NewFinalityDetector(store.Workshops())
	d.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	require.True(t, d.IsFinished(ctx, 1))
	require.False(t, d.IsFinished(ctx, 2))
	require.True(t, d.IsFinished(ctx, 3))
	require.False(t, d.IsFinished(ctx, 4), "lookup failures keep the workshop listed")
}
