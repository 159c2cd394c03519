package focus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhv/focal/internal/models"
)

func TestSummaryFinalizesRunningSession(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 25)

	f.clock.Advance(25 * time.Minute)
	summary, err := f.engine.Summary(session.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, summary.Session.Status)
	assert.Equal(t, 25, summary.Session.ActualDurationMinutes)
	assert.Equal(t, 100, summary.FocusScore)
	require.NotEmpty(t, summary.Timeline)
	assert.Equal(t, models.EventStart, summary.Timeline[0].Type)
	assert.Equal(t, models.EventEnd, summary.Timeline[len(summary.Timeline)-1].Type)
}

func TestSummaryTimelineOrdering(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 60)

	f.clock.Advance(2 * time.Minute)
	_, err := f.engine.DetectDrift(session.ID, "email", "")
	require.NoError(t, err)

	f.clock.Advance(3 * time.Minute)
	_, err = f.engine.ResolveDrift(session.ID, "")
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	_, err = f.engine.LogDistraction(session.ID, models.DistractionSnack, "")
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	summary, err := f.engine.Summary(session.ID)
	require.NoError(t, err)

	for i := 1; i < len(summary.Timeline); i++ {
		assert.False(t, summary.Timeline[i].At.Before(summary.Timeline[i-1].At),
			"timeline must be ascending by timestamp")
	}

	types := make([]string, len(summary.Timeline))
	for i, event := range summary.Timeline {
		types[i] = event.Type
	}
	assert.Equal(t, []string{
		models.EventStart,
		models.EventDrift,
		models.EventReturn,
		models.EventDistraction,
		models.EventEnd,
	}, types)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		session := f.start(t, 25)
		f.clock.Advance(25 * time.Minute)
		_, err := f.engine.End(session.ID)
		require.NoError(t, err)
		f.clock.Advance(time.Hour)
	}

	sessions, err := f.engine.History(2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].StartedAt.After(sessions[1].StartedAt), "newest first")
	assert.Equal(t, "website", sessions[0].Project.Name, "project is preloaded")
}
