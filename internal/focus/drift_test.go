package focus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhv/focal/internal/focus"
	"github.com/okhv/focal/internal/models"
)

func TestDetectDriftLifecycle(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 60)

	entry, err := f.engine.DetectDrift(session.ID, "twitter thread", "")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, models.DriftOffshoot, entry.Type)
	assert.Nil(t, entry.EndedAt)

	current, err := f.engine.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.DriftCount)

	// Mutual exclusion: a second drift cannot open while one is unresolved.
	second, err := f.engine.DetectDrift(session.ID, "another thing", "")
	require.NoError(t, err)
	assert.Nil(t, second)

	current, err = f.engine.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.DriftCount, "suppressed drift must not bump the counter")

	f.clock.Advance(7 * time.Minute)
	resolved, err := f.engine.ResolveDrift(session.ID, "back now")
	require.NoError(t, err)
	assert.Equal(t, 7, resolved.DurationMinutes)
	assert.Equal(t, "back now", resolved.Note)
	require.NotNil(t, resolved.EndedAt)

	// With the drift resolved, detection works again.
	entry, err = f.engine.DetectDrift(session.ID, "email", "")
	require.NoError(t, err)
	require.NotNil(t, entry)

	current, err = f.engine.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.DriftCount)
}

func TestDetectDriftGuards(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 60)

	// Switching within the tracked project is not drift.
	entry, err := f.engine.DetectDrift(session.ID, "website", "")
	require.NoError(t, err)
	assert.Nil(t, entry)

	// A paused session is not drifting.
	_, err = f.engine.Pause(session.ID)
	require.NoError(t, err)
	entry, err = f.engine.DetectDrift(session.ID, "email", "")
	require.NoError(t, err)
	assert.Nil(t, entry)

	_, err = f.engine.DetectDrift(999, "email", "")
	assert.True(t, focus.IsNotFound(err))
}

func TestDriftClassification(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 60)

	cases := []struct {
		context string
		want    string
	}{
		{"side-quest", models.DriftSideProject},
		{"email", models.DriftExternal},
		{"refactoring the build", models.DriftOffshoot},
	}

	for _, tc := range cases {
		entry, err := f.engine.DetectDrift(session.ID, tc.context, "")
		require.NoError(t, err)
		require.NotNil(t, entry, "context %q", tc.context)
		assert.Equal(t, tc.want, entry.Type, "context %q", tc.context)

		_, err = f.engine.ResolveDrift(session.ID, "")
		require.NoError(t, err)
	}
}

func TestResolveWithoutOpenDrift(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 60)

	_, err := f.engine.ResolveDrift(session.ID, "")
	assert.True(t, focus.IsNotFound(err))
}

func TestEndClosesOpenDrift(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 60)

	_, err := f.engine.DetectDrift(session.ID, "email", "")
	require.NoError(t, err)

	f.clock.Advance(4 * time.Minute)
	_, err = f.engine.End(session.ID)
	require.NoError(t, err)

	open, err := f.engine.OpenDrift(session.ID)
	require.NoError(t, err)
	assert.Nil(t, open, "ending the session must close the dangling drift")

	summary, err := f.engine.Summary(session.ID)
	require.NoError(t, err)
	require.Len(t, summary.DriftDetails, 1)
	assert.Equal(t, 4, summary.DriftDetails[0].DurationMinutes)
}

func TestLogDistraction(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 60)

	_, err := f.engine.LogDistraction(session.ID, "doomscrolling", "")
	assert.True(t, focus.IsValidation(err), "unknown distraction type is rejected")

	for i := 0; i < 3; i++ {
		_, err := f.engine.LogDistraction(session.ID, models.DistractionPhone, "")
		require.NoError(t, err)
	}

	summary, err := f.engine.Summary(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalDistractions)

	// The session is finalized by the summary; further logging is rejected.
	_, err = f.engine.LogDistraction(session.ID, models.DistractionPhone, "")
	assert.True(t, focus.IsValidation(err))
}
