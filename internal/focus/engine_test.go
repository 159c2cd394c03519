package focus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okhv/focal/internal/config"
	"github.com/okhv/focal/internal/db"
	"github.com/okhv/focal/internal/focus"
	"github.com/okhv/focal/internal/models"
)

// fakeClock is a mutable time source injected into the engine.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type fixture struct {
	engine  *focus.Engine
	clock   *fakeClock
	cfg     *config.Config
	project *models.Project
	side    *models.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := db.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	project, err := db.CreateProject(gdb, "website", "main work")
	require.NoError(t, err)
	side, err := db.CreateProject(gdb, "side-quest", "")
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	cfg := config.Default()
	engine := focus.New(gdb, cfg, zap.NewNop(), focus.WithClock(clock.Now))

	return &fixture{engine: engine, clock: clock, cfg: cfg, project: project, side: side}
}

func (f *fixture) start(t *testing.T, goalMinutes int) *models.Session {
	t.Helper()
	session, err := f.engine.Start(f.project.ID, goalMinutes)
	require.NoError(t, err)
	return session
}

func TestStartValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Start(f.project.ID, 4)
	assert.True(t, focus.IsValidation(err), "goal below minimum should be rejected")

	_, err = f.engine.Start(f.project.ID, 181)
	assert.True(t, focus.IsValidation(err), "goal above maximum should be rejected")

	_, err = f.engine.Start(9999, 25)
	assert.True(t, focus.IsValidation(err), "unknown project should be rejected")

	f.start(t, 25)
	_, err = f.engine.Start(f.project.ID, 25)
	assert.True(t, focus.IsValidation(err), "second concurrent session should be rejected")
}

func TestStartSetsTargetEnd(t *testing.T) {
	f := newFixture(t)

	session := f.start(t, 25)
	assert.Equal(t, models.StatusActive, session.Status)
	assert.Equal(t, f.clock.Now().Add(25*time.Minute), session.TargetEndAt)

	events, err := f.engine.Events(session.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventStart, events[0].Type)
	assert.Equal(t, "website", events[0].Metadata["project"])
}

func TestPauseFreezesCountdown(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 25)
	target := session.TargetEndAt

	f.clock.Advance(5 * time.Minute)
	session, err := f.engine.Pause(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, session.Status)

	_, err = f.engine.Pause(session.ID)
	assert.True(t, focus.IsValidation(err), "pausing a paused session is a no-op guard")

	f.clock.Advance(10 * time.Minute)
	session, err = f.engine.Resume(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, session.Status)
	assert.Equal(t, target.Add(10*time.Minute), session.TargetEndAt, "paused span pushes the target end forward")
	assert.Equal(t, 600, session.PausedSeconds)

	_, err = f.engine.Resume(session.ID)
	assert.True(t, focus.IsValidation(err), "resuming an active session is a no-op guard")
}

func TestExtend(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 25)
	target := session.TargetEndAt

	session, err := f.engine.Extend(session.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, target.Add(15*time.Minute), session.TargetEndAt)

	events, err := f.engine.Events(session.ID)
	require.NoError(t, err)
	last := events[len(events)-1]
	assert.Equal(t, models.EventExtend, last.Type)
	assert.Equal(t, "15", last.Metadata["minutes"])

	_, err = f.engine.Extend(session.ID, 4)
	assert.True(t, focus.IsValidation(err))
	_, err = f.engine.Extend(session.ID, 61)
	assert.True(t, focus.IsValidation(err))

	_, err = f.engine.Pause(session.ID)
	require.NoError(t, err)
	_, err = f.engine.Extend(session.ID, 15)
	assert.True(t, focus.IsValidation(err), "extending a paused session is rejected")
}

func TestEndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 25)

	f.clock.Advance(25 * time.Minute)
	ended, err := f.engine.End(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, ended.Status)
	assert.Equal(t, 25, ended.ActualDurationMinutes)
	assert.Equal(t, 100, ended.FocusScore)
	require.NotNil(t, ended.EndedAt)

	f.clock.Advance(2 * time.Hour)
	again, err := f.engine.End(session.ID)
	require.NoError(t, err)
	assert.Equal(t, ended.ActualDurationMinutes, again.ActualDurationMinutes)
	assert.Equal(t, ended.FocusScore, again.FocusScore)
	assert.Equal(t, ended.EndedAt.Unix(), again.EndedAt.Unix())

	events, err := f.engine.Events(session.ID)
	require.NoError(t, err)
	endEvents := 0
	for _, event := range events {
		if event.Type == models.EventEnd {
			endEvents++
		}
	}
	assert.Equal(t, 1, endEvents, "repeat end must not append another end event")
}

func TestImmediateEnd(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 25)

	ended, err := f.engine.End(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, ended.Status)
	assert.Equal(t, 0, ended.ActualDurationMinutes)
	// Zero drifts and distractions: only the shortfall penalty applies.
	assert.Equal(t, 100-f.cfg.Score.ShortfallPenaltyMax, ended.FocusScore)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 25)

	cancelled, err := f.engine.Cancel(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Zero(t, cancelled.FocusScore)

	_, err = f.engine.Cancel(session.ID)
	assert.True(t, focus.IsValidation(err))
}

func TestActive(t *testing.T) {
	f := newFixture(t)

	active, err := f.engine.Active()
	require.NoError(t, err)
	assert.Nil(t, active)

	session := f.start(t, 25)
	active, err = f.engine.Active()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, session.ID, active.ID)

	_, err = f.engine.Pause(session.ID)
	require.NoError(t, err)
	active, err = f.engine.Active()
	require.NoError(t, err)
	require.NotNil(t, active, "paused sessions are still the active session")

	_, err = f.engine.End(session.ID)
	require.NoError(t, err)
	active, err = f.engine.Active()
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestSessionNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Session(42)
	assert.True(t, focus.IsNotFound(err))
	_, err = f.engine.End(42)
	assert.True(t, focus.IsNotFound(err))
	_, err = f.engine.Summary(42)
	assert.True(t, focus.IsNotFound(err))
}

func TestCountersNeverDecrease(t *testing.T) {
	f := newFixture(t)
	session := f.start(t, 60)

	var lastDrifts, lastDistractions int
	check := func() {
		current, err := f.engine.Session(session.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, current.DriftCount, lastDrifts)
		assert.GreaterOrEqual(t, current.DistractionCount, lastDistractions)
		lastDrifts = current.DriftCount
		lastDistractions = current.DistractionCount
	}

	for i := 0; i < 3; i++ {
		_, err := f.engine.DetectDrift(session.ID, "email", "")
		require.NoError(t, err)
		check()

		f.clock.Advance(time.Minute)
		_, err = f.engine.ResolveDrift(session.ID, "")
		require.NoError(t, err)
		check()

		_, err = f.engine.LogDistraction(session.ID, models.DistractionPhone, "")
		require.NoError(t, err)
		check()
	}

	final, err := f.engine.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, final.DriftCount)
	assert.Equal(t, 3, final.DistractionCount)
}
