package focus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhv/focal/internal/config"
	"github.com/okhv/focal/internal/models"
)

func TestCheckRegulation(t *testing.T) {
	f := newFixture(t)
	f.cfg.Regulation.Rules = []config.Rule{
		{Type: "hydrate", Message: "drink water", EveryMinutes: 30, MandatoryDelaySeconds: 30},
	}
	session := f.start(t, 120)

	// Not due yet.
	rule, err := f.engine.CheckRegulation(session.ID)
	require.NoError(t, err)
	assert.Nil(t, rule)

	f.clock.Advance(31 * time.Minute)
	rule, err = f.engine.CheckRegulation(session.ID)
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, "hydrate", rule.Type)
	assert.Equal(t, 30, rule.MandatoryDelaySeconds)

	// The hit forced a mandatory pause and left a timeline event.
	session, err = f.engine.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, session.Status)

	events, err := f.engine.Events(session.ID)
	require.NoError(t, err)
	last := events[len(events)-1]
	assert.Equal(t, models.EventRegulation, last.Type)
	assert.Equal(t, "hydrate", last.Metadata["rule"])

	// Paused sessions are never regulated.
	rule, err = f.engine.CheckRegulation(session.ID)
	require.NoError(t, err)
	assert.Nil(t, rule)

	// After resuming, the rule re-anchors on its last firing.
	f.clock.Advance(time.Minute)
	_, err = f.engine.Resume(session.ID)
	require.NoError(t, err)

	rule, err = f.engine.CheckRegulation(session.ID)
	require.NoError(t, err)
	assert.Nil(t, rule, "rule just fired, not due again yet")

	f.clock.Advance(31 * time.Minute)
	rule, err = f.engine.CheckRegulation(session.ID)
	require.NoError(t, err)
	require.NotNil(t, rule, "rule fires again a full interval after the last hit")
}

func TestCheckRegulationFirstMatchingRuleWins(t *testing.T) {
	f := newFixture(t)
	f.cfg.Regulation.Rules = []config.Rule{
		{Type: "stretch", Message: "stretch", EveryMinutes: 20},
		{Type: "hydrate", Message: "drink water", EveryMinutes: 20},
	}
	session := f.start(t, 120)

	f.clock.Advance(21 * time.Minute)
	rule, err := f.engine.CheckRegulation(session.ID)
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, "stretch", rule.Type, "rules are evaluated in config order")

	// One pause per check tick even though both rules were due.
	session, err = f.engine.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaused, session.Status)
}
