package focus

import (
	"github.com/okhv/focal/internal/models"
)

// SessionSummary joins a finalized session with its full history.
type SessionSummary struct {
	Session           models.Session
	TotalDrifts       int
	TotalDistractions int
	FocusScore        int
	Timeline          []models.Event
	DriftDetails      []models.DriftEntry
}

// Summary assembles the report for a session. A session that is still
// running when the summary is requested is ended first, so the summary is
// always computed against a finalized record. Unknown ids return
// NotFoundError so callers can redirect instead of crashing.
func (e *Engine) Summary(sessionID uint) (*SessionSummary, error) {
	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}

	if !session.Terminal() {
		if session, err = e.End(sessionID); err != nil {
			return nil, err
		}
		// Re-read to pick up rows written during finalization.
		if session, err = e.Session(sessionID); err != nil {
			return nil, err
		}
	}

	timeline, err := e.Events(sessionID)
	if err != nil {
		return nil, err
	}

	var drifts []models.DriftEntry
	if err := e.gdb.
		Where("session_id = ?", sessionID).
		Order("started_at ASC").
		Find(&drifts).Error; err != nil {
		return nil, err
	}

	return &SessionSummary{
		Session:           *session,
		TotalDrifts:       session.DriftCount,
		TotalDistractions: session.DistractionCount,
		FocusScore:        session.FocusScore,
		Timeline:          timeline,
		DriftDetails:      drifts,
	}, nil
}

// History returns the most recent sessions, newest first.
func (e *Engine) History(limit int) ([]models.Session, error) {
	if limit <= 0 {
		limit = 10
	}
	var sessions []models.Session
	err := e.gdb.
		Preload("Project").
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
