package focus

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/okhv/focal/internal/models"
)

// Nudge is a reminder proposed by the periodic nudge check. Soft nudges
// self-dismiss after AutoDismiss; hard nudges require acknowledgement.
type Nudge struct {
	Kind        string // models.EventNudgeSoft or models.EventNudgeHard
	Message     string
	AutoDismiss time.Duration // zero for hard nudges
}

// Hard reports whether the nudge needs explicit acknowledgement.
func (n Nudge) Hard() bool {
	return n.Kind == models.EventNudgeHard
}

// PlanNudge decides which reminder the session has earned: a hard one once
// the drift count passes the configured threshold, a soft one otherwise.
func (e *Engine) PlanNudge(session *models.Session) Nudge {
	cfg := e.Config().Session
	if session.DriftCount > cfg.HardNudgeDriftThreshold {
		return Nudge{
			Kind:    models.EventNudgeHard,
			Message: fmt.Sprintf("You've drifted %d times this session — close the tangent and get back to %s.", session.DriftCount, session.Project.Name),
		}
	}
	return Nudge{
		Kind:        models.EventNudgeSoft,
		Message:     "Stay on track.",
		AutoDismiss: time.Duration(cfg.SoftNudgeTimeoutSeconds) * time.Second,
	}
}

// RecordNudge appends the nudge to the session's timeline.
func (e *Engine) RecordNudge(sessionID uint, nudge Nudge) error {
	session, err := e.Session(sessionID)
	if err != nil {
		return err
	}
	if session.Terminal() {
		return validationErr("session", "session #%d is already %s", session.ID, session.Status)
	}

	if err := appendEvent(e.gdb, session.ID, e.now(), nudge.Kind, map[string]string{
		"message": nudge.Message,
	}); err != nil {
		return fmt.Errorf("failed to record nudge: %w", err)
	}

	e.log.Debug("nudge recorded",
		zap.Uint("session_id", session.ID),
		zap.String("kind", nudge.Kind))
	return nil
}
