package focus

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/okhv/focal/internal/models"
)

// Context labels that classify a drift as an external pull rather than an
// offshoot of the work itself.
var externalContexts = map[string]bool{
	"email":    true,
	"slack":    true,
	"phone":    true,
	"news":     true,
	"social":   true,
	"browsing": true,
}

// DetectDrift decides whether switching to newContext counts as drift for
// the session. It returns nil without error when it does not: the session
// is not active, the context is the tracked project itself, or a prior
// drift is still unresolved.
func (e *Engine) DetectDrift(sessionID uint, newContext, note string) (*models.DriftEntry, error) {
	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusActive {
		return nil, nil
	}
	if newContext == "" || newContext == session.Project.Name {
		return nil, nil
	}

	open, err := e.OpenDrift(sessionID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		// Only one drift may be open per session at a time.
		return nil, nil
	}

	now := e.now()
	entry := models.DriftEntry{
		SessionID: session.ID,
		StartedAt: now,
		Type:      e.classifyDrift(newContext),
		Context:   newContext,
		Note:      note,
	}

	err = e.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if err := tx.Model(session).UpdateColumn("drift_count", gorm.Expr("drift_count + 1")).Error; err != nil {
			return err
		}
		return appendEvent(tx, session.ID, now, models.EventDrift, map[string]string{
			"context":    newContext,
			"drift_type": entry.Type,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record drift: %w", err)
	}

	e.log.Info("drift detected",
		zap.Uint("session_id", session.ID),
		zap.String("context", newContext),
		zap.String("drift_type", entry.Type))
	return &entry, nil
}

// classifyDrift labels the drift by what the context looks like: another
// registered project, a known external pull, or an offshoot of the work.
func (e *Engine) classifyDrift(context string) string {
	var count int64
	e.gdb.Model(&models.Project{}).Where("name = ?", context).Count(&count)
	if count > 0 {
		return models.DriftSideProject
	}
	if externalContexts[context] {
		return models.DriftExternal
	}
	return models.DriftOffshoot
}

// OpenDrift returns the session's unresolved drift entry, or nil.
func (e *Engine) OpenDrift(sessionID uint) (*models.DriftEntry, error) {
	var entry models.DriftEntry
	err := e.gdb.
		Where("session_id = ? AND ended_at IS NULL", sessionID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ResolveDrift closes the session's open drift entry and appends the
// return event. It fails with NotFoundError when no drift is open.
func (e *Engine) ResolveDrift(sessionID uint, note string) (*models.DriftEntry, error) {
	if _, err := e.Session(sessionID); err != nil {
		return nil, err
	}

	open, err := e.OpenDrift(sessionID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, &NotFoundError{Entity: "open drift for session", ID: sessionID}
	}

	now := e.now()
	open.EndedAt = &now
	open.DurationMinutes = driftMinutes(open.StartedAt, now)
	if note != "" {
		open.Note = note
	}

	err = e.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(open).Error; err != nil {
			return err
		}
		return appendEvent(tx, sessionID, now, models.EventReturn, map[string]string{
			"context": open.Context,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve drift: %w", err)
	}

	e.log.Info("drift resolved",
		zap.Uint("session_id", sessionID),
		zap.Int("duration_minutes", open.DurationMinutes))
	return open, nil
}

// closeOpenDrift resolves a dangling drift inside an enclosing transaction,
// used when a session ends mid-drift.
func closeOpenDrift(tx *gorm.DB, sessionID uint, now time.Time, note string) error {
	var entry models.DriftEntry
	err := tx.Where("session_id = ? AND ended_at IS NULL", sessionID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	entry.EndedAt = &now
	entry.DurationMinutes = driftMinutes(entry.StartedAt, now)
	if entry.Note == "" {
		entry.Note = note
	}
	if err := tx.Save(&entry).Error; err != nil {
		return err
	}
	return appendEvent(tx, sessionID, now, models.EventReturn, map[string]string{
		"context": entry.Context,
		"reason":  "session_end",
	})
}

func driftMinutes(from, to time.Time) int {
	minutes := int(math.Round(to.Sub(from).Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}

// LogDistraction appends a self-reported distraction and increments the
// session's distraction counter.
func (e *Engine) LogDistraction(sessionID uint, distractionType, note string) (*models.Distraction, error) {
	switch distractionType {
	case models.DistractionPhone, models.DistractionSocialMedia,
		models.DistractionConversation, models.DistractionSnack, models.DistractionOther:
	default:
		return nil, validationErr("type", "unknown distraction type %q", distractionType)
	}

	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return nil, validationErr("session", "session #%d is already %s", session.ID, session.Status)
	}

	now := e.now()
	distraction := models.Distraction{
		SessionID: session.ID,
		At:        now,
		Type:      distractionType,
		Note:      note,
	}

	err = e.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&distraction).Error; err != nil {
			return err
		}
		if err := tx.Model(session).UpdateColumn("distraction_count", gorm.Expr("distraction_count + 1")).Error; err != nil {
			return err
		}
		return appendEvent(tx, session.ID, now, models.EventDistraction, map[string]string{
			"distraction_type": distractionType,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log distraction: %w", err)
	}

	e.log.Debug("distraction logged",
		zap.Uint("session_id", session.ID),
		zap.String("type", distractionType))
	return &distraction, nil
}
