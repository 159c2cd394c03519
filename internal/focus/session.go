package focus

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/okhv/focal/internal/models"
)

// Goal and extension bounds, in minutes.
const (
	MinGoalMinutes   = 5
	MaxGoalMinutes   = 180
	MinExtendMinutes = 5
	MaxExtendMinutes = 60
)

// Start creates a new active session against a project and appends the
// start event. Only one non-terminal session may exist at a time.
func (e *Engine) Start(projectID uint, goalMinutes int) (*models.Session, error) {
	if goalMinutes < MinGoalMinutes || goalMinutes > MaxGoalMinutes {
		return nil, validationErr("goal", "must be between %d and %d minutes, got %d", MinGoalMinutes, MaxGoalMinutes, goalMinutes)
	}

	var project models.Project
	if err := e.gdb.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErr("project", "no project #%d to focus on", projectID)
		}
		return nil, err
	}
	if project.Archived {
		return nil, validationErr("project", "project %q is archived", project.Name)
	}

	if active, err := e.Active(); err != nil {
		return nil, err
	} else if active != nil {
		return nil, validationErr("session", "session #%d is already running, end it first", active.ID)
	}

	now := e.now()
	session := models.Session{
		ProjectID:   project.ID,
		Status:      models.StatusActive,
		GoalMinutes: goalMinutes,
		StartedAt:   now,
		TargetEndAt: now.Add(time.Duration(goalMinutes) * time.Minute),
	}

	err := e.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		return appendEvent(tx, session.ID, now, models.EventStart, map[string]string{
			"project": project.Name,
			"goal":    strconv.Itoa(goalMinutes),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	session.Project = project
	e.log.Info("session started",
		zap.Uint("session_id", session.ID),
		zap.String("project", project.Name),
		zap.Int("goal_minutes", goalMinutes))
	return &session, nil
}

// Pause freezes an active session's countdown.
func (e *Engine) Pause(sessionID uint) (*models.Session, error) {
	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return nil, validationErr("session", "session #%d is already %s", session.ID, session.Status)
	}
	if session.Status == models.StatusPaused {
		return nil, validationErr("session", "session #%d is already paused", session.ID)
	}

	now := e.now()
	session.Status = models.StatusPaused
	session.PausedAt = &now

	err = e.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		return appendEvent(tx, session.ID, now, models.EventPause, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pause session: %w", err)
	}

	e.log.Debug("session paused", zap.Uint("session_id", session.ID))
	return session, nil
}

// Resume unfreezes a paused session. The paused span is added to the
// target end time so the countdown continues where it left off.
func (e *Engine) Resume(sessionID uint) (*models.Session, error) {
	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return nil, validationErr("session", "session #%d is already %s", session.ID, session.Status)
	}
	if session.Status != models.StatusPaused {
		return nil, validationErr("session", "session #%d is not paused", session.ID)
	}

	now := e.now()
	var paused time.Duration
	if session.PausedAt != nil {
		paused = now.Sub(*session.PausedAt)
		if paused < 0 {
			paused = 0
		}
	}

	session.Status = models.StatusActive
	session.PausedAt = nil
	session.PausedSeconds += int(paused.Seconds())
	session.TargetEndAt = session.TargetEndAt.Add(paused)

	err = e.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		return appendEvent(tx, session.ID, now, models.EventResume, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resume session: %w", err)
	}

	e.log.Debug("session resumed",
		zap.Uint("session_id", session.ID),
		zap.Duration("paused_for", paused))
	return session, nil
}

// Extend pushes the target end time forward. Extending a paused session is
// rejected so the frozen countdown cannot silently grow.
func (e *Engine) Extend(sessionID uint, minutes int) (*models.Session, error) {
	if minutes < MinExtendMinutes || minutes > MaxExtendMinutes {
		return nil, validationErr("minutes", "must be between %d and %d, got %d", MinExtendMinutes, MaxExtendMinutes, minutes)
	}

	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusActive {
		return nil, validationErr("session", "can only extend an active session, session #%d is %s", session.ID, session.Status)
	}

	now := e.now()
	session.TargetEndAt = session.TargetEndAt.Add(time.Duration(minutes) * time.Minute)

	err = e.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		return appendEvent(tx, session.ID, now, models.EventExtend, map[string]string{
			"minutes": strconv.Itoa(minutes),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extend session: %w", err)
	}

	e.log.Debug("session extended",
		zap.Uint("session_id", session.ID),
		zap.Int("minutes", minutes))
	return session, nil
}

// End finalizes a session: status becomes completed, the end time and actual
// duration are stamped and the focus score is computed. Ending a session
// that is already terminal is a no-op returning the finalized record.
func (e *Engine) End(sessionID uint) (*models.Session, error) {
	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return session, nil
	}
	return e.finalize(session, models.StatusCompleted)
}

// Cancel abandons a session without a score.
func (e *Engine) Cancel(sessionID uint) (*models.Session, error) {
	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return nil, validationErr("session", "session #%d is already %s", session.ID, session.Status)
	}
	return e.finalize(session, models.StatusCancelled)
}

func (e *Engine) finalize(session *models.Session, status string) (*models.Session, error) {
	now := e.now()

	session.Status = status
	session.EndedAt = &now
	session.PausedAt = nil
	session.ActualDurationMinutes = int(math.Round(now.Sub(session.StartedAt).Minutes()))
	if status == models.StatusCompleted {
		session.FocusScore = Score(session.DriftCount, session.DistractionCount,
			session.ActualDurationMinutes, session.GoalMinutes, e.Config().Score)
	}

	err := e.gdb.Transaction(func(tx *gorm.DB) error {
		// A still-open drift is closed by the session ending.
		if err := closeOpenDrift(tx, session.ID, now, "session ended"); err != nil {
			return err
		}
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		metadata := map[string]string{"status": status}
		if status == models.StatusCompleted {
			metadata["score"] = strconv.Itoa(session.FocusScore)
		}
		return appendEvent(tx, session.ID, now, models.EventEnd, metadata)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to end session: %w", err)
	}

	e.log.Info("session finished",
		zap.Uint("session_id", session.ID),
		zap.String("status", status),
		zap.Int("duration_minutes", session.ActualDurationMinutes),
		zap.Int("focus_score", session.FocusScore))
	return session, nil
}
