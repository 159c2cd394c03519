package focus

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/okhv/focal/internal/config"
	"github.com/okhv/focal/internal/models"
)

// CheckRegulation evaluates the configured break rules against the session.
// A rule matches once its interval has elapsed since the session started or
// since the rule last fired for this session. On a match the session is
// forced into paused state, a regulation event is appended, and the matched
// rule is returned so the caller can run the mandatory pause. Nil means no
// rule is due. Paused or terminal sessions are never regulated.
func (e *Engine) CheckRegulation(sessionID uint) (*config.Rule, error) {
	session, err := e.Session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusActive {
		return nil, nil
	}

	now := e.now()
	rules := e.Config().Regulation.Rules
	for i := range rules {
		rule := rules[i]

		anchor, err := e.lastRegulation(session.ID, rule.Type)
		if err != nil {
			return nil, err
		}
		if anchor.IsZero() {
			anchor = session.StartedAt
		}
		if now.Sub(anchor) < time.Duration(rule.EveryMinutes)*time.Minute {
			continue
		}

		session.Status = models.StatusPaused
		session.PausedAt = &now

		err = e.gdb.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(session).Error; err != nil {
				return err
			}
			return appendEvent(tx, session.ID, now, models.EventRegulation, map[string]string{
				"rule":    rule.Type,
				"message": rule.Message,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("failed to apply regulation rule: %w", err)
		}

		e.log.Info("regulation break enforced",
			zap.Uint("session_id", session.ID),
			zap.String("rule", rule.Type),
			zap.Int("mandatory_delay_seconds", rule.MandatoryDelaySeconds))
		return &rule, nil
	}

	return nil, nil
}

// lastRegulation returns when the rule last fired for the session, or the
// zero time when it never has.
func (e *Engine) lastRegulation(sessionID uint, ruleType string) (time.Time, error) {
	var events []models.Event
	err := e.gdb.
		Where("session_id = ? AND type = ?", sessionID, models.EventRegulation).
		Order("at DESC").
		Find(&events).Error
	if err != nil {
		return time.Time{}, err
	}
	for _, event := range events {
		if event.Metadata["rule"] == ruleType {
			return event.At, nil
		}
	}
	return time.Time{}, nil
}
