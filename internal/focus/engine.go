// Package focus implements the focus-session lifecycle: the session state
// machine, drift detection, nudge planning, regulation checks, scoring and
// summary assembly. All persistence goes through an injected gorm handle so
// the engine is testable against an in-memory database.
package focus

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/okhv/focal/internal/config"
	"github.com/okhv/focal/internal/models"
)

// Engine coordinates all focus-session operations.
type Engine struct {
	gdb *gorm.DB
	log *zap.Logger
	now func() time.Time

	// cfg may be swapped by a live config reload while scheduler
	// goroutines read it.
	mu  sync.RWMutex
	cfg *config.Config
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine on top of an opened database.
func New(gdb *gorm.DB, cfg *config.Config, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		gdb: gdb,
		cfg: cfg,
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetConfig swaps the configuration, used when the config file is reloaded
// while a session view is open.
func (e *Engine) SetConfig(cfg *config.Config) {
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
}

// Config returns the current configuration.
func (e *Engine) Config() *config.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// session loads a session by id, mapping gorm's not-found to NotFoundError.
func (e *Engine) session(gdb *gorm.DB, id uint) (*models.Session, error) {
	var s models.Session
	err := gdb.Preload("Project").First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "session", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Session returns the session with the given id.
func (e *Engine) Session(id uint) (*models.Session, error) {
	return e.session(e.gdb, id)
}

// Active returns the current non-terminal session, or nil when there is none.
func (e *Engine) Active() (*models.Session, error) {
	var s models.Session
	err := e.gdb.
		Where("status IN ?", []string{models.StatusActive, models.StatusPaused}).
		Preload("Project").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// appendEvent inserts an immutable timeline row for the session.
func appendEvent(gdb *gorm.DB, sessionID uint, at time.Time, eventType string, metadata map[string]string) error {
	event := models.Event{
		SessionID: sessionID,
		At:        at,
		Type:      eventType,
		Metadata:  metadata,
	}
	return gdb.Create(&event).Error
}

// Events returns the session's full timeline, ascending by timestamp.
func (e *Engine) Events(sessionID uint) ([]models.Event, error) {
	var events []models.Event
	err := e.gdb.
		Where("session_id = ?", sessionID).
		Order("at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
