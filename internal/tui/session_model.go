package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/okhv/focal/internal/config"
	"github.com/okhv/focal/internal/focus"
	"github.com/okhv/focal/internal/models"
)

// overlay identifies which modal, if any, sits on top of the session view.
type overlay int

const (
	overlayNone overlay = iota
	overlayNudge
	overlayDriftInput
	overlayReturnInput
	overlayDistraction
	overlayMandatory
)

// SessionModel is the full-screen live view of a running focus session.
type SessionModel struct {
	engine *focus.Engine
	log    *zap.Logger

	session *models.Session
	width   int
	height  int

	// Timer state
	now  time.Time
	anim int

	// Overlay state
	overlay        overlay
	nudge          focus.Nudge
	nudgeSeq       int
	rule           *config.Rule
	mandatoryUntil time.Time
	input          textinput.Model

	driftActive bool
	notice      string

	// Exit intents
	ending    bool // user pressed end: finalize and show the score
	detaching bool // user pressed esc/q: leave the session running
}

// Messages driving the view.
type (
	clockTickMsg       struct{}
	animTickMsg        struct{}
	nudgeTickMsg       struct{}
	regulationTickMsg  struct{}
	softNudgeExpired   struct{ seq int }
	configReloadedMsg  struct{ cfg *config.Config }
	sessionUpdatedMsg  struct{ session *models.Session }
	nudgePlannedMsg    struct{ nudge focus.Nudge }
	driftStartedMsg    struct{ entry *models.DriftEntry }
	driftResolvedMsg   struct{ entry *models.DriftEntry }
	regulationHitMsg   struct{ rule *config.Rule }
	noticeMsg          struct{ text string }
	asyncErrMsg        struct{ err error }
	sessionFinishedMsg struct{ session *models.Session }
)

// NewSessionModel creates the live session view.
func NewSessionModel(engine *focus.Engine, log *zap.Logger, session *models.Session) SessionModel {
	input := textinput.New()
	input.Width = 40
	input.CharLimit = 120
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := SessionModel{
		engine:  engine,
		log:     log,
		session: session,
		now:     time.Now(),
		input:   input,
	}

	// Resuming a view onto a session that is mid-drift.
	if open, err := engine.OpenDrift(session.ID); err == nil && open != nil {
		m.driftActive = true
	}
	return m
}

// Init starts the clock and animation tickers. Nudge and regulation checks
// arrive from scheduler goroutines via program.Send.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(clockTick(), animTick())
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return clockTickMsg{} })
}

func animTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animTickMsg{} })
}

func (m SessionModel) done() bool {
	return m.ending || m.detaching
}

// refreshSession reloads the session row.
func (m SessionModel) refreshSession() tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		session, err := engine.Session(id)
		if err != nil {
			return asyncErrMsg{err}
		}
		return sessionUpdatedMsg{session}
	}
}

// Update handles messages
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		m.now = time.Now()
		if m.done() {
			return m, nil
		}
		return m, clockTick()

	case animTickMsg:
		m.anim = (m.anim + 1) % 4
		if m.done() {
			return m, nil
		}
		return m, animTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case nudgeTickMsg:
		// Drift-active mode and open overlays suppress nudges.
		if m.done() || m.driftActive || m.overlay != overlayNone || m.session.Status != models.StatusActive {
			return m, nil
		}
		return m, m.fireNudge()

	case nudgePlannedMsg:
		m.overlay = overlayNudge
		m.nudge = msg.nudge
		m.nudgeSeq++
		if !msg.nudge.Hard() {
			seq := m.nudgeSeq
			return m, tea.Tick(msg.nudge.AutoDismiss, func(time.Time) tea.Msg {
				return softNudgeExpired{seq: seq}
			})
		}
		return m, nil

	case softNudgeExpired:
		// A stale timeout from an already-replaced nudge must not dismiss
		// whatever is on screen now.
		if m.overlay == overlayNudge && !m.nudge.Hard() && msg.seq == m.nudgeSeq {
			m.overlay = overlayNone
		}
		return m, nil

	case regulationTickMsg:
		if m.done() || m.overlay == overlayMandatory || m.session.Status != models.StatusActive {
			return m, nil
		}
		return m, m.checkRegulation()

	case regulationHitMsg:
		m.overlay = overlayMandatory
		m.rule = msg.rule
		m.mandatoryUntil = time.Now().Add(time.Duration(msg.rule.MandatoryDelaySeconds) * time.Second)
		return m, m.refreshSession()

	case configReloadedMsg:
		m.engine.SetConfig(msg.cfg)
		m.notice = "config reloaded"
		return m, nil

	case sessionUpdatedMsg:
		m.session = msg.session
		return m, nil

	case sessionFinishedMsg:
		m.session = msg.session
		m.ending = true
		return m, tea.Quit

	case driftStartedMsg:
		if msg.entry == nil {
			// Same context or a drift already open: not a drift.
			m.notice = "not recorded as drift"
			return m, nil
		}
		m.driftActive = true
		m.notice = fmt.Sprintf("drifting to %s", msg.entry.Context)
		return m, m.refreshSession()

	case driftResolvedMsg:
		m.driftActive = false
		m.notice = fmt.Sprintf("back on track after %dm away", msg.entry.DurationMinutes)
		return m, m.refreshSession()

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case asyncErrMsg:
		// The worst failure mode is an unrecorded event, never a crash.
		m.log.Error("session view operation failed", zap.Error(msg.err))
		m.notice = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.detaching = true
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayNudge:
		if msg.String() == "enter" {
			m.overlay = overlayNone
		}
		return m, nil

	case overlayMandatory:
		// Hard gate: resume stays disabled until the countdown hits zero.
		if msg.String() == "enter" && !m.now.Before(m.mandatoryUntil) {
			m.overlay = overlayNone
			m.rule = nil
			return m, m.resumeSession()
		}
		return m, nil

	case overlayDriftInput, overlayReturnInput:
		switch msg.String() {
		case "esc":
			m.overlay = overlayNone
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			which := m.overlay
			m.overlay = overlayNone
			if which == overlayDriftInput {
				if value == "" {
					return m, nil
				}
				return m, m.startDrift(value)
			}
			return m, m.resolveDrift(value)
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case overlayDistraction:
		switch msg.String() {
		case "esc":
			m.overlay = overlayNone
			return m, nil
		case "1", "2", "3", "4", "5":
			types := []string{
				models.DistractionPhone,
				models.DistractionSocialMedia,
				models.DistractionConversation,
				models.DistractionSnack,
				models.DistractionOther,
			}
			m.overlay = overlayNone
			return m, m.logDistraction(types[int(msg.String()[0]-'1')])
		}
		return m, nil
	}

	// No overlay: session controls.
	switch msg.String() {
	case "p":
		return m, m.togglePause()
	case "d":
		if m.driftActive || m.session.Status != models.StatusActive {
			m.notice = "already drifting"
			return m, nil
		}
		m.overlay = overlayDriftInput
		m.input.Reset()
		m.input.Placeholder = "What pulled you away? (project name, email, ...)"
		m.input.Focus()
		return m, textinput.Blink
	case "r":
		if !m.driftActive {
			m.notice = "no drift to return from"
			return m, nil
		}
		m.overlay = overlayReturnInput
		m.input.Reset()
		m.input.Placeholder = "Optional note (Enter to skip)"
		m.input.Focus()
		return m, textinput.Blink
	case "x":
		if m.session.Terminal() {
			return m, nil
		}
		m.overlay = overlayDistraction
		return m, nil
	case "+":
		return m, m.extendSession(5)
	case "e", "s":
		return m, m.endSession()
	case "esc", "q":
		m.detaching = true
		return m, tea.Quit
	}

	return m, nil
}

func (m SessionModel) fireNudge() tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		session, err := engine.Session(id)
		if err != nil {
			return asyncErrMsg{err}
		}
		if session.Status != models.StatusActive {
			return nil
		}
		nudge := engine.PlanNudge(session)
		if err := engine.RecordNudge(id, nudge); err != nil {
			return asyncErrMsg{err}
		}
		return nudgePlannedMsg{nudge}
	}
}

func (m SessionModel) checkRegulation() tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		rule, err := engine.CheckRegulation(id)
		if err != nil {
			// Skipped this tick; retried on the next one.
			return asyncErrMsg{err}
		}
		if rule == nil {
			return nil
		}
		return regulationHitMsg{rule}
	}
}

func (m SessionModel) togglePause() tea.Cmd {
	id := m.session.ID
	paused := m.session.Status == models.StatusPaused
	engine := m.engine
	return func() tea.Msg {
		var (
			session *models.Session
			err     error
		)
		if paused {
			session, err = engine.Resume(id)
		} else {
			session, err = engine.Pause(id)
		}
		if err != nil {
			return asyncErrMsg{err}
		}
		return sessionUpdatedMsg{session}
	}
}

func (m SessionModel) resumeSession() tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		session, err := engine.Resume(id)
		if err != nil {
			return asyncErrMsg{err}
		}
		return sessionUpdatedMsg{session}
	}
}

func (m SessionModel) extendSession(minutes int) tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		session, err := engine.Extend(id, minutes)
		if err != nil {
			return asyncErrMsg{err}
		}
		return sessionUpdatedMsg{session}
	}
}

func (m SessionModel) endSession() tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		session, err := engine.End(id)
		if err != nil {
			return asyncErrMsg{err}
		}
		return sessionFinishedMsg{session}
	}
}

func (m SessionModel) startDrift(context string) tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		entry, err := engine.DetectDrift(id, context, "")
		if err != nil {
			return asyncErrMsg{err}
		}
		return driftStartedMsg{entry}
	}
}

func (m SessionModel) resolveDrift(note string) tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		entry, err := engine.ResolveDrift(id, note)
		if err != nil {
			return asyncErrMsg{err}
		}
		return driftResolvedMsg{entry}
	}
}

func (m SessionModel) logDistraction(distractionType string) tea.Cmd {
	id := m.session.ID
	engine := m.engine
	return func() tea.Msg {
		if _, err := engine.LogDistraction(id, distractionType, ""); err != nil {
			return asyncErrMsg{err}
		}
		session, err := engine.Session(id)
		if err != nil {
			return asyncErrMsg{err}
		}
		return sessionUpdatedMsg{session}
	}
}

// remaining returns the time left on the countdown. While paused the value
// is frozen at what it was when the pause started.
func (m SessionModel) remaining() time.Duration {
	if m.session.Status == models.StatusPaused && m.session.PausedAt != nil {
		return m.session.TargetEndAt.Sub(*m.session.PausedAt)
	}
	return m.session.TargetEndAt.Sub(m.now)
}
