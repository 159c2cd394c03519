package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/okhv/focal/internal/config"
	"github.com/okhv/focal/internal/focus"
	"github.com/okhv/focal/internal/models"
	"github.com/okhv/focal/internal/scheduler"
)

// RunSessionTUI runs the interactive session view. Nudge and regulation
// checks run on scheduler tasks scoped to the view's lifetime, so no check
// can fire after the view closes. Config file changes are picked up live.
func RunSessionTUI(engine *focus.Engine, log *zap.Logger, session *models.Session, configPath string) error {
	model := NewSessionModel(engine, log, session)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := engine.Config()
	stopNudge, _ := scheduler.Go(ctx, time.Duration(cfg.Session.NudgeIntervalMinutes)*time.Minute, func(time.Time) {
		p.Send(nudgeTickMsg{})
	})
	defer stopNudge()
	stopRegulation, _ := scheduler.Go(ctx, time.Duration(cfg.Session.RegulationIntervalSeconds)*time.Second, func(time.Time) {
		p.Send(regulationTickMsg{})
	})
	defer stopRegulation()
	go func() {
		err := config.Watch(ctx, configPath,
			func(cfg *config.Config) { p.Send(configReloadedMsg{cfg}) },
			func(err error) { log.Warn("config reload failed", zap.Error(err)) },
		)
		if err != nil {
			log.Warn("config watcher stopped", zap.Error(err))
		}
	}()

	finalModel, err := p.Run()
	cancel()
	if err != nil {
		return err
	}

	m, ok := finalModel.(SessionModel)
	if !ok {
		return nil
	}

	if m.ending {
		fmt.Printf("⏹️  Session #%d on %s completed\n", m.session.ID, m.session.Project.Name)
		fmt.Printf("📊 Duration: %dm · drifts: %d · distractions: %d · focus score: %d/100\n",
			m.session.ActualDurationMinutes, m.session.DriftCount,
			m.session.DistractionCount, m.session.FocusScore)
		fmt.Printf("   Run 'focal summary %d' for the full timeline.\n", m.session.ID)
	} else if m.detaching {
		fmt.Printf("\n💡 Session #%d is still running on %s.\n", m.session.ID, m.session.Project.Name)
		fmt.Printf("   Use 'focal status' to check it or 'focal end' to finish.\n")
	}

	return nil
}
