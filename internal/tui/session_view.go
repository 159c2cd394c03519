package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/okhv/focal/internal/models"
)

// View renders the session TUI
func (m SessionModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2 // help bar plus gap

	var content string
	if m.width < 90 {
		// Narrow view: just the timer panel, full width
		content = m.renderTimerPanel(m.width, contentHeight)
	} else {
		leftWidth := m.width / 2
		rightWidth := m.width - leftWidth - 2

		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderTimerPanel(leftWidth, contentHeight),
			"  ",
			m.renderDetailsPanel(rightWidth, contentHeight),
		)
	}

	if modal := m.renderOverlay(); modal != "" {
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, modal)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// renderTimerPanel renders the countdown panel
func (m SessionModel) renderTimerPanel(width, height int) string {
	var components []string

	headerText, headerColor := m.headerLine()
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(headerColor)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, headerStyle.Render(headerText))

	projectStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, projectStyle.Render(m.session.Project.Name))

	clockColor := ColorAccentBright
	remaining := m.remaining()
	switch {
	case m.session.Status == models.StatusPaused:
		clockColor = ColorDisabledText
	case remaining < 0:
		clockColor = ColorWarning
	}
	clock := renderBigClock(remaining, clockColor)
	var clockContent strings.Builder
	for _, line := range strings.Split(clock, "\n") {
		clockContent.WriteString(lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(width).
			Render(line))
		clockContent.WriteString("\n")
	}
	components = append(components, strings.TrimRight(clockContent.String(), "\n"))

	info := fmt.Sprintf("Started at %s · goal %dm · ends %s",
		m.session.StartedAt.Format("15:04:05"),
		m.session.GoalMinutes,
		m.session.TargetEndAt.Format("15:04:05"))
	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, infoStyle.Render(info))

	if m.notice != "" {
		noticeStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Align(lipgloss.Center).
			Width(width)
		components = append(components, noticeStyle.Render(m.notice))
	}

	content := strings.Join(components, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// headerLine picks the animated banner matching the session state.
func (m SessionModel) headerLine() (string, string) {
	animChars := []string{"●", "◉", "●", "◉"}
	anim := animChars[m.anim]

	switch {
	case m.driftActive:
		return fmt.Sprintf("%s  DRIFTING  %s", anim, anim), ColorWarning
	case m.session.Status == models.StatusPaused:
		return "▌▌  PAUSED  ▌▌", ColorDisabledText
	case m.remaining() < 0:
		return fmt.Sprintf("%s  OVERTIME  %s", anim, anim), ColorWarning
	default:
		return fmt.Sprintf("%s  FOCUSING  %s", anim, anim), ColorAccentBright
	}
}

// renderDetailsPanel renders the right panel with session facts
func (m SessionModel) renderDetailsPanel(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")

	logoLines := []string{
		"███████╗ ██████╗  ██████╗ █████╗ ██╗     ",
		"██╔════╝██╔═══██╗██╔════╝██╔══██╗██║     ",
		"█████╗  ██║   ██║██║     ███████║██║     ",
		"██╔══╝  ██║   ██║██║     ██╔══██║██║     ",
		"██║     ╚██████╔╝╚██████╗██║  ██║███████╗",
		"╚═╝      ╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝",
	}
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width - 8)
	b.WriteString(logoStyle.Render(strings.Join(logoLines, "\n")))
	b.WriteString("\n\n")

	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBorder)).
		Align(lipgloss.Center).
		Width(width - 8)
	b.WriteString(separatorStyle.Render(strings.Repeat("─", min(width-12, 44))))
	b.WriteString("\n\n")

	line := func(label, value, color string) {
		style := lipgloss.NewStyle().Align(lipgloss.Center).Width(width - 8)
		rendered := fmt.Sprintf("%s %s", label,
			lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(value))
		b.WriteString(style.Render(rendered))
		b.WriteString("\n")
	}

	statusColor := ColorSuccess
	if m.session.Status == models.StatusPaused {
		statusColor = ColorWarning
	}
	line("Status:", m.session.Status, statusColor)

	driftColor := ColorSecondaryText
	if m.session.DriftCount > 0 {
		driftColor = ColorWarning
	}
	line("Drifts:", fmt.Sprintf("%d", m.session.DriftCount), driftColor)

	distractionColor := ColorSecondaryText
	if m.session.DistractionCount > 0 {
		distractionColor = ColorWarning
	}
	line("Distractions:", fmt.Sprintf("%d", m.session.DistractionCount), distractionColor)

	pausedFor := time.Duration(m.session.PausedSeconds) * time.Second
	line("Time paused:", pausedFor.Truncate(time.Second).String(), ColorSecondaryText)

	if m.driftActive {
		line("Drift:", "unresolved — press r to return", ColorWarning)
	}

	return b.String()
}

// renderOverlay renders the active modal, or "" when none is open.
func (m SessionModel) renderOverlay() string {
	box := func(borderColor, title, body, footer string) string {
		titleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(borderColor)).
			Bold(true)
		bodyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText))
		footerStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)

		content := titleStyle.Render(title) + "\n\n" + bodyStyle.Render(body)
		if footer != "" {
			content += "\n\n" + footerStyle.Render(footer)
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(borderColor)).
			Padding(1, 3).
			Render(content)
	}

	switch m.overlay {
	case overlayNudge:
		if m.nudge.Hard() {
			return box(ColorError, "⚠ NUDGE", m.nudge.Message, "enter acknowledge")
		}
		return box(ColorWarning, "nudge", m.nudge.Message, "dismisses on its own")

	case overlayDriftInput:
		return box(ColorWarning, "Context switch", m.input.View(), "enter record · esc cancel")

	case overlayReturnInput:
		return box(ColorSuccess, "Welcome back", m.input.View(), "enter resolve drift · esc cancel")

	case overlayDistraction:
		body := strings.Join([]string{
			"1  phone",
			"2  social media",
			"3  conversation",
			"4  snack",
			"5  other",
		}, "\n")
		return box(ColorAccentMain, "Log a distraction", body, "1-5 pick · esc cancel")

	case overlayMandatory:
		left := time.Until(m.mandatoryUntil).Truncate(time.Second)
		var footer string
		if left > 0 {
			footer = fmt.Sprintf("resume unlocks in %s", left)
		} else {
			footer = "enter resume"
		}
		title := fmt.Sprintf("MANDATORY BREAK — %s", strings.ToUpper(m.rule.Type))
		return box(ColorError, title, m.rule.Message, footer)
	}

	return ""
}

// renderHelpBar renders the help bar at the bottom
func (m SessionModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	var helpText string
	switch m.overlay {
	case overlayNone:
		helpText = "p pause/resume · d drift · r return · x distraction · + extend 5m · e end · esc/q detach"
	case overlayMandatory:
		helpText = "take the break — resume unlocks when the countdown ends"
	default:
		helpText = "enter confirm · esc cancel"
	}

	return helpStyle.Render(helpText)
}
