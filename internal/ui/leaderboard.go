package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/huddle/internal/groupme"
)

const leaderboardSize = 10

// leaderboard is the overlay listing the most liked messages of a group.
type leaderboard struct {
	visible  bool
	groupID  string
	period   groupme.Period
	messages []groupme.Message
	loading  bool
	err      error
}

type boardMsg struct {
	groupID  string
	period   groupme.Period
	messages []groupme.Message
	err      error
}

// openLeaderboard shows the overlay for the open group and loads it.
func (m *Model) openLeaderboard() tea.Cmd {
	if m.conv.groupID == "" {
		m.setNotice("Open a group first", true)
		return nil
	}
	m.board.visible = true
	m.board.groupID = m.conv.groupID
	return m.loadLeaderboard()
}

func (m *Model) loadLeaderboard() tea.Cmd {
	m.board.loading = true
	m.board.err = nil
	m.board.messages = nil
	if m.client == nil {
		return nil
	}
	ctx, client := m.ctx, m.client
	groupID, period := m.board.groupID, m.board.period
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		msgs, err := client.Leaderboard(ctx, groupID, period)
		return boardMsg{groupID: groupID, period: period, messages: msgs, err: err}
	}
}

// handleBoard stores a leaderboard page unless the user has moved on to a
// different group or period.
func (m *Model) handleBoard(msg boardMsg) {
	if msg.groupID != m.board.groupID || msg.period != m.board.period {
		return
	}
	m.board.loading = false
	m.board.err = msg.err
	m.board.messages = msg.messages
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("group", msg.groupID).Str("period", string(msg.period)).Msg("leaderboard failed")
	}
}

// handleBoardKey handles keyboard input while the leaderboard is shown.
func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Leaderboard):
		m.board.visible = false
		return m, nil
	case key.Matches(msg, m.keys.CyclePeriod):
		m.board.period = m.board.period.Next()
		return m, m.loadLeaderboard()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadLeaderboard()
	}
	return m, nil
}

// renderLeaderboard renders the leaderboard overlay.
func (m Model) renderLeaderboard() string {
	styles := m.theme.Styles()
	modalWidth := min(72, max(m.width-4, 30))
	inner := modalWidth - 6

	var b strings.Builder
	title := "Most liked"
	if g, ok := m.snapshot.Group(m.board.groupID); ok {
		title += " in " + singleLine(g.Name)
	}
	b.WriteString(styles.Text.Bold(true).Render(truncate(title, inner)))
	b.WriteString("\n")

	var periods []string
	for _, p := range []groupme.Period{groupme.PeriodDay, groupme.PeriodWeek, groupme.PeriodMonth} {
		if p == m.board.period {
			periods = append(periods, styles.AccentText.Bold(true).Render(string(p)))
		} else {
			periods = append(periods, styles.MutedText.Render(string(p)))
		}
	}
	b.WriteString(strings.Join(periods, styles.FaintText.Render(" · ")))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	switch {
	case m.board.loading:
		b.WriteString(styles.MutedText.Render("Loading..."))
	case m.board.err != nil:
		b.WriteString(styles.DangerText.Render(classifyError(m.board.err)))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(truncate(m.board.err.Error(), inner)))
	case len(m.board.messages) == 0:
		b.WriteString(styles.MutedText.Render("No liked messages this " + string(m.board.period)))
	default:
		for i, msg := range m.board.messages {
			if i == leaderboardSize {
				break
			}
			likes := styles.BadgeStyle("liked").Render(fmt.Sprintf("♥ %-3d", len(msg.FavoritedBy)))
			name := styles.AccentText.Render(truncate(msg.Name, 16))
			text := singleLine(msg.Text)
			if text == "" && len(msg.Attachments) > 0 {
				text = describeAttachment(msg.Attachments[0])
			}
			room := max(inner-lenVisible(msg.Name, 16)-12, 8)
			fmt.Fprintf(&b, "%2d. %s %s %s\n", i+1, likes, name, styles.Text.Render(truncate(text, room)))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("p: Period  •  r: Reload  •  Esc: Close"))

	return m.renderModal(b.String(), modalWidth)
}

// lenVisible is the rune length of s after truncation to limit.
func lenVisible(s string, limit int) int {
	return len([]rune(truncate(s, limit)))
}
