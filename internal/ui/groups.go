package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/huddle/internal/groupme"
	"github.com/five82/huddle/internal/state"
)

// applySnapshot stores a fresh snapshot from the poller. It keeps the
// selected group by ID, opens the first conversation once groups arrive, and
// reloads the open conversation when its group reports a newer message.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	prevID := m.selectedGroupID()

	m.snapshot = snap
	m.lastUpdated = time.Now()
	m.groups = sortGroups(snap.Groups)

	for _, g := range m.groups {
		if _, ok := m.seen[g.ID]; !ok {
			m.seen[g.ID] = g.Messages.LastMessageID
		}
	}

	m.selectGroupByID(prevID)

	if len(m.groups) == 0 {
		return nil
	}

	if m.conv.groupID == "" {
		id := m.groups[0].ID
		if m.initialGroup != "" {
			if _, ok := snap.Group(m.initialGroup); ok {
				id = m.initialGroup
			}
		}
		m.selectGroupByID(id)
		return m.openGroup(id)
	}

	g, ok := snap.Group(m.conv.groupID)
	if !ok || m.conv.loading {
		return nil
	}
	m.seen[g.ID] = g.Messages.LastMessageID
	if last := g.Messages.LastMessageID; last != "" && last != m.conv.newestID() {
		m.conv.loading = true
		return m.fetchMessages(g.ID, pageQuery(m.messageLimit, ""), false)
	}
	return nil
}

// sortGroups orders groups by most recent activity, newest first.
func sortGroups(groups []groupme.Group) []groupme.Group {
	sorted := slices.Clone(groups)
	slices.SortStableFunc(sorted, func(a, b groupme.Group) int {
		return cmp.Compare(lastActivity(b), lastActivity(a))
	})
	return sorted
}

func lastActivity(g groupme.Group) int64 {
	return max(g.Messages.LastMessageCreatedAt, g.UpdatedAt)
}

func (m Model) selectedGroupID() string {
	if m.selectedGroup < 0 || m.selectedGroup >= len(m.groups) {
		return ""
	}
	return m.groups[m.selectedGroup].ID
}

// selectGroupByID moves the cursor to the group with the given ID, or clamps
// the current cursor when it is gone.
func (m *Model) selectGroupByID(id string) {
	if id != "" {
		for i, g := range m.groups {
			if g.ID == id {
				m.selectedGroup = i
				return
			}
		}
	}
	if m.selectedGroup >= len(m.groups) {
		m.selectedGroup = len(m.groups) - 1
	}
	if m.selectedGroup < 0 {
		m.selectedGroup = 0
	}
}

// hasUnread reports whether a group has messages newer than the user has seen.
func (m Model) hasUnread(g groupme.Group) bool {
	if g.ID == m.conv.groupID {
		return false
	}
	seen, ok := m.seen[g.ID]
	return ok && g.Messages.LastMessageID != "" && g.Messages.LastMessageID != seen
}

func (m Model) unreadCount() int {
	n := 0
	for _, g := range m.groups {
		if m.hasUnread(g) {
			n++
		}
	}
	return n
}

// handleGroupsKey processes keyboard input for the groups pane.
func (m Model) handleGroupsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.groups)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedGroup < count-1 {
			m.selectedGroup++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedGroup > 0 {
			m.selectedGroup--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedGroup = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedGroup = count - 1
	case key.Matches(msg, m.keys.Open):
		m.focus = paneMessages
		id := m.selectedGroupID()
		if id == m.conv.groupID {
			m.renderConversation()
			return m, nil
		}
		return m, m.openGroup(id)
	}
	return m, nil
}

// renderContent renders the two panes below the header.
func (m Model) renderContent() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2

	if len(m.groups) == 0 {
		text := "No groups yet"
		if !m.snapshot.HasMe {
			text = "Waiting for GroupMe..."
		}
		body := styles.MutedText.Render(text) + "\n" + styles.FaintText.Render(m.helpLine())
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, body)
	}

	groupsWidth, messagesWidth := m.paneWidths()

	groupsFocused := m.focus == paneGroups
	listBg := m.theme.SurfaceAlt
	if groupsFocused {
		listBg = m.theme.FocusBg
	}
	list := m.renderGroupList(groupsWidth-2, contentHeight-2, listBg)
	groupsPane := m.renderTitledBox(fmt.Sprintf("Groups (%d)", len(m.groups)), list, groupsWidth, contentHeight, groupsFocused)

	return lipgloss.JoinHorizontal(lipgloss.Top, groupsPane, m.renderMessagesPane(messagesWidth, contentHeight))
}

// paneWidths splits the terminal between the groups list and the messages.
func (m Model) paneWidths() (groups, messages int) {
	groups = m.width * 30 / 100
	if m.width < LayoutCompactWidth {
		groups = m.width * 35 / 100
	}
	groups = max(groups, min(24, m.width/2))
	return groups, m.width - groups
}

// renderGroupList renders the visible slice of groups, keeping the
// selection on screen.
func (m Model) renderGroupList(width, height int, bgColor string) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	start := 0
	if m.selectedGroup >= height {
		start = m.selectedGroup - height + 1
	}
	end := min(start+height, len(m.groups))

	now := time.Now()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rowBg := bgColor
		if i == m.selectedGroup {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatGroupRow(m.groups[i], width, rowBg, i == m.selectedGroup, now)
		lines = append(lines, NewBgStyle(rowBg).FillLine(content, width))
	}
	return strings.Join(lines, "\n")
}

// formatGroupRow formats one row: "● Name            5m".
// When selected is true, text uses the selection color for contrast.
func (m Model) formatGroupRow(g groupme.Group, width int, bgColor string, selected bool, now time.Time) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	nameStyle := styles.Text
	ageStyle := styles.FaintText
	if selected {
		nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText)).Bold(true)
		ageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
	}
	if g.ID == m.conv.groupID {
		nameStyle = nameStyle.Bold(true)
	}

	marker := " "
	markerStyle := styles.FaintText
	if m.hasUnread(g) {
		marker = "●"
		markerStyle = styles.BadgeStyle("unread")
	}

	age := formatAgo(time.Unix(lastActivity(g), 0), now)
	if lastActivity(g) <= 0 {
		age = ""
	}
	nameWidth := max(width-lipgloss.Width(age)-3, 1)
	name := padRight(truncate(singleLine(g.Name), nameWidth), nameWidth)

	return bg.Render(marker, markerStyle) + bg.Space() +
		bg.Render(name, nameStyle) + bg.Space() +
		bg.Render(age, ageStyle)
}
