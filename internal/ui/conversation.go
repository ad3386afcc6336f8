package ui

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/huddle/internal/groupme"
	"github.com/five82/huddle/internal/prefs"
)

// conversation holds the messages of the open group, oldest first.
type conversation struct {
	groupID   string
	messages  []groupme.Message
	selected  int
	loading   bool
	err       error
	exhausted bool // the server has no older messages

	viewport   viewport.Model
	lineStarts []int
	lineEnds   []int
}

func (c conversation) newestID() string {
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1].ID
}

func (c conversation) oldestID() string {
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[0].ID
}

func (c conversation) selectedMessage() (groupme.Message, bool) {
	if c.selected < 0 || c.selected >= len(c.messages) {
		return groupme.Message{}, false
	}
	return c.messages[c.selected], true
}

type messagesMsg struct {
	groupID  string
	messages []groupme.Message
	older    bool
	err      error
}

type likeMsg struct {
	groupID   string
	messageID string
	like      bool
	userID    string
	err       error
}

// openGroup switches the messages pane to a group and starts loading it.
func (m *Model) openGroup(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	m.conv = conversation{groupID: id, loading: true, viewport: m.conv.viewport}
	if g, ok := m.snapshot.Group(id); ok {
		m.seen[id] = g.Messages.LastMessageID
	}
	m.savePrefs(func(p *prefs.Prefs) { p.LastGroup = id })
	m.renderConversation()
	return m.fetchMessages(id, pageQuery(m.messageLimit, ""), false)
}

// reloadConversation fetches the newest page of the open group again.
func (m *Model) reloadConversation() tea.Cmd {
	if m.conv.groupID == "" || m.conv.loading {
		return nil
	}
	m.conv.loading = true
	return m.fetchMessages(m.conv.groupID, pageQuery(m.messageLimit, ""), false)
}

// loadOlder fetches the page before the oldest loaded message.
func (m *Model) loadOlder() tea.Cmd {
	if m.conv.groupID == "" || m.conv.loading || m.conv.exhausted || len(m.conv.messages) == 0 {
		return nil
	}
	m.conv.loading = true
	return m.fetchMessages(m.conv.groupID, pageQuery(m.messageLimit, m.conv.oldestID()), true)
}

func pageQuery(limit int, beforeID string) groupme.MessagesQuery {
	return groupme.MessagesQuery{Limit: limit, BeforeID: beforeID}
}

func (m *Model) fetchMessages(groupID string, q groupme.MessagesQuery, older bool) tea.Cmd {
	if m.client == nil {
		return nil
	}
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		msgs, err := client.Messages(ctx, groupID, q)
		return messagesMsg{groupID: groupID, messages: msgs, older: older, err: err}
	}
}

// handleMessages merges a fetched page into the open conversation. Pages
// for a group that is no longer open are dropped.
func (m *Model) handleMessages(msg messagesMsg) {
	if msg.groupID != m.conv.groupID {
		return
	}
	m.conv.loading = false
	if msg.err != nil {
		m.conv.err = msg.err
		m.logger.Warn().Err(msg.err).Str("group", msg.groupID).Msg("load messages failed")
		m.renderConversation()
		return
	}
	m.conv.err = nil

	var keepID string
	atNewest := m.conv.selected >= len(m.conv.messages)-1
	if sel, ok := m.conv.selectedMessage(); ok {
		keepID = sel.ID
	}

	if msg.older && len(msg.messages) == 0 {
		m.conv.exhausted = true
	}
	m.conv.messages = mergeMessages(m.conv.messages, msg.messages)

	switch {
	case msg.older:
		m.conv.selected = indexOfMessage(m.conv.messages, keepID, 0)
	case atNewest || keepID == "":
		m.conv.selected = len(m.conv.messages) - 1
	default:
		m.conv.selected = indexOfMessage(m.conv.messages, keepID, len(m.conv.messages)-1)
	}
	m.renderConversation()
}

// mergeMessages combines two pages, dropping duplicates by ID. Incoming
// copies win so like counts stay fresh. The result is sorted oldest first.
func mergeMessages(existing, incoming []groupme.Message) []groupme.Message {
	byID := make(map[string]int, len(existing)+len(incoming))
	out := make([]groupme.Message, 0, len(existing)+len(incoming))
	for _, list := range [][]groupme.Message{existing, incoming} {
		for _, msg := range list {
			if i, ok := byID[msg.ID]; ok {
				out[i] = msg
				continue
			}
			byID[msg.ID] = len(out)
			out = append(out, msg)
		}
	}
	slices.SortStableFunc(out, compareMessages)
	return out
}

// compareMessages orders by creation time, then by numeric ID.
func compareMessages(a, b groupme.Message) int {
	if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
		return c
	}
	ai, aerr := strconv.ParseUint(a.ID, 10, 64)
	bi, berr := strconv.ParseUint(b.ID, 10, 64)
	if aerr == nil && berr == nil {
		return cmp.Compare(ai, bi)
	}
	return strings.Compare(a.ID, b.ID)
}

func indexOfMessage(msgs []groupme.Message, id string, fallback int) int {
	for i, msg := range msgs {
		if msg.ID == id {
			return i
		}
	}
	return fallback
}

// toggleLike likes the selected message, or removes the like if the user
// already liked it.
func (m *Model) toggleLike() tea.Cmd {
	msg, ok := m.conv.selectedMessage()
	if !ok || m.client == nil {
		return nil
	}
	me := m.myID()
	like := !msg.LikedBy(me)
	ctx, client, groupID := m.ctx, m.client, m.conv.groupID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		var err error
		if like {
			err = client.Like(ctx, groupID, msg.ID)
		} else {
			err = client.Unlike(ctx, groupID, msg.ID)
		}
		return likeMsg{groupID: groupID, messageID: msg.ID, like: like, userID: me, err: err}
	}
}

func (m *Model) handleLike(msg likeMsg) {
	if msg.err != nil {
		m.setNotice("Like failed: "+classifyError(msg.err), true)
		m.logger.Warn().Err(msg.err).Str("message", msg.messageID).Msg("like failed")
		return
	}
	if msg.groupID != m.conv.groupID {
		return
	}
	i := indexOfMessage(m.conv.messages, msg.messageID, -1)
	if i < 0 {
		return
	}
	likes := slices.DeleteFunc(slices.Clone(m.conv.messages[i].FavoritedBy), func(id string) bool {
		return id == msg.userID
	})
	if msg.like {
		likes = append(likes, msg.userID)
	}
	m.conv.messages[i].FavoritedBy = likes
	m.renderConversation()
}

// handleMessagesKey processes keyboard input for the messages pane.
func (m Model) handleMessagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.conv.messages)

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.focus = paneGroups
		m.renderConversation()
		return m, nil
	case key.Matches(msg, m.keys.ToggleLike):
		return m, m.toggleLike()
	case key.Matches(msg, m.keys.LoadOlder):
		return m, m.loadOlder()
	}

	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.conv.selected = min(m.conv.selected+1, count-1)
	case key.Matches(msg, m.keys.Up):
		if m.conv.selected == 0 {
			return m, m.loadOlder()
		}
		m.conv.selected--
	case key.Matches(msg, m.keys.Top):
		m.conv.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.conv.selected = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.conv.viewport.HalfPageDown()
		m.conv.selected = m.conv.firstVisible(count - 1)
		m.renderConversation()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageUp):
		m.conv.viewport.HalfPageUp()
		m.conv.selected = m.conv.firstVisible(0)
		m.renderConversation()
		return m, nil
	default:
		return m, nil
	}
	m.renderConversation()
	return m, nil
}

// renderMessagesPane renders the conversation box and, while composing, the
// composer below it.
func (m Model) renderMessagesPane(width, height int) string {
	title := "Messages"
	if g, ok := m.snapshot.Group(m.conv.groupID); ok {
		title = singleLine(g.Name)
		if n := len(g.Members); n > 0 {
			title += fmt.Sprintf(" · %d members", n)
		}
	}
	if m.conv.loading {
		title += " …"
	}

	focused := m.focus == paneMessages && !m.composing
	box := m.renderTitledBox(title, m.conv.viewport.View(), width, m.messagesBoxHeight(height), focused)
	if !m.composing {
		return box
	}
	input := m.renderTitledBox("Message", m.composer.View(), width, composerHeight, true)
	return lipgloss.JoinVertical(lipgloss.Left, box, input)
}

const composerHeight = 3

func (m Model) messagesBoxHeight(height int) int {
	if m.composing {
		return max(height-composerHeight, 3)
	}
	return height
}

// renderConversation rebuilds the message lines and scrolls so the selected
// message is visible.
func (m *Model) renderConversation() {
	if !m.ready {
		return
	}
	_, width := m.paneWidths()
	innerWidth := max(width-2, 1)
	innerHeight := max(m.messagesBoxHeight(m.height-2)-2, 1)

	bgColor := m.theme.SurfaceAlt
	if m.focus == paneMessages && !m.composing {
		bgColor = m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	var lines []string
	m.conv.lineStarts = m.conv.lineStarts[:0]
	m.conv.lineEnds = m.conv.lineEnds[:0]

	switch {
	case m.conv.err != nil && len(m.conv.messages) == 0:
		lines = append(lines, bg.Render(classifyError(m.conv.err), styles.DangerText))
		lines = append(lines, wrapStyled(m.conv.err.Error(), innerWidth, bg, styles.MutedText)...)
	case len(m.conv.messages) == 0 && m.conv.loading:
		lines = append(lines, bg.Render("Loading messages...", styles.MutedText))
	case len(m.conv.messages) == 0 && m.conv.groupID != "":
		lines = append(lines, bg.Render("No messages yet", styles.MutedText))
	case len(m.conv.messages) == 0:
		lines = append(lines, bg.Render("Select a group", styles.MutedText))
	default:
		if !m.conv.exhausted {
			lines = append(lines, bg.Render("o: load older messages", styles.FaintText), "")
		}
		now := time.Now()
		me := m.myID()
		for i, msg := range m.conv.messages {
			selected := i == m.conv.selected && m.focus == paneMessages
			rowBg := bg
			if selected {
				rowBg = NewBgStyle(m.theme.SelectionBg)
			}
			m.conv.lineStarts = append(m.conv.lineStarts, len(lines))
			for _, line := range m.formatMessage(msg, innerWidth, rowBg, selected, me, now) {
				lines = append(lines, rowBg.FillLine(line, innerWidth))
			}
			m.conv.lineEnds = append(m.conv.lineEnds, len(lines)-1)
			if i < len(m.conv.messages)-1 {
				lines = append(lines, "")
			}
		}
	}

	m.conv.viewport.Width = innerWidth
	m.conv.viewport.Height = innerHeight
	m.conv.viewport.SetContent(strings.Join(lines, "\n"))
	if i := m.conv.selected; i >= 0 && i < len(m.conv.lineStarts) {
		reveal(&m.conv.viewport, m.conv.lineStarts[i], m.conv.lineEnds[i])
	}
}

// reveal scrolls vp the least amount that shows lines start through end,
// preferring the start when the range is taller than the viewport.
func reveal(vp *viewport.Model, start, end int) {
	if end >= vp.YOffset+vp.Height {
		vp.SetYOffset(end - vp.Height + 1)
	}
	if start < vp.YOffset {
		vp.SetYOffset(start)
	}
}

// firstVisible returns the first message whose header is on screen.
func (c conversation) firstVisible(fallback int) int {
	for i, start := range c.lineStarts {
		if start >= c.viewport.YOffset {
			return i
		}
	}
	return fallback
}

// formatMessage renders one message as a header line followed by its
// wrapped text and attachment summary.
func (m Model) formatMessage(msg groupme.Message, width int, bg BgStyle, selected bool, me string, now time.Time) []string {
	styles := m.theme.Styles()
	nameStyle := styles.AccentText.Bold(true)
	textStyle := styles.Text
	metaStyle := styles.MutedText
	if msg.System || msg.SenderType == groupme.SenderSystem {
		nameStyle = styles.BadgeStyle("system").Italic(true)
		textStyle = styles.BadgeStyle("system").Italic(true)
	} else if msg.SenderType == groupme.SenderService {
		nameStyle = styles.BadgeStyle("bot").Bold(true)
	}
	if selected {
		sel := lipgloss.Color(m.theme.SelectionText)
		nameStyle = nameStyle.Foreground(sel)
		textStyle = textStyle.Foreground(sel)
		metaStyle = metaStyle.Foreground(sel)
	}

	name := msg.Name
	if name == "" {
		name = "GroupMe"
	}
	header := bg.Render(formatStamp(msg.Created(), now), metaStyle) + bg.Space() +
		bg.Render(truncate(name, max(width-20, 8)), nameStyle)
	if n := len(msg.FavoritedBy); n > 0 {
		heart := "♡"
		if msg.LikedBy(me) {
			heart = "♥"
		}
		header += bg.Space() + bg.Render(fmt.Sprintf("%s %d", heart, n), styles.BadgeStyle("liked"))
	}

	lines := []string{header}
	if text := strings.TrimSpace(msg.Text); text != "" {
		lines = append(lines, wrapStyled(text, width, bg, textStyle)...)
	}
	for _, a := range msg.Attachments {
		if label := describeAttachment(a); label != "" {
			lines = append(lines, wrapStyled(label, width, bg, styles.InfoText)...)
		}
	}
	return lines
}

// describeAttachment returns a one line label for an attachment, or "" for
// kinds that only decorate the text.
func describeAttachment(a groupme.Attachment) string {
	switch a := a.(type) {
	case groupme.ImageAttachment:
		return "[image] " + a.URL
	case groupme.LocationAttachment:
		if a.Name != "" {
			return fmt.Sprintf("[location] %s (%s, %s)", a.Name, a.Lat, a.Lng)
		}
		return fmt.Sprintf("[location] %s, %s", a.Lat, a.Lng)
	case groupme.PollAttachment:
		return "[poll]"
	case groupme.EventAttachment:
		return "[event]"
	case groupme.ReplyAttachment:
		return "[reply]"
	case groupme.EmojiAttachment, groupme.MentionsAttachment:
		return ""
	case groupme.UnknownAttachment:
		return "[" + a.Type + "]"
	default:
		return ""
	}
}

// wrapStyled word-wraps text to width and styles each resulting line.
func wrapStyled(text string, width int, bg BgStyle, style lipgloss.Style) []string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	raw := strings.Split(wrapped, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		out = append(out, bg.Render(strings.TrimRight(line, " "), style))
	}
	return out
}
