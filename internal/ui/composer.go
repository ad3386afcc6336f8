package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/huddle/internal/groupme"
)

type sentMsg struct {
	groupID string
	text    string
	message groupme.Message
	err     error
}

// startComposing focuses the composer for the open group. A draft left by
// esc is kept.
func (m *Model) startComposing() tea.Cmd {
	if m.conv.groupID == "" {
		m.setNotice("Open a group first", true)
		return nil
	}
	m.composing = true
	m.renderConversation()
	return tea.Batch(m.composer.Focus(), textinput.Blink)
}

func (m *Model) stopComposing() {
	m.composing = false
	m.composer.Blur()
	m.renderConversation()
}

// handleComposerKey handles keyboard input while the composer is open.
func (m Model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.stopComposing()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		text := strings.TrimSpace(m.composer.Value())
		if text == "" {
			return m, nil
		}
		m.composer.Reset()
		m.stopComposing()
		return m, m.sendMessage(m.conv.groupID, text)
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m *Model) sendMessage(groupID, text string) tea.Cmd {
	if m.client == nil {
		return nil
	}
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		msg, err := client.CreateMessage(ctx, groupID, text, nil)
		return sentMsg{groupID: groupID, text: text, message: msg, err: err}
	}
}

// handleSent adds a posted message to the conversation. On failure the text
// is put back into the composer so it is not lost.
func (m *Model) handleSent(msg sentMsg) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("group", msg.groupID).Msg("send failed")
		m.setNotice("Send failed: "+classifyError(msg.err), true)
		if m.composer.Value() == "" {
			m.composer.SetValue(msg.text)
		}
		return
	}
	m.setNotice("Sent", false)
	if msg.groupID != m.conv.groupID || msg.message.ID == "" {
		return
	}
	m.conv.messages = mergeMessages(m.conv.messages, []groupme.Message{msg.message})
	m.conv.selected = len(m.conv.messages) - 1
	m.renderConversation()
}
