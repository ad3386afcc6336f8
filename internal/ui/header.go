package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/huddle/internal/groupme"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	if !m.snapshot.HasMe {
		if m.snapshot.LastError != nil {
			last := "soon"
			if !m.lastUpdated.IsZero() {
				last = m.lastUpdated.Format("15:04:05")
			}
			parts := []string{
				bg.Render("huddle", styles.Logo),
				bg.Render("GROUPME "+classifyError(m.snapshot.LastError), styles.DangerText.Bold(true)),
				bg.Render("Retrying...", styles.WarningText.Bold(true)),
				bg.Render(last, styles.MutedText),
			}
			return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
		}
		return styles.Header.Width(m.width).Render(
			bg.Render("huddle", styles.Logo) + sep +
				bg.Render("Connecting to GroupMe...", styles.WarningText.Bold(true)),
		)
	}

	compact := m.width < LayoutCompactWidth
	var parts []string

	parts = append(parts, bg.Render("huddle", styles.Logo))

	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	} else {
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	}

	parts = append(parts, bg.Render(truncate(m.snapshot.Me.Name, 24), styles.Text.Bold(true)))

	groupsLabel := "Groups:"
	if compact {
		groupsLabel = "G:"
	}
	parts = append(parts,
		bg.Render(groupsLabel, styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.groups)), styles.Text))

	if n := m.unreadCount(); n > 0 {
		parts = append(parts,
			bg.Render("New:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", n), styles.BadgeStyle("unread").Background(bg.Color())))
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if err := m.snapshot.LastError; err != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render(classifyError(err), styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(err.Error(), maxErr), styles.DangerText))
	}

	if m.notice != "" {
		style := styles.InfoText
		if m.noticeIsErr {
			style = styles.WarningText
		}
		parts = append(parts, bg.Render(truncate(m.notice, 50), style))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last update time with a relative indicator.
func (m Model) formatTimestamp() string {
	if m.snapshot.LastUpdated.IsZero() {
		return ""
	}
	since := time.Since(m.snapshot.LastUpdated)
	stamp := m.snapshot.LastUpdated.Format("15:04:05")
	switch {
	case since < time.Minute:
		stamp += " (now)"
	case since < time.Hour:
		stamp += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		stamp += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return stamp
}

// classifyError returns a short upper-case label for an API failure.
func classifyError(err error) string {
	if err == nil {
		return ""
	}

	var (
		transport *groupme.TransportError
		remote    *groupme.RemoteError
		decode    *groupme.DecodeError
		contract  *groupme.ContractViolationError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return "CANCELLED"
	case errors.As(err, &remote):
		switch remote.Code {
		case 401:
			return "UNAUTHORIZED"
		case 403:
			return "FORBIDDEN"
		case 404:
			return "NOT FOUND"
		case 429:
			return "RATE LIMITED"
		}
		return fmt.Sprintf("API ERROR %d", remote.Code)
	case errors.As(err, &decode), errors.As(err, &contract):
		return "BAD RESPONSE"
	case errors.As(err, &transport):
		if transport.Kind != groupme.KindConnection {
			return "BAD RESPONSE"
		}
		msg := err.Error()
		switch {
		case strings.Contains(msg, "no such host"):
			return "HOST NOT FOUND"
		case strings.Contains(msg, "timeout"):
			return "TIMEOUT"
		}
		return "OFFLINE"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the current mode.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.composing:
		commands = []cmd{
			{"Enter", "Send"},
			{"Esc", "Cancel"},
		}
	case m.focus == paneMessages:
		commands = []cmd{
			{"j/k", "Select"},
			{"l", "Like"},
			{"o", "Older"},
			{"c", "Compose"},
			{"r", "Reload"},
			{"b", "Top"},
			{"Tab", "Groups"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Open"},
			{"c", "Compose"},
			{"b", "Top"},
			{"Tab", "Messages"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
