package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/huddle/internal/groupme"
)

// ErrUsage is returned when a command is called with the wrong arguments.
var ErrUsage = errors.New("usage")

// commandClient is the part of the GroupMe API the one-shot commands use.
type commandClient interface {
	Me(ctx context.Context) (groupme.CurrentUser, error)
	Groups(ctx context.Context, opts groupme.ListGroupsOptions) ([]groupme.Group, error)
	Messages(ctx context.Context, groupID string, q groupme.MessagesQuery) ([]groupme.Message, error)
	CreateMessage(ctx context.Context, groupID, text string, attachments groupme.Attachments) (groupme.Message, error)
	Like(ctx context.Context, conversationID, messageID string) error
	Unlike(ctx context.Context, conversationID, messageID string) error
	Leaderboard(ctx context.Context, groupID string, period groupme.Period) ([]groupme.Message, error)
}

// Commands lists the non-interactive subcommands with a one line summary.
var Commands = []struct{ Name, Usage, Summary string }{
	{"me", "me", "show the authenticated user"},
	{"groups", "groups", "list your groups"},
	{"messages", "messages <group-id> [count]", "print recent messages, oldest first"},
	{"send", "send <group-id> <text...>", "post a message to a group"},
	{"like", "like <group-id> <message-id>", "like a message"},
	{"unlike", "unlike <group-id> <message-id>", "remove a like"},
	{"top", "top <group-id> [day|week|month]", "show the most liked messages"},
}

// RunCommand executes a single subcommand and writes its output to out.
func RunCommand(ctx context.Context, opts Options, args []string, out io.Writer) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.close()
	return execute(ctx, rt.client, args, rt.cfg.MessageLimit, out)
}

func execute(ctx context.Context, client commandClient, args []string, defaultLimit int, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}
	name, rest := args[0], args[1:]

	switch name {
	case "me":
		me, err := client.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s)\n", me.Name, me.ID)
		if me.Email != "" {
			fmt.Fprintf(out, "email: %s\n", me.Email)
		}
		return nil

	case "groups":
		groups, err := client.Groups(ctx, groupme.ListGroupsOptions{PerPage: groupsPerPage, Omit: "memberships"})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, groupsTable(groups))
		return nil

	case "messages":
		if len(rest) < 1 || len(rest) > 2 {
			return usageError(name)
		}
		limit := defaultLimit
		if len(rest) == 2 {
			n, err := strconv.Atoi(rest[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: count must be a positive number, got %q", ErrUsage, rest[1])
			}
			limit = n
		}
		msgs, err := client.Messages(ctx, rest[0], groupme.MessagesQuery{Limit: limit})
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Fprintln(out, "no messages")
			return nil
		}
		// GroupMe returns newest first.
		for _, m := range slices.Backward(msgs) {
			fmt.Fprintln(out, formatMessageLine(m))
		}
		return nil

	case "send":
		if len(rest) < 2 {
			return usageError(name)
		}
		text := strings.TrimSpace(strings.Join(rest[1:], " "))
		if text == "" {
			return fmt.Errorf("%w: message text is empty", ErrUsage)
		}
		msg, err := client.CreateMessage(ctx, rest[0], text, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "sent %s\n", msg.ID)
		return nil

	case "like", "unlike":
		if len(rest) != 2 {
			return usageError(name)
		}
		var err error
		if name == "like" {
			err = client.Like(ctx, rest[0], rest[1])
		} else {
			err = client.Unlike(ctx, rest[0], rest[1])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%sd %s\n", name, rest[1])
		return nil

	case "top":
		if len(rest) < 1 || len(rest) > 2 {
			return usageError(name)
		}
		period := groupme.PeriodDay
		if len(rest) == 2 {
			period = groupme.Period(strings.ToLower(rest[1]))
			switch period {
			case groupme.PeriodDay, groupme.PeriodWeek, groupme.PeriodMonth:
			default:
				return fmt.Errorf("%w: period must be day, week or month, got %q", ErrUsage, rest[1])
			}
		}
		msgs, err := client.Leaderboard(ctx, rest[0], period)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Fprintf(out, "no liked messages this %s\n", period)
			return nil
		}
		for i, m := range msgs {
			fmt.Fprintf(out, "%2d. %s\n", i+1, formatMessageLine(m))
		}
		return nil
	}

	return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
}

func usageError(name string) error {
	for _, c := range Commands {
		if c.Name == name {
			return fmt.Errorf("%w: huddle %s", ErrUsage, c.Usage)
		}
	}
	return fmt.Errorf("%w: %s", ErrUsage, name)
}

func groupsTable(groups []groupme.Group) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "MESSAGES", "UPDATED")
	for _, g := range groups {
		updated := "-"
		if ts := g.Updated(); !ts.IsZero() {
			updated = ts.Format("2006-01-02 15:04")
		}
		t.Row(g.ID, g.Name, strconv.Itoa(g.Messages.Count), updated)
	}
	return t.String()
}

func formatMessageLine(m groupme.Message) string {
	stamp := "--:--"
	if ts := m.Created(); !ts.IsZero() {
		stamp = ts.Format("01-02 15:04")
	}
	text := strings.ReplaceAll(m.Text, "\n", " ")
	if text == "" && len(m.Attachments) > 0 {
		text = "[" + m.Attachments[0].AttachmentType() + "]"
	}
	line := fmt.Sprintf("%s %s: %s", stamp, m.Name, text)
	if n := len(m.FavoritedBy); n > 0 {
		line += fmt.Sprintf(" (+%d)", n)
	}
	return line + "  #" + m.ID
}
