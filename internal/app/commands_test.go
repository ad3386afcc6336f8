package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/five82/huddle/internal/groupme"
)

type fakeClient struct {
	me       groupme.CurrentUser
	meErr    error
	groups   []groupme.Group
	groupErr error
	messages []groupme.Message
	top      []groupme.Message

	groupOpts  groupme.ListGroupsOptions
	msgQuery   groupme.MessagesQuery
	sent       []string
	liked      []string
	unliked    []string
	period     groupme.Period
	meCalls    int
	groupCalls int
}

func (f *fakeClient) Me(context.Context) (groupme.CurrentUser, error) {
	f.meCalls++
	return f.me, f.meErr
}

func (f *fakeClient) Groups(_ context.Context, opts groupme.ListGroupsOptions) ([]groupme.Group, error) {
	f.groupCalls++
	f.groupOpts = opts
	return f.groups, f.groupErr
}

func (f *fakeClient) Messages(_ context.Context, _ string, q groupme.MessagesQuery) ([]groupme.Message, error) {
	f.msgQuery = q
	return f.messages, nil
}

func (f *fakeClient) CreateMessage(_ context.Context, groupID, text string, _ groupme.Attachments) (groupme.Message, error) {
	f.sent = append(f.sent, groupID+":"+text)
	return groupme.Message{ID: "m-new", GroupID: groupID, Text: text}, nil
}

func (f *fakeClient) Like(_ context.Context, conv, msg string) error {
	f.liked = append(f.liked, conv+"/"+msg)
	return nil
}

func (f *fakeClient) Unlike(_ context.Context, conv, msg string) error {
	f.unliked = append(f.unliked, conv+"/"+msg)
	return nil
}

func (f *fakeClient) Leaderboard(_ context.Context, _ string, period groupme.Period) ([]groupme.Message, error) {
	f.period = period
	return f.top, nil
}

func TestExecute_Me(t *testing.T) {
	f := &fakeClient{me: groupme.CurrentUser{ID: "u1", Name: "Al", Email: "al@example.com"}}
	var out bytes.Buffer
	if err := execute(context.Background(), f, []string{"me"}, 20, &out); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "Al (u1)") || !strings.Contains(got, "al@example.com") {
		t.Fatalf("output = %q", got)
	}
}

func TestExecute_GroupsTable(t *testing.T) {
	f := &fakeClient{groups: []groupme.Group{
		{ID: "10", Name: "Family", Messages: groupme.GroupMessages{Count: 42}},
		{ID: "11", Name: "Work"},
	}}
	var out bytes.Buffer
	if err := execute(context.Background(), f, []string{"groups"}, 20, &out); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := out.String()
	for _, want := range []string{"ID", "NAME", "Family", "42", "Work"} {
		if !strings.Contains(got, want) {
			t.Fatalf("table missing %q:\n%s", want, got)
		}
	}
	if f.groupOpts.Omit != "memberships" {
		t.Fatalf("Omit = %q, want memberships", f.groupOpts.Omit)
	}
}

func TestExecute_MessagesOldestFirst(t *testing.T) {
	f := &fakeClient{messages: []groupme.Message{
		{ID: "3", Name: "Bo", Text: "third", FavoritedBy: []string{"u1", "u2"}},
		{ID: "2", Name: "Al", Text: "second"},
		{ID: "1", Name: "Al", Attachments: groupme.Attachments{groupme.ImageAttachment{URL: "https://i.groupme.com/x"}}},
	}}
	var out bytes.Buffer
	if err := execute(context.Background(), f, []string{"messages", "10", "5"}, 20, &out); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if f.msgQuery.Limit != 5 {
		t.Fatalf("limit = %d, want 5", f.msgQuery.Limit)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "[image]") || !strings.HasSuffix(lines[0], "#1") {
		t.Fatalf("first line = %q, want oldest image message", lines[0])
	}
	if !strings.Contains(lines[2], "third (+2)") {
		t.Fatalf("last line = %q, want like count", lines[2])
	}
}

func TestExecute_MessagesDefaultLimit(t *testing.T) {
	f := &fakeClient{}
	var out bytes.Buffer
	if err := execute(context.Background(), f, []string{"messages", "10"}, 20, &out); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if f.msgQuery.Limit != 20 {
		t.Fatalf("limit = %d, want 20", f.msgQuery.Limit)
	}
	if strings.TrimSpace(out.String()) != "no messages" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestExecute_SendJoinsArgs(t *testing.T) {
	f := &fakeClient{}
	var out bytes.Buffer
	if err := execute(context.Background(), f, []string{"send", "10", "hello", "there"}, 20, &out); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(f.sent) != 1 || f.sent[0] != "10:hello there" {
		t.Fatalf("sent = %v", f.sent)
	}
	if strings.TrimSpace(out.String()) != "sent m-new" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestExecute_LikeAndUnlike(t *testing.T) {
	f := &fakeClient{}
	var out bytes.Buffer
	if err := execute(context.Background(), f, []string{"like", "10", "99"}, 20, &out); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := execute(context.Background(), f, []string{"unlike", "10", "99"}, 20, &out); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if len(f.liked) != 1 || f.liked[0] != "10/99" || len(f.unliked) != 1 {
		t.Fatalf("liked=%v unliked=%v", f.liked, f.unliked)
	}
	if !strings.Contains(out.String(), "liked 99") || !strings.Contains(out.String(), "unliked 99") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestExecute_TopPeriod(t *testing.T) {
	f := &fakeClient{top: []groupme.Message{{ID: "5", Name: "Al", Text: "lol", FavoritedBy: []string{"a"}}}}
	var out bytes.Buffer
	if err := execute(context.Background(), f, []string{"top", "10", "WEEK"}, 20, &out); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if f.period != groupme.PeriodWeek {
		t.Fatalf("period = %q, want week", f.period)
	}
	if !strings.HasPrefix(out.String(), " 1. ") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestExecute_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"empty", nil},
		{"unknown", []string{"dance"}},
		{"messages no group", []string{"messages"}},
		{"messages bad count", []string{"messages", "10", "many"}},
		{"send no text", []string{"send", "10"}},
		{"send blank text", []string{"send", "10", "  "}},
		{"like missing message", []string{"like", "10"}},
		{"top bad period", []string{"top", "10", "year"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(context.Background(), &fakeClient{}, tt.args, 20, &bytes.Buffer{})
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("err = %v, want ErrUsage", err)
			}
		})
	}
}

func TestExecute_PropagatesClientError(t *testing.T) {
	remote := &groupme.RemoteError{Op: "me", Code: 401, Errors: []string{"unauthorized"}}
	f := &fakeClient{meErr: remote}
	err := execute(context.Background(), f, []string{"me"}, 20, &bytes.Buffer{})
	if !groupme.IsRemoteError(err, "unauthorized") {
		t.Fatalf("err = %v, want remote unauthorized", err)
	}
}

func TestFormatMessageLine_Timestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	line := formatMessageLine(groupme.Message{ID: "1", Name: "Al", Text: "a\nb", CreatedAt: ts.Unix()})
	if line != "03-09 14:05 Al: a b  #1" {
		t.Fatalf("line = %q", line)
	}
}
