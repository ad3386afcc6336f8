package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/huddle/internal/groupme"
	"github.com/five82/huddle/internal/prefs"
	"github.com/five82/huddle/internal/state"
)

// pane identifies which half of the screen has keyboard focus.
type pane int

const (
	paneGroups pane = iota
	paneMessages
)

const (
	requestTimeout    = 10 * time.Second
	noticeLifetime    = 5 * time.Second
	defaultMsgLimit   = 20
	composerCharLimit = 1000
)

// Client is the part of the GroupMe API the UI calls directly. Groups and
// the current user arrive through the state.Store instead.
type Client interface {
	Messages(ctx context.Context, groupID string, q groupme.MessagesQuery) ([]groupme.Message, error)
	CreateMessage(ctx context.Context, groupID, text string, attachments groupme.Attachments) (groupme.Message, error)
	Like(ctx context.Context, conversationID, messageID string) error
	Unlike(ctx context.Context, conversationID, messageID string) error
	Leaderboard(ctx context.Context, groupID string, period groupme.Period) ([]groupme.Message, error)
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Client       Client
	Store        *state.Store
	Logger       zerolog.Logger
	PollTick     time.Duration
	MessageLimit int
	ThemeName    string
	InitialGroup string
	PrefsPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	client       Client
	store        *state.Store
	logger       zerolog.Logger
	prefsPath    string
	pollTick     time.Duration
	messageLimit int
	keys         keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	focus  pane

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Groups pane
	groups        []groupme.Group
	selectedGroup int
	initialGroup  string
	seen          map[string]string // group ID -> last message ID the user has seen

	// Messages pane
	conv conversation

	// Composer
	composer  textinput.Model
	composing bool

	// Leaderboard overlay
	board leaderboard

	// Help overlay
	showHelp bool

	// Transient status line entry
	notice      string
	noticeIsErr bool
	noticeAt    time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	limit := opts.MessageLimit
	if limit <= 0 {
		limit = defaultMsgLimit
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	composer := textinput.New()
	composer.Placeholder = "Write a message..."
	composer.CharLimit = composerCharLimit
	composer.Prompt = "> "

	return Model{
		ctx:          ctx,
		client:       opts.Client,
		store:        opts.Store,
		logger:       opts.Logger,
		prefsPath:    prefsPath,
		pollTick:     pollTick,
		messageLimit: limit,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		initialGroup: strings.TrimSpace(opts.InitialGroup),
		seen:         make(map[string]string),
		conv:         conversation{viewport: viewport.New(0, 0)},
		composer:     composer,
		board:        leaderboard{period: groupme.PeriodDay},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.renderConversation()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		cmd := m.applySnapshot(state.Snapshot(msg))
		return m, cmd

	case messagesMsg:
		m.handleMessages(msg)
		return m, nil

	case sentMsg:
		m.handleSent(msg)
		return m, nil

	case likeMsg:
		m.handleLike(msg)
		return m, nil

	case boardMsg:
		m.handleBoard(msg)
		return m, nil
	}

	// Cursor blink and other textinput messages.
	if m.composing {
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.board.visible {
		return m.renderLeaderboard()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Overlays and the composer get the key
// first, then global bindings, then the focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.composing {
		return m.handleComposerKey(msg)
	}
	if m.board.visible {
		return m.handleBoardKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = m.theme.Name })
		m.renderConversation()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focus == paneGroups {
			m.focus = paneMessages
		} else {
			m.focus = paneGroups
		}
		m.renderConversation()
		return m, nil

	case key.Matches(msg, m.keys.Compose):
		return m, m.startComposing()

	case key.Matches(msg, m.keys.Leaderboard):
		return m, m.openLeaderboard()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadConversation()
	}

	switch m.focus {
	case paneGroups:
		return m.handleGroupsKey(msg)
	case paneMessages:
		return m.handleMessagesKey(msg)
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.notice != "" && time.Since(m.noticeAt) > noticeLifetime {
		m.notice = ""
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// setNotice shows a transient message in the header.
func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeIsErr = isErr
	m.noticeAt = time.Now()
}

// savePrefs applies fn to the stored preferences. Failures are logged only.
func (m *Model) savePrefs(fn func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.logger.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

// myID returns the authenticated user's ID, as used in favorited_by lists.
func (m Model) myID() string {
	if m.snapshot.Me.UserID != "" {
		return m.snapshot.Me.UserID
	}
	return m.snapshot.Me.ID
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		// Cancelled from outside, e.g. SIGTERM.
		return nil
	}
	return err
}
