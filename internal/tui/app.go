package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/matieusz/onlyyes/internal/api"
	"github.com/matieusz/onlyyes/internal/config"
	"github.com/matieusz/onlyyes/internal/core"
	apperrors "github.com/matieusz/onlyyes/internal/errors"
	"github.com/matieusz/onlyyes/internal/events"
	"github.com/matieusz/onlyyes/internal/player"
	"github.com/matieusz/onlyyes/internal/presence"
	"github.com/matieusz/onlyyes/internal/radio"
	"github.com/matieusz/onlyyes/internal/tui/components"
	"github.com/matieusz/onlyyes/internal/tui/styles"
)

// Brand is the station name shown in the window title.
const Brand = "ONLY YES RADIO"

// Panel represents which panel is focused.
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelNext
	PanelHistory
	PanelListeners
)

const volumeStep = 0.05

// App holds the wired-together subsystems behind the TUI.
type App struct {
	cfg      *config.Config
	client   *api.Client
	sync     *radio.Synchronizer
	stream   *events.Stream
	player   *player.Player
	presence *presence.Updater
	logger   *zap.Logger
	kiosk    bool

	snapshots chan core.Snapshot
}

// NewApp wires the API client, synchronizer, event stream, audio player
// and presence updater together.
func NewApp(cfg *config.Config, logger *zap.Logger, kiosk bool) (*App, error) {
	storePath, err := radio.DefaultStorePath()
	if err != nil {
		return nil, fmt.Errorf("resolving state path: %w", err)
	}

	client := api.New(cfg.Server.BaseURL, cfg.Server.Session, time.Duration(cfg.Server.Timeout)*time.Second)

	sync := radio.NewSynchronizer(client, radio.NewStore(storePath),
		radio.WithLogger(logger),
		radio.WithHistoryLimit(cfg.Radio.HistoryLimit),
	)

	stream := events.New(cfg.Server.BaseURL+"/api/radio/events", sync.ApplyEvent,
		events.WithLogger(logger),
		events.WithStateFunc(sync.SetConnected),
	)

	app := &App{
		cfg:       cfg,
		client:    client,
		sync:      sync,
		stream:    stream,
		logger:    logger,
		kiosk:     kiosk || cfg.TUI.Kiosk,
		snapshots: make(chan core.Snapshot, 16),
	}

	app.player = player.New(sync.Snapshot().Volume,
		player.WithLogger(logger),
		player.WithStallFunc(func(error) { sync.ForcePause() }),
	)

	if cfg.Presence.Enabled && cfg.Presence.AppID != "" {
		app.presence = presence.New(cfg.Presence.AppID, cfg.Server.BaseURL, logger)
	}

	sync.Subscribe(func(snap core.Snapshot) {
		select {
		case app.snapshots <- snap:
		default:
			// UI is behind; it will catch up on the next snapshot.
		}
		if app.presence != nil {
			app.presence.Apply(snap)
		}
	})

	return app, nil
}

// streamURL resolves the snapshot's stream URL against the backend.
func (a *App) streamURL(snap core.Snapshot) string {
	u := snap.Current.StreamURL
	if u == "" {
		u = radio.ProxyStreamPath
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return a.cfg.Server.BaseURL + u
}

func (a *App) shutdown() {
	a.stream.Close()
	a.player.Stop()
	if a.presence != nil {
		a.presence.Close()
	}
	a.sync.Close()
}

// Model is the main TUI model.
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	snap      core.Snapshot
	listeners []api.Listener
	lastTitle string

	// myVote tracks the user's vote on the song being shown. It belongs
	// to the display, not the synchronizer: it is fetched per song and
	// thrown away when the station moves on.
	myVote *core.VoteType

	nowPlaying    *components.NowPlaying
	nextSong      *components.NextSong
	historyView   *components.History
	listenersView *components.Listeners
	spin          spinner.Model

	showHelp bool
	kiosk    bool

	statusText   string
	statusExpiry time.Time
	lastError    error
	errorExpiry  time.Time

	quitting bool
}

// NewModel creates a new TUI model.
func NewModel(app *App) Model {
	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Highlight),
	)

	return Model{
		app:           app,
		focusedPanel:  PanelNowPlaying,
		kiosk:         app.kiosk,
		nowPlaying:    components.NewNowPlaying(),
		nextSong:      components.NewNextSong(),
		historyView:   components.NewHistory(),
		listenersView: components.NewListeners(),
		spin:          spin,
	}
}

// Messages
type snapMsg core.Snapshot
type listenersMsg []api.Listener
type listenersTickMsg struct{}
type statusMsg string
type errMsg error
type initializedMsg struct{}

type voteStatusMsg struct {
	songID string
	vote   *core.VoteType
}

type votedMsg struct {
	songID string
	vote   core.VoteType
	xp     bool
}

// Commands

func (m Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapMsg(<-m.app.snapshots)
	}
}

func (m Model) initialize() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		m.app.sync.Initialize(ctx)
		return initializedMsg{}
	}
}

func (m Model) fetchListeners() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		listeners, err := m.app.client.ActiveListeners(ctx)
		if err != nil {
			return errMsg(err)
		}
		return listenersMsg(listeners)
	}
}

func (m Model) listenersTick() tea.Cmd {
	interval := time.Duration(m.app.cfg.Radio.ListenersInterval) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return listenersTickMsg{}
	})
}

func (m Model) togglePlay() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		playing, err := m.app.sync.TogglePlay(ctx)
		if err != nil {
			return errMsg(err)
		}
		if playing {
			snap := m.app.sync.Snapshot()
			if err := m.app.player.Play(ctx, m.app.streamURL(snap)); err != nil {
				m.app.sync.ForcePause()
				return errMsg(err)
			}
			return statusMsg("Playing")
		}
		m.app.player.Stop()
		return statusMsg("Paused")
	}
}

func (m Model) adjustVolume(delta float64) tea.Cmd {
	return func() tea.Msg {
		v := m.app.sync.SetVolume(m.app.sync.Snapshot().Volume + delta)
		m.app.player.SetVolume(v)
		return nil
	}
}

func (m Model) vote(voteType core.VoteType) tea.Cmd {
	songID := m.snap.Current.SongID
	return func() tea.Msg {
		if songID == "" {
			return errMsg(fmt.Errorf("no song to vote on"))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := m.app.client.SubmitVote(ctx, songID, voteType)
		if err != nil {
			return errMsg(err)
		}
		return votedMsg{songID: songID, vote: voteType, xp: result.XPAwarded}
	}
}

func (m Model) fetchVote(songID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Anonymous sessions get an auth error here; the panel just shows
		// no vote in that case.
		vote, err := m.app.client.GetVote(ctx, songID)
		if err != nil {
			return nil
		}
		return voteStatusMsg{songID: songID, vote: vote}
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	m.app.stream.Connect()
	if m.app.presence != nil {
		m.app.presence.Connect()
	}
	return tea.Batch(
		tea.SetWindowTitle(Brand),
		m.spin.Tick,
		m.initialize(),
		m.waitForSnapshot(),
		m.fetchListeners(),
		m.listenersTick(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapMsg:
		prev := m.snap
		m.snap = core.Snapshot(msg)
		cmds := []tea.Cmd{m.waitForSnapshot()}

		// The vote belongs to the song it was cast on.
		if !m.snap.Current.SameAs(prev.Current) {
			m.myVote = nil
			if m.snap.Current.SongID != "" {
				cmds = append(cmds, m.fetchVote(m.snap.Current.SongID))
			}
		}

		// Mirror the track into the terminal title, once per change.
		if title := m.snap.TitleLine(Brand); title != m.lastTitle {
			m.lastTitle = title
			cmds = append(cmds, tea.SetWindowTitle(title))
		}
		return m, tea.Batch(cmds...)

	case initializedMsg:
		m.snap = m.app.sync.Snapshot()
		if m.myVote == nil && m.snap.Current.SongID != "" {
			return m, m.fetchVote(m.snap.Current.SongID)
		}
		return m, nil

	case listenersTickMsg:
		return m, tea.Batch(m.fetchListeners(), m.listenersTick())

	case listenersMsg:
		m.listeners = msg
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case voteStatusMsg:
		if msg.songID == m.snap.Current.SongID {
			m.myVote = msg.vote
		}
		return m, nil

	case votedMsg:
		if msg.songID == m.snap.Current.SongID {
			vote := msg.vote
			m.myVote = &vote
		}
		text := "Voted 👍"
		if msg.vote == core.VoteDislike {
			text = "Voted 👎"
		}
		if msg.xp {
			text += " (+XP)"
		}
		m.statusText = text
		m.statusExpiry = time.Now().Add(5 * time.Second)
		return m, nil

	case statusMsg:
		m.statusText = string(msg)
		m.statusExpiry = time.Now().Add(5 * time.Second)
		return m, nil

	case errMsg:
		m.lastError = msg
		m.errorExpiry = time.Now().Add(5 * time.Second)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "k":
		m.kiosk = !m.kiosk
		return m, nil

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % 4
		return m, nil

	case "shift+tab":
		m.focusedPanel = (m.focusedPanel + 3) % 4
		return m, nil

	case " ":
		return m, m.togglePlay()

	case "+", "=":
		return m, m.adjustVolume(volumeStep)

	case "-":
		return m, m.adjustVolume(-volumeStep)

	case "l":
		return m, m.vote(core.VoteLike)

	case "d":
		return m, m.vote(core.VoteDislike)

	case "r":
		return m, tea.Batch(m.initialize(), m.fetchListeners())
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.kiosk {
		return m.renderKiosk()
	}

	// Two columns: hero player and next song on the left, history and
	// listeners on the right.
	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := m.height * 55 / 100
	bottomHeight := m.height - topHeight - 3

	nowPlaying := m.nowPlaying.Render(m.snap, m.myVote, leftWidth-2, topHeight-2, m.focusedPanel == PanelNowPlaying)
	nextSong := m.nextSong.Render(m.snap.Next, leftWidth-2, bottomHeight-2, m.focusedPanel == PanelNext)
	historyView := m.historyView.Render(m.snap.Recent, rightWidth-2, topHeight-2, m.focusedPanel == PanelHistory)
	listenersView := m.listenersView.Render(m.listeners, rightWidth-2, bottomHeight-2, m.focusedPanel == PanelListeners)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, nextSong)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, historyView, listenersView)

	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)
	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) renderKiosk() string {
	content := m.nowPlaying.Render(m.snap, m.myVote, m.width-4, m.height-4, false)
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  space:play/pause  l:like  d:dislike  +/-:volume  k:kiosk  tab:panel")

	if !m.snap.Connected {
		status = m.spin.View() + " " + styles.Muted.Render("reconnecting...")
	}
	if m.lastError != nil && time.Now().Before(m.errorExpiry) {
		text := "Error: " + m.lastError.Error()
		if suggestion := apperrors.GetSuggestion(m.lastError); suggestion != "" {
			text += " — " + suggestion
		}
		status = styles.Paused.Render(text)
	} else if m.statusText != "" && time.Now().Before(m.statusExpiry) {
		status = styles.Playing.Render(m.statusText)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := Brand + " - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  Tab          Next panel
  Shift+Tab    Previous panel
  r            Refresh
  k            Kiosk mode

  Playback
  ────────
  Space        Play/Pause
  +/=          Volume up
  -            Volume down

  Community
  ─────────
  l            Like the current song
  d            Dislike the current song

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the TUI application.
func Run(cfg *config.Config, logger *zap.Logger, kiosk bool) error {
	styles.SetTheme(cfg.TUI.Theme)

	app, err := NewApp(cfg, logger, kiosk)
	if err != nil {
		return err
	}
	defer app.shutdown()

	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
