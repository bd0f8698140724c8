package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tradenly/poopee-crush/internal/registry"
	"github.com/tradenly/poopee-crush/internal/session"
	"github.com/tradenly/poopee-crush/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 20  // Width of game list sidebar
	maxScores          = 100 // Max scores to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev game"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next game"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreSource is what the scoreboard reads.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	RecentSessions(ctx context.Context, user string, limit int) ([]session.SessionRecord, error)
}

// StatsSource is implemented by score sources that keep per-game totals.
type StatsSource interface {
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// scoreTab is one page of the scoreboard: a game's high scores, or the
// player's recent sessions when gameID is empty.
type scoreTab struct {
	gameID string
	title  string
}

func (t scoreTab) recent() bool { return t.gameID == "" }

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	tabs        []scoreTab
	tabCursor   int
	source      ScoreSource
	player      string
	rows        []table.Row
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show game list sidebar
}

// NewScoreboardModel creates a new scoreboard model. source may be nil.
func NewScoreboardModel(source ScoreSource, player string, width, height int) ScoreboardModel {
	games := registry.List()
	tabs := make([]scoreTab, 0, len(games)+1)
	for _, g := range games {
		tabs = append(tabs, scoreTab{gameID: g.ID, title: g.Title})
	}
	recentTitle := "Recent games"
	if player != "" {
		recentTitle = "My games"
	}
	tabs = append(tabs, scoreTab{title: recentTitle})

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		tabs:        tabs,
		source:      source,
		player:      player,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

func (m ScoreboardModel) current() scoreTab {
	return m.tabs[m.tabCursor]
}

// createTable creates a table with columns for the current tab.
func (m *ScoreboardModel) createTable() table.Model {
	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	var columns []table.Column
	if m.current().recent() {
		columns = []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Player", Width: 10},
			{Title: "Lvl", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Stars", Width: 5},
			{Title: "Result", Width: 10},
			{Title: "Paid", Width: 5},
			{Title: "Won", Width: 5},
		}
		if m.player != "" {
			columns = append(columns[:1], columns[2:]...)
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 18},
		}
		if tableWidth > 40 {
			columns[1].Width = 12
			columns[2].Width = min(tableWidth-22, 20)
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the rows for the current tab and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.rows = nil
	if m.source != nil {
		if m.current().recent() {
			m.rows = m.recentRows()
		} else {
			m.rows = m.scoreRows(m.current().gameID)
		}
	}
	m.table = m.createTable()
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) scoreRows(gameID string) []table.Row {
	scores, err := m.source.TopScores(gameID, maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) recentRows() []table.Row {
	recs, err := m.source.RecentSessions(context.Background(), m.player, maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(recs))
	for i, r := range recs {
		row := table.Row{r.EndedAt.Local().Format("Jan 02 15:04")}
		if m.player == "" {
			row = append(row, r.User)
		}
		row = append(row,
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Score),
			strings.Repeat("*", r.Stars),
			strings.ReplaceAll(r.Status, "_", " "),
			fmt.Sprintf("%d", r.CreditsSpent),
			fmt.Sprintf("%d", r.Reward),
		)
		rows[i] = row
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.Right):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame), key.Matches(msg, m.keys.Left):
			m.tabCursor = (m.tabCursor + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle     = dimStyle.Italic(true).Padding(2, 4)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES - " + m.current().title
	if m.current().recent() {
		title = strings.ToUpper(m.current().title)
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", panelStyle.Render(m.tableView()))
	} else {
		body = centerText(m.tabStrip(), m.width) + "\n\n" + panelStyle.Render(m.tableView())
	}

	parts := []string{centerText(boardTitleStyle.Render(title), m.width), "", body}
	if footer := m.footer(); footer != "" {
		parts = append(parts, dimStyle.Render(footer))
	}
	parts = append(parts, dimStyle.Render(m.help.View(m.keys)))
	return strings.Join(parts, "\n")
}

// sidebar lists the tabs vertically for wide terminals.
func (m ScoreboardModel) sidebar() string {
	lines := []string{"Boards", strings.Repeat("-", sidebarWidth-4)}
	for i, tab := range m.tabs {
		name := truncate(tab.title, sidebarWidth-6)
		if i == m.tabCursor {
			lines = append(lines, activeTabStyle.Render("> "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return panelStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

// tabStrip shows the tabs on one line, or only the current one with
// arrows when they do not fit.
func (m ScoreboardModel) tabStrip() string {
	names := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		name := truncate(tab.title, 12)
		if i == m.tabCursor {
			names[i] = activeTabStyle.Render("[" + name + "]")
		} else {
			names[i] = dimStyle.Render(" " + name + " ")
		}
	}
	strip := strings.Join(names, " ")
	if lipgloss.Width(strip) > m.width-4 {
		return fmt.Sprintf("< %s >", m.current().title)
	}
	return strip
}

// tableView renders the table or an empty message.
func (m ScoreboardModel) tableView() string {
	if len(m.rows) > 0 {
		return m.table.View()
	}
	if m.current().recent() {
		return emptyStyle.Render("No finished games yet.")
	}
	return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
}

// footer summarises the current game's scores when the source can.
func (m ScoreboardModel) footer() string {
	src, ok := m.source.(StatsSource)
	if !ok || m.current().recent() {
		return ""
	}
	stats, err := src.GetGameStats(m.current().gameID)
	if err != nil || stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Best %d  |  %d games  |  average %.0f", stats.HighScore, stats.GamesCount, stats.AvgScore)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(source ScoreSource, player string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(source, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
