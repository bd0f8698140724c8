package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tradenly/poopee-crush/internal/core"
	"github.com/tradenly/poopee-crush/internal/games/crush"
	"github.com/tradenly/poopee-crush/internal/games/crush/match3"
)

// crushLevelCount is how many levels the picker lists.
const crushLevelCount = 30

// CrushSelection holds the user's choice from the crush menu.
type CrushSelection struct {
	Level int // 0 = saved or configured level
}

// CrushModeModel lets users continue or pick a starting level.
type CrushModeModel struct {
	title         string
	levels        []match3.LevelConfig
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     CrushSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewCrushModeModel creates the selector for gameID.
func NewCrushModeModel(gameID string, width, height int) CrushModeModel {
	classic := gameID == crush.IDClassic
	title := "POOPEE CRUSH"
	if classic {
		title = "POOPEE CRUSH CLASSIC"
	}
	return CrushModeModel{
		title:     title,
		levels:    crush.LevelPreviews(crushLevelCount, classic),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m CrushModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m CrushModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleModeSelectKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m CrushModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == 0 {
			m.choosing = false
			return m, tea.Quit
		}
		m.inLevelSelect = true
		m.levelCursor = 0
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m CrushModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = CrushSelection{Level: m.levels[m.levelCursor].Number}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the mode or level selection.
func (m CrushModeModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m CrushModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.title, m.width))
	b.WriteString("\n\n")

	options := []string{"Play (continue saved level)", "Select Level..."}
	for i, opt := range options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+opt, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// visibleLevels is the window of level rows that fits the terminal.
func (m CrushModeModel) visibleLevels() (from, to int) {
	rows := max(m.height-7, 3)
	from = max(m.levelCursor-rows/2, 0)
	to = min(from+rows, len(m.levels))
	from = max(to-rows, 0)
	return from, to
}

func (m CrushModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	from, to := m.visibleLevels()
	for i := from; i < to; i++ {
		l := m.levels[i]
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		goals := ""
		if extra := len(l.Objectives) - 1; extra > 0 {
			goals = fmt.Sprintf(" +%d goals", extra)
		}
		line := fmt.Sprintf("%s%2d. %2d moves  target %6d%s", cursor, l.Number, l.Moves, l.RequiredScore, goals)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m CrushModeModel) Selected() *CrushSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m CrushModeModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m CrushModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m CrushModeModel) WantsBack() bool {
	return m.back
}

// RunCrushModeSelector runs the crush level selection for gameID. A nil
// selection means the user backed out or quit.
func RunCrushModeSelector(gameID string, cfg core.RuntimeConfig) (*CrushSelection, core.RuntimeConfig, error) {
	p := tea.NewProgram(
		NewCrushModeModel(gameID, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(CrushModeModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}
	cfg.ScreenW, cfg.ScreenH = m.width, m.height
	return m.Selected(), cfg, nil
}
