package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/games/flappy"
	"github.com/retrobox/retrobox/internal/games/runner"
	"github.com/retrobox/retrobox/internal/games/snake"
)

// SettingsSelection holds the user's choices from the pre-game settings menu.
type SettingsSelection struct {
	Preset config.DifficultyPreset
	Snake  *config.SnakeConfig // Set only for snake with the custom preset
}

// HasSettings reports whether a game offers a pre-game settings screen.
// Match-three and invaders tune themselves per wave/timer and take no preset.
func HasSettings(gameID string) bool {
	switch gameID {
	case "snake", "flappy", "runner":
		return true
	}
	return false
}

// ApplySettings pushes the selection into the game package before Reset.
func ApplySettings(gameID string, sel SettingsSelection) {
	switch gameID {
	case "snake":
		if sel.Preset == config.DifficultyCustom && sel.Snake != nil {
			snake.SetCustom(*sel.Snake)
		} else {
			snake.SetDifficultyPreset(string(sel.Preset))
		}
	case "flappy":
		flappy.SetDifficultyPreset(string(sel.Preset))
	case "runner":
		runner.SetDifficultyPreset(string(sel.Preset))
	}
}

// presetsFor lists the presets a game supports, in display order.
func presetsFor(gameID string) []config.DifficultyPreset {
	presets := []config.DifficultyPreset{
		config.DifficultyEasy,
		config.DifficultyNormal,
		config.DifficultyHard,
	}
	switch gameID {
	case "snake":
		presets = append(presets, config.DifficultyCustom)
	case "flappy", "runner":
		presets = append(presets, config.DifficultyFixed)
	}
	return presets
}

// customField indexes the editable rows of the snake custom editor.
type customField int

const (
	fieldSpeed customField = iota
	fieldGridSize
	fieldWrapWalls
	fieldDone
)

// SettingsModel lets users pick a difficulty preset before a run,
// and for Snake edit speed, grid size and wall wrapping directly.
type SettingsModel struct {
	gameID    string
	title     string
	presets   []config.DifficultyPreset
	cursor    int
	inCustom  bool
	field     customField
	custom    config.SnakeConfig
	width     int
	height    int
	keyMapper *KeyMapper
	selection *SettingsSelection
	quitting  bool
	back      bool
}

// NewSettingsModel creates a settings model for the given game.
func NewSettingsModel(gameID, title string, width, height int) SettingsModel {
	return SettingsModel{
		gameID:    gameID,
		title:     title,
		presets:   presetsFor(gameID),
		cursor:    1, // Normal
		custom:    config.SnakePreset(config.DifficultyNormal),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inCustom {
		return m.handleCustomKey(msg)
	}
	return m.handlePresetKey(msg)
}

func (m SettingsModel) handlePresetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionBack:
		m.back = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		preset := m.presets[m.cursor]
		if preset == config.DifficultyCustom {
			m.inCustom = true
			m.field = fieldSpeed
			return m, nil
		}
		m.selection = &SettingsSelection{Preset: preset}
		return m, tea.Quit
	}

	return m, nil
}

func (m SettingsModel) handleCustomKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Left/right adjust the focused field; they are not menu actions
	switch msg.String() {
	case "a", "left":
		m.adjustField(-1)
		return m, nil
	case "d", "right":
		m.adjustField(1)
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionBack:
		m.inCustom = false
		return m, nil

	case MenuActionUp:
		if m.field > 0 {
			m.field--
		}

	case MenuActionDown:
		if m.field < fieldDone {
			m.field++
		}

	case MenuActionSelect:
		switch m.field {
		case fieldWrapWalls:
			m.custom.WrapWalls = !m.custom.WrapWalls
		case fieldDone:
			custom := m.custom
			m.selection = &SettingsSelection{
				Preset: config.DifficultyCustom,
				Snake:  &custom,
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

// adjustField nudges the focused numeric field; bounds match the
// clamping the snake game applies at run start.
func (m *SettingsModel) adjustField(delta int) {
	switch m.field {
	case fieldSpeed:
		m.custom.Speed = clampInt(m.custom.Speed+delta, 2, 30)
	case fieldGridSize:
		m.custom.GridSize = clampInt(m.custom.GridSize+delta*2, 10, 40)
	case fieldWrapWalls:
		m.custom.WrapWalls = !m.custom.WrapWalls
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inCustom {
		return m.viewCustom()
	}
	return m.viewPresets()
}

func (m SettingsModel) viewPresets() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Difficulty", m.width))
	b.WriteString("\n\n")

	for i, preset := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+presetLabel(preset), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Start  |  Esc: Back  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m SettingsModel) viewCustom() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("CUSTOM GAME", m.width))
	b.WriteString("\n\n")

	wrap := "off"
	if m.custom.WrapWalls {
		wrap = "on"
	}
	rows := []string{
		fmt.Sprintf("Speed      < %2d >", m.custom.Speed),
		fmt.Sprintf("Grid size  < %2d >", m.custom.GridSize),
		fmt.Sprintf("Wrap walls < %s >", wrap),
		"Start",
	}

	for i, row := range rows {
		cursor := "  "
		if customField(i) == m.field {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Adjust  |  Enter: Toggle/Start  |  Esc: Back", m.width))
	b.WriteString("\n")

	return b.String()
}

func presetLabel(p config.DifficultyPreset) string {
	switch p {
	case config.DifficultyEasy:
		return "Easy"
	case config.DifficultyNormal:
		return "Normal"
	case config.DifficultyHard:
		return "Hard"
	case config.DifficultyFixed:
		return "Fixed (no ramp-up)"
	case config.DifficultyCustom:
		return "Custom..."
	default:
		return string(p)
	}
}

// Selection returns the chosen settings, or nil if the user backed out.
func (m SettingsModel) Selection() *SettingsSelection {
	return m.selection
}

// IsQuitting returns true if user requested to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user backed out to the game menu.
func (m SettingsModel) WantsBack() bool {
	return m.back
}

// SettingsResult holds the result of running the settings menu.
type SettingsResult struct {
	Selection *SettingsSelection
	Back      bool
	Quit      bool
}

// RunSettings shows the settings menu for a game and returns the choice.
// Games without settings return an immediate normal-preset selection.
func RunSettings(gameID, title string, width, height int) (SettingsResult, error) {
	if !HasSettings(gameID) {
		return SettingsResult{
			Selection: &SettingsSelection{Preset: config.DifficultyNormal},
		}, nil
	}

	model := NewSettingsModel(gameID, title, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return SettingsResult{Quit: true}, err
	}

	m, ok := finalModel.(SettingsModel)
	if !ok {
		return SettingsResult{Quit: true}, nil
	}

	if m.IsQuitting() {
		return SettingsResult{Quit: true}, nil
	}
	if m.WantsBack() || m.Selection() == nil {
		return SettingsResult{Back: true}, nil
	}
	return SettingsResult{Selection: m.Selection()}, nil
}
