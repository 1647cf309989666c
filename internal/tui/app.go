// internal/tui/app.go
//
// This is the interactive front end for routecipher.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the prompt answers and the last encryption
// 2. Update: key presses move through the prompts and drive the cipher
// 3. View: renders the prompts, the grid and the ciphertext
//
// The three prompts mirror the classic line-mode questions: the message, the
// "#,#" dimensions, and the c/cc direction.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/routecipher/internal/cipher"
	"github.com/kingrea/routecipher/internal/config"
	"github.com/kingrea/routecipher/internal/logbook"
)

// step represents which prompt (or the result screen) is active
type step int

const (
	stepMessage    step = iota // Plaintext prompt
	stepDimensions             // "#,#" prompt
	stepDirection              // c / cc prompt
	stepResult                 // Grid and ciphertext
)

var stepOrder = []step{stepMessage, stepDimensions, stepDirection, stepResult}

// FriendlyName is shown in the progress line.
func (s step) FriendlyName() string {
	switch s {
	case stepMessage:
		return "Message"
	case stepDimensions:
		return "Dimensions"
	case stepDirection:
		return "Direction"
	case stepResult:
		return "Ciphertext"
	default:
		return "Unknown"
	}
}

const (
	// grids larger than this are summarized instead of drawn
	maxRenderedCells = 24 * 24
	logPanelLines    = 6
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook records every encryption to lb.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithClipboard overrides how the ciphertext is copied.
func WithClipboard(write func(string) error) AppOption {
	return func(a *App) {
		if write != nil {
			a.copyText = write
		}
	}
}

type clipboardMsg struct{ err error }

type savedDirectionMsg struct {
	dir cipher.Direction
	err error
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	step    step
	config  *config.Config
	logbook *logbook.Logbook

	inputs   [3]textinput.Model
	keys     keyMap
	help     help.Model
	copyText func(string) error

	// Accepted answers
	message    string
	gridWidth  int
	gridHeight int
	direction  cipher.Direction

	// Last encryption
	grid       *cipher.Grid
	route      []cipher.Point
	ciphertext string
	run        *logbook.Run

	statusMsg string
	err       error

	// Terminal size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App. The direction prompt is prefilled from cfg.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	a := &App{
		step:      stepMessage,
		config:    cfg,
		keys:      newKeyMap(),
		help:      help.New(),
		copyText:  clipboard.WriteAll,
		direction: cfg.Direction(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.inputs = newInputs(a.direction)
	a.focus(stepMessage)
	a.logbook.Info("Session opened · filler %c · default %s", cfg.Filler(), a.direction)
	a.statusMsg = "Type the message to encrypt."
	return a
}

func newInputs(dir cipher.Direction) [3]textinput.Model {
	message := textinput.New()
	message.Prompt = "Input string to be encrypted: "
	message.Placeholder = "we are discovered, flee at once"

	dims := textinput.New()
	dims.Prompt = "Enter dimensions (#,#): "
	dims.Placeholder = "9,3"
	dims.CharLimit = 9

	direction := textinput.New()
	direction.Prompt = "Enter a direction ('c' for clockwise or 'cc' for counter-clockwise): "
	direction.CharLimit = 2
	direction.SetValue(dir.Token())

	return [3]textinput.Model{message, dims, direction}
}

// focus moves the cursor to the input for s and blurs the others.
func (a *App) focus(s step) tea.Cmd {
	a.step = s
	var cmd tea.Cmd
	for i := range a.inputs {
		if step(i) == s {
			cmd = a.inputs[i].Focus()
			a.inputs[i].CursorEnd()
			continue
		}
		a.inputs[i].Blur()
	}
	return cmd
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case clipboardMsg:
		if msg.err != nil {
			a.err = fmt.Errorf("copy to clipboard: %w", msg.err)
			a.logbook.Warn("Clipboard copy failed: %v", msg.err)
			return a, nil
		}
		a.err = nil
		a.statusMsg = fmt.Sprintf("Copied %d letters to the clipboard.", len(a.ciphertext))
		return a, nil

	case savedDirectionMsg:
		if msg.err != nil {
			a.err = msg.err
			a.logbook.Error("Saving default direction failed: %v", msg.err)
			return a, nil
		}
		a.config.UseDirection(msg.dir)
		a.err = nil
		a.statusMsg = fmt.Sprintf("Default direction saved: %s.", msg.dir)
		a.logbook.Info("Default direction set to %s", msg.dir)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Back):
			return a.back()
		}
		if a.step == stepResult {
			return a.updateResult(msg)
		}
		if key.Matches(msg, a.keys.Submit) {
			return a.submit()
		}
	}

	if a.step == stepResult {
		return a, nil
	}
	var cmd tea.Cmd
	a.inputs[a.step], cmd = a.inputs[a.step].Update(msg)
	return a, cmd
}

func (a *App) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Close):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Flip):
		a.direction = a.direction.Opposite()
		a.inputs[stepDirection].SetValue(a.direction.Token())
		a.encrypt()
		return a, nil
	case key.Matches(msg, a.keys.Copy):
		text := a.ciphertext
		write := a.copyText
		return a, func() tea.Msg {
			return clipboardMsg{err: write(text)}
		}
	case key.Matches(msg, a.keys.Save):
		// the cmd runs off the event loop; it gets its own copy
		dir := a.direction
		snapshot := a.config.Clone()
		return a, func() tea.Msg {
			return savedDirectionMsg{dir: dir, err: snapshot.SetDefaultDirection(dir.Token())}
		}
	case key.Matches(msg, a.keys.Again):
		return a, a.reset()
	}
	return a, nil
}

// submit validates the active prompt and advances on success.
func (a *App) submit() (tea.Model, tea.Cmd) {
	value := a.inputs[a.step].Value()
	switch a.step {
	case stepMessage:
		a.message = value
		a.err = nil
		a.statusMsg = "Grid size as width,height (row length, number of rows)."
		return a, a.focus(stepDimensions)

	case stepDimensions:
		w, h, err := cipher.ParseDimensions(value)
		if err == nil && (w == 0 || h == 0) {
			err = fmt.Errorf("%w: got %dx%d", cipher.ErrEmptyGrid, w, h)
		}
		if err != nil {
			a.err = err
			a.logbook.Warn("Rejected dimensions %q: %v", value, err)
			return a, nil
		}
		a.gridWidth, a.gridHeight = w, h
		a.err = nil
		a.statusMsg = fmt.Sprintf("%dx%d grid holds %d letters.", w, h, w*h)
		return a, a.focus(stepDirection)

	case stepDirection:
		dir, err := cipher.ParseDirection(value)
		if err != nil {
			a.err = err
			a.logbook.Warn("Rejected direction %q", value)
			return a, nil
		}
		a.direction = dir
		a.err = nil
		a.encrypt()
		a.focus(stepResult)
		return a, nil
	}
	return a, nil
}

// encrypt fills the grid from the accepted answers and reads the spiral.
func (a *App) encrypt() {
	g, err := cipher.Fill(a.message, a.gridWidth, a.gridHeight, cipher.WithFiller(a.config.Filler()))
	if err != nil {
		// dimensions were validated by submit
		a.err = err
		return
	}
	a.grid = g
	a.route = cipher.Route(g.Width, g.Height, a.direction)
	a.ciphertext = cipher.Encrypt(g, a.direction)
	a.run = a.logbook.StartRun()
	a.run.Info("Encrypted %dx%d %s · %d cells", g.Width, g.Height, a.direction, len(a.ciphertext))
	a.statusMsg = fmt.Sprintf("Run %s · read %s.", a.run.ID(), a.direction)
}

// back returns to the previous prompt, keeping what was typed.
func (a *App) back() (tea.Model, tea.Cmd) {
	if a.step == stepMessage {
		return a, tea.Quit
	}
	a.err = nil
	return a, a.focus(a.step - 1)
}

// reset clears the prompts for a new message; dimensions and direction are
// kept as suggestions.
func (a *App) reset() tea.Cmd {
	a.inputs[stepMessage].Reset()
	a.message = ""
	a.grid = nil
	a.route = nil
	a.ciphertext = ""
	a.run = nil
	a.err = nil
	a.statusMsg = "Type the message to encrypt."
	return a.focus(stepMessage)
}

// View renders the current screen.
func (a *App) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ ROUTE CIPHER")

	var body string
	if a.step == stepResult {
		body = a.renderResult()
	} else {
		body = a.renderPrompts()
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, a.renderProgress(), "", body))

	sections := []string{header, box}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter(), a.help.View(a.keys.forStep(a.step)))
	return strings.Join(sections, "\n")
}

func (a *App) renderProgress() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	done := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	todo := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	parts := make([]string, 0, len(stepOrder))
	for _, s := range stepOrder {
		switch {
		case s == a.step:
			parts = append(parts, active.Render(s.FriendlyName()))
		case s < a.step:
			parts = append(parts, done.Render("✓ "+s.FriendlyName()))
		default:
			parts = append(parts, todo.Render(s.FriendlyName()))
		}
	}
	return strings.Join(parts, " → ")
}

func (a *App) renderPrompts() string {
	lines := make([]string, 0, len(a.inputs)+1)
	for i := range a.inputs {
		if step(i) > a.step {
			break
		}
		lines = append(lines, a.inputs[i].View())
	}
	if a.err != nil {
		lines = append(lines, "", errorStyle.Render("⚠ "+a.err.Error()))
	}
	return strings.Join(lines, "\n")
}

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cipherStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))

	// alternating ring colours make the spiral visible
	ringStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#CC66FF")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
	}
)

func (a *App) renderResult() string {
	lines := []string{
		labelStyle.Render(fmt.Sprintf("%dx%d · %s", a.gridWidth, a.gridHeight, a.direction)),
		"",
		a.renderGrid(),
		"",
		labelStyle.Render("Ciphertext"),
		cipherStyle.Width(max(20, a.width-6)).Render(a.ciphertext),
	}
	if a.err != nil {
		lines = append(lines, "", errorStyle.Render("⚠ "+a.err.Error()))
	}
	return strings.Join(lines, "\n")
}

// renderGrid draws the letters next to their reading order.
func (a *App) renderGrid() string {
	g := a.grid
	if g == nil {
		return ""
	}
	if g.Len() > maxRenderedCells {
		return mutedStyle.Render(fmt.Sprintf("(%dx%d grid is too large to draw)", g.Width, g.Height))
	}
	order := make([][]int, g.Height)
	for r := range order {
		order[r] = make([]int, g.Width)
	}
	for i, p := range a.route {
		order[p.Row][p.Col] = i + 1
	}
	cellWidth := len(fmt.Sprint(g.Len()))

	letterRows := make([]string, g.Height)
	orderRows := make([]string, g.Height)
	for r := 0; r < g.Height; r++ {
		letters := make([]string, g.Width)
		positions := make([]string, g.Width)
		for c := 0; c < g.Width; c++ {
			style := ringStyles[ringOf(g, r, c)%len(ringStyles)]
			letters[c] = style.Render(string(g.At(r, c)))
			positions[c] = style.Render(fmt.Sprintf("%*d", cellWidth, order[r][c]))
		}
		letterRows[r] = strings.Join(letters, " ")
		orderRows[r] = strings.Join(positions, " ")
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		panel.Render(strings.Join(letterRows, "\n")),
		"  ",
		panel.Render(strings.Join(orderRows, "\n")),
	)
}

// ringOf returns which spiral ring (0 = outermost) holds (r, c).
func ringOf(g *cipher.Grid, r, c int) int {
	return min(r, c, g.Height-1-r, g.Width-1-c)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s · %d entries", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderFooter() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
}

// Ciphertext returns the result of the last encryption, if any.
func (a *App) Ciphertext() string {
	return a.ciphertext
}
