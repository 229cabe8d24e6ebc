// Command mftcat-tui is an interactive wizard around mftcat: pick an $MFT
// image, choose output formats and options, then watch the run complete.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shubham/mftcat/internal/diag"
	"github.com/shubham/mftcat/internal/ntfscat"
	"github.com/shubham/mftcat/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)
)

type State int

const (
	StateWelcome State = iota
	StateEnterPath
	StateSelectFormats
	StateSelectOptions
	StateSelectOutDir
	StateConfirm
	StateRunning
	StateResults
)

// OutputFormat is one toggleable report the wizard can enable.
type OutputFormat struct {
	Name    string
	Suffix  string
	Enabled bool
}

// RunOption is one toggleable boolean flag the wizard can enable.
type RunOption struct {
	Name    string
	Enabled bool
}

type model struct {
	state  State
	width  int
	height int
	err    error

	pathInput textinput.Model
	inputPath string

	formatCursor int
	formats      []OutputFormat

	optionCursor int
	options      []RunOption

	outDirInput textinput.Model
	outDir      string

	spinner   spinner.Model
	statusMsg string

	stats pipeline.Stats
}

type runCompleteMsg struct {
	stats pipeline.Stats
	err   error
}

func initialModel() model {
	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/$MFT"
	pathInput.Focus()
	pathInput.Width = 50

	outDirInput := textinput.New()
	outDirInput.Placeholder = "./mftcat-report"
	outDirInput.SetValue("./mftcat-report")
	outDirInput.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return model{
		state: StateWelcome,
		pathInput: pathInput,
		outDirInput: outDirInput,
		spinner: s,
		formats: []OutputFormat{
			{Name: "CSV analyst report", Suffix: "report.csv", Enabled: true},
			{Name: "Sleuth Kit bodyfile", Suffix: "report.body", Enabled: false},
			{Name: "log2timeline CSV", Suffix: "report.l2t.csv", Enabled: false},
			{Name: "JSON lines", Suffix: "report.jsonl", Enabled: false},
		},
		options: []RunOption{
			{Name: "Compute MD5/SHA-256/SHA-512/CRC-32 per record", Enabled: false},
			{Name: "Bodyfile: use resolved full path", Enabled: false},
			{Name: "Bodyfile: use STANDARD_INFORMATION timestamps", Enabled: false},
		},
		outDir: "./mftcat-report",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != StateRunning {
				return m, tea.Quit
			}
		case "esc":
			if m.state > StateWelcome && m.state != StateRunning {
				m.state--
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case runCompleteMsg:
		m.state = StateResults
		m.stats = msg.stats
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.state {
	case StateWelcome:
		return m.updateWelcome(msg)
	case StateEnterPath:
		return m.updateEnterPath(msg)
	case StateSelectFormats:
		return m.updateSelectFormats(msg)
	case StateSelectOptions:
		return m.updateSelectOptions(msg)
	case StateSelectOutDir:
		return m.updateSelectOutDir(msg)
	case StateConfirm:
		return m.updateConfirm(msg)
	case StateRunning:
		return m.updateRunning(msg)
	case StateResults:
		return m.updateResults(msg)
	}

	return m, nil
}

func (m model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		m.state = StateEnterPath
	}
	return m, nil
}

func (m model) updateEnterPath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		path := m.pathInput.Value()
		if path != "" {
			if strings.HasPrefix(path, "~") {
				home, _ := os.UserHomeDir()
				path = filepath.Join(home, path[1:])
			}
			m.inputPath = path
			m.state = StateSelectFormats
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m model) updateSelectFormats(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.formatCursor > 0 {
				m.formatCursor--
			}
		case "down", "j":
			if m.formatCursor < len(m.formats)-1 {
				m.formatCursor++
			}
		case " ":
			m.formats[m.formatCursor].Enabled = !m.formats[m.formatCursor].Enabled
		case "enter":
			m.state = StateSelectOptions
		}
	}
	return m, nil
}

func (m model) updateSelectOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.optionCursor > 0 {
				m.optionCursor--
			}
		case "down", "j":
			if m.optionCursor < len(m.options)-1 {
				m.optionCursor++
			}
		case " ":
			m.options[m.optionCursor].Enabled = !m.options[m.optionCursor].Enabled
		case "enter":
			m.state = StateSelectOutDir
		}
	}
	return m, nil
}

func (m model) updateSelectOutDir(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		path := m.outDirInput.Value()
		if path != "" {
			m.outDir = path
			m.state = StateConfirm
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.outDirInput, cmd = m.outDirInput.Update(msg)
	return m, cmd
}

func (m model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			m.state = StateRunning
			m.statusMsg = "Decoding $MFT..."
			return m, tea.Batch(m.spinner.Tick, m.runPipeline())
		case "n", "N":
			m.state = StateEnterPath
		}
	}
	return m, nil
}

func (m model) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "q":
			return m, tea.Quit
		case "r":
			return initialModel(), nil
		}
	}
	return m, nil
}

func (m model) enabledFormat(name string) bool {
	for _, f := range m.formats {
		if f.Name == name {
			return f.Enabled
		}
	}
	return false
}

func (m model) enabledOption(name string) bool {
	for _, o := range m.options {
		if o.Name == name {
			return o.Enabled
		}
	}
	return false
}

func (m model) runPipeline() tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(m.outDir, 0755); err != nil {
			return runCompleteMsg{err: err}
		}

		var opts []ntfscat.Option
		if m.enabledFormat("CSV analyst report") {
			opts = append(opts, ntfscat.WithCSVOutput(filepath.Join(m.outDir, "report.csv")))
		}
		if m.enabledFormat("Sleuth Kit bodyfile") {
			opts = append(opts, ntfscat.WithBodyfileOutput(filepath.Join(m.outDir, "report.body")))
		}
		if m.enabledFormat("log2timeline CSV") {
			opts = append(opts, ntfscat.WithL2TOutput(filepath.Join(m.outDir, "report.l2t.csv")))
		}
		if m.enabledFormat("JSON lines") {
			opts = append(opts, ntfscat.WithJSONOutput(filepath.Join(m.outDir, "report.jsonl")))
		}
		opts = append(opts,
			ntfscat.WithComputeHashes(m.enabledOption("Compute MD5/SHA-256/SHA-512/CRC-32 per record")),
			ntfscat.WithBodyfileFullPath(m.enabledOption("Bodyfile: use resolved full path")),
			ntfscat.WithBodyfileStdInfo(m.enabledOption("Bodyfile: use STANDARD_INFORMATION timestamps")),
			ntfscat.WithWorkers(4),
			ntfscat.WithLogger(diag.NewLogger(os.Stderr, false)),
		)

		stats, err := ntfscat.Run(context.Background(), m.inputPath, opts...)
		return runCompleteMsg{stats: stats, err: err}
	}
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" mftcat wizard "))
	s.WriteString("\n\n")

	switch m.state {
	case StateWelcome:
		s.WriteString(m.viewWelcome())
	case StateEnterPath:
		s.WriteString(m.viewEnterPath())
	case StateSelectFormats:
		s.WriteString(m.viewSelectFormats())
	case StateSelectOptions:
		s.WriteString(m.viewSelectOptions())
	case StateSelectOutDir:
		s.WriteString(m.viewSelectOutDir())
	case StateConfirm:
		s.WriteString(m.viewConfirm())
	case StateRunning:
		s.WriteString(m.viewRunning())
	case StateResults:
		s.WriteString(m.viewResults())
	}

	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press q to quit • esc to go back"))

	return s.String()
}

func (m model) viewWelcome() string {
	var s strings.Builder
	s.WriteString(subtitleStyle.Render("Welcome to mftcat"))
	s.WriteString("\n\n")
	s.WriteString("This wizard parses a raw NTFS $MFT image and writes:\n")
	s.WriteString("  • a CSV analyst report\n")
	s.WriteString("  • a Sleuth Kit bodyfile\n")
	s.WriteString("  • a log2timeline CSV\n")
	s.WriteString("  • JSON lines\n\n")
	s.WriteString("The input file is opened read-only.\n\n")
	s.WriteString(selectedStyle.Render("Press Enter to continue..."))
	return s.String()
}

func (m model) viewEnterPath() string {
	var s strings.Builder
	s.WriteString(subtitleStyle.Render("Enter $MFT Path"))
	s.WriteString("\n\n")
	s.WriteString(m.pathInput.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press Enter to continue"))
	return s.String()
}

func (m model) viewSelectFormats() string {
	var s strings.Builder
	s.WriteString(subtitleStyle.Render("Select Output Formats"))
	s.WriteString("\n\n")
	for i, f := range m.formats {
		cursor := "  "
		if i == m.formatCursor {
			cursor = "> "
		}
		checkbox := "[ ]"
		if f.Enabled {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, checkbox, f.Name)
		if i == m.formatCursor {
			s.WriteString(selectedStyle.Render(line))
		} else {
			s.WriteString(line)
		}
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓ to move • Space to toggle • Enter to continue"))
	return s.String()
}

func (m model) viewSelectOptions() string {
	var s strings.Builder
	s.WriteString(subtitleStyle.Render("Select Options"))
	s.WriteString("\n\n")
	for i, o := range m.options {
		cursor := "  "
		if i == m.optionCursor {
			cursor = "> "
		}
		checkbox := "[ ]"
		if o.Enabled {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, checkbox, o.Name)
		if i == m.optionCursor {
			s.WriteString(selectedStyle.Render(line))
		} else {
			s.WriteString(line)
		}
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓ to move • Space to toggle • Enter to continue"))
	return s.String()
}

func (m model) viewSelectOutDir() string {
	var s strings.Builder
	s.WriteString(subtitleStyle.Render("Select Output Directory"))
	s.WriteString("\n\n")
	s.WriteString(m.outDirInput.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press Enter to continue"))
	return s.String()
}

func (m model) viewConfirm() string {
	var s strings.Builder
	s.WriteString(subtitleStyle.Render("Confirm Run"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("  Input:   %s\n", m.inputPath))
	s.WriteString(fmt.Sprintf("  Output:  %s\n", m.outDir))
	var enabled []string
	for _, f := range m.formats {
		if f.Enabled {
			enabled = append(enabled, f.Name)
		}
	}
	s.WriteString(fmt.Sprintf("  Formats: %s\n", strings.Join(enabled, ", ")))
	s.WriteString("\n")
	s.WriteString(selectedStyle.Render("Press Y to start, N to go back"))
	return s.String()
}

func (m model) viewRunning() string {
	var s strings.Builder
	s.WriteString(m.spinner.View())
	s.WriteString(" ")
	s.WriteString(m.statusMsg)
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Please wait..."))
	return s.String()
}

func (m model) viewResults() string {
	var s strings.Builder
	if m.err != nil {
		s.WriteString(errorStyle.Render("Run Failed"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	} else {
		s.WriteString(successStyle.Render("Run Complete"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Decoded %d records.\n", m.stats.RecordsDecoded))
		s.WriteString(fmt.Sprintf("Reports written to: %s\n", m.outDir))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Press R to run again • Q to quit"))
	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
