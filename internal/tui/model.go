package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/descoped/script-utils/internal/logging"
	"github.com/descoped/script-utils/internal/model"
	"github.com/descoped/script-utils/internal/scan"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Result  model.AnalysisResult
	Loading bool
	Err     error

	// What to scan (empty means the default config file list)
	Files []string

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// View Modes
	ShowDiagnostics bool

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Result.Entries to show
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state.
func InitialModel(files []string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Filter paths..."
	ti.CharLimit = 80
	ti.Width = 24

	return AppModel{
		Loading:     true,
		Files:       files,
		InputBuffer: ti,
	}
}

// Init kicks off the config scan in the background.
func (m AppModel) Init() tea.Cmd {
	return InitScanCmd(m.Files)
}

// MsgScanReady indicates that the analysis has completed.
type MsgScanReady model.AnalysisResult

// InitScanCmd runs the resolver off the UI loop. The TUI owns the screen,
// so the resolver logs into the void; its warnings arrive as Diagnostics.
func InitScanCmd(files []string) tea.Cmd {
	return func() tea.Msg {
		r := scan.New(logging.New(io.Discard, false))
		return MsgScanReady(r.Run(files))
	}
}
