package style

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Spinner is the minimal progress indicator used while files are loaded and
// statistics computed.
type Spinner interface {
	SetSuffix(suffix string)
	Start()
	Stop()
}

// NewSpinner returns a terminal spinner, or a line-oriented spinner when
// running under tests so output stays readable in captured logs.
func NewSpinner(w io.Writer) Spinner {
	if os.Getenv("TALLY_TEST") == "true" {
		return newLineSpinner(w)
	}

	return &TerminalSpinner{
		spinner: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w)),
	}
}

// TerminalSpinner wraps the briandowns spinner with the Spinner interface.
type TerminalSpinner struct {
	spinner *spinner.Spinner
}

func (s *TerminalSpinner) SetSuffix(suffix string) {
	s.spinner.Suffix = suffix
}

func (s *TerminalSpinner) Start() {
	s.spinner.Start()
}

func (s *TerminalSpinner) Stop() {
	s.spinner.Stop()
}

// LineSpinner emits each update on its own line instead of clearing and
// redrawing, which keeps test output and non-TTY logs legible.
type LineSpinner struct {
	mu       sync.Mutex
	writer   io.Writer
	colorize func(a ...interface{}) string
	suffix   string
	active   bool
}

func newLineSpinner(w io.Writer) *LineSpinner {
	return &LineSpinner{
		writer:   w,
		colorize: color.New(color.FgWhite).SprintFunc(),
	}
}

func (s *LineSpinner) SetSuffix(suffix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suffix = suffix
}

func (s *LineSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true

	fmt.Fprintln(s.writer, s.colorize("..."+s.suffix))
}

func (s *LineSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}
