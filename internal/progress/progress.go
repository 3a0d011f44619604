package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Spinner shows activity on stderr while a long parse or traversal runs.
// A nil *Spinner is valid and does nothing.
type Spinner struct {
	bar   *progressbar.ProgressBar
	label string
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, label string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &Spinner{bar: bar, label: label}
}

// ForTerminal returns a spinner on stderr, or nil when stderr is not a
// terminal or disabled is set.
func ForTerminal(label string, disabled bool) *Spinner {
	if disabled || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return NewSpinner(os.Stderr, label)
}

// Tick advances the spinner.
func (s *Spinner) Tick() {
	if s == nil {
		return
	}
	_ = s.bar.Add(1)
}

// Finish clears the spinner.
func (s *Spinner) Finish() {
	if s == nil {
		return
	}
	_ = s.bar.Finish()
	_ = s.bar.Clear()
}
