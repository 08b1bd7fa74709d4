package earlyrepair

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Logger is the repair loop's progress-reporting seam (§4.4, §9's "no
// process-wide state" rule extends to logging: there is no package-
// level logger, every RepairLoop takes one explicitly).
type Logger interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Debug(format string, args ...any)
}

// NopLogger discards everything; the default choice for library
// embedders and tests that don't want console output.
type NopLogger struct{}

func (NopLogger) Info(string, ...any)    {}
func (NopLogger) Success(string, ...any) {}
func (NopLogger) Warn(string, ...any)    {}
func (NopLogger) Debug(string, ...any)   {}

// PtermLogger renders repair-loop progress with colored, leveled
// console sections, replacing the raw "[PROFILE] ..." / "[ATTEMPT ...]"
// prints of the tool this engine's algorithms were distilled from.
type PtermLogger struct{}

func (PtermLogger) Info(format string, args ...any) {
	pterm.Info.Println(fmt.Sprintf(format, args...))
}

func (PtermLogger) Success(format string, args ...any) {
	pterm.Success.Println(fmt.Sprintf(format, args...))
}

func (PtermLogger) Warn(format string, args ...any) {
	pterm.Warning.Println(fmt.Sprintf(format, args...))
}

func (PtermLogger) Debug(format string, args ...any) {
	pterm.Debug.Println(fmt.Sprintf(format, args...))
}
