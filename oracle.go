package earlyrepair

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Oracle is the external accept/reject collaborator (§6). It must be
// side-effect-free with respect to the file system beyond reading the
// file it's handed.
type Oracle interface {
	Validate(ctx context.Context, candidate string) (bool, error)
}

// ProcessOracle invokes an external binary as "<path> <file>", where
// file contains candidate exactly. Exit code 0 means accept, any
// non-zero code means reject; stdout is ignored (§6).
type ProcessOracle struct {
	Path string
}

func NewProcessOracle(path string) *ProcessOracle {
	return &ProcessOracle{Path: path}
}

func (o *ProcessOracle) Validate(ctx context.Context, candidate string) (bool, error) {
	f, err := os.CreateTemp("", "earlyrepair-*.txt")
	if err != nil {
		return false, &OracleError{Candidate: candidate, Cause: err}
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(candidate); err != nil {
		f.Close()
		return false, &OracleError{Candidate: candidate, Cause: err}
	}
	if err := f.Close(); err != nil {
		return false, &OracleError{Candidate: candidate, Cause: err}
	}

	cmd := exec.CommandContext(ctx, o.Path, path)
	err = cmd.Run()
	if err == nil {
		return true, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return false, &OracleTimeoutError{Candidate: candidate}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, &OracleError{Candidate: candidate, Cause: err}
}

// ReadSampleFile reads a sample file per §6: one string per line, a
// blank line denotes the empty string. The engine operates on raw
// bytes throughout (PTA, DFA, and the Earley chart all index by byte,
// not by rune), so lines are split on '\n' with a trailing '\r'
// trimmed for CRLF tolerance; bytes outside valid UTF-8 are passed
// through unchanged rather than dropped — this file's documented
// implementation choice for the "encoding is UTF-8 ... implementation
// choice" clause in §6.
func ReadSampleFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
