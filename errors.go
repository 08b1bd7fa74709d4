package earlyrepair

import (
	"errors"
	"fmt"
)

// MalformedInputError is returned when a sample contains a byte
// sequence the configured encoding can't represent; it is surfaced to
// the caller and never recovered from locally (§7).
type MalformedInputError struct {
	Sample string
	Offset int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input in sample %q at offset %d", e.Sample, e.Offset)
}

// NoParseError means the EC-Earley engine produced no finished start
// state within the current penalty cap (§4.3, §7). The repair loop
// treats it as an oracle-failed outcome and proceeds to relearn.
type NoParseError struct {
	Input int // length of the broken input that failed to parse
}

func (e *NoParseError) Error() string {
	return fmt.Sprintf("no parse found (input length %d)", e.Input)
}

// ParseTimeoutError means the wall-clock deadline elapsed before chart
// building finished. The engine retries with a halved penalty cap
// before surfacing this (§4.3, §7).
type ParseTimeoutError struct {
	Deadline string
}

func (e *ParseTimeoutError) Error() string {
	return fmt.Sprintf("parse timed out (deadline %s)", e.Deadline)
}

// OracleError wraps a failure to hand the candidate to the oracle or to
// invoke it at all; a plain non-zero exit is an ordinary rejection and
// carries no error. The repair loop treats an OracleError identically
// to a rejection (§7).
type OracleError struct {
	Candidate string
	Cause     error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle rejected %q: %v", e.Candidate, e.Cause)
}

func (e *OracleError) Unwrap() error { return e.Cause }

// OracleTimeoutError means the oracle process did not return before
// its own deadline; treated identically to rejection (§7).
type OracleTimeoutError struct {
	Candidate string
}

func (e *OracleTimeoutError) Error() string {
	return fmt.Sprintf("oracle timed out validating %q", e.Candidate)
}

// CacheCorruptionError means a loaded grammar cache failed the
// string-only invariant check; the core aborts rather than silently
// continuing with a possibly-invalid grammar (§6, §7).
type CacheCorruptionError struct {
	Path   string
	Reason string
}

func (e *CacheCorruptionError) Error() string {
	return fmt.Sprintf("corrupt grammar cache %q: %s", e.Path, e.Reason)
}

// InvalidGrammarError means a Grammar failed NormalizeGrammar's
// string-only invariant check (§4.4 step 2) before ever reaching the
// EC-Earley engine — distinct from CacheCorruptionError, which is
// specifically about a cache file loaded from disk.
type InvalidGrammarError struct {
	Reason string
}

func (e *InvalidGrammarError) Error() string {
	return fmt.Sprintf("invalid grammar: %s", e.Reason)
}

// IsNoParse reports whether err is (or wraps) a NoParseError.
func IsNoParse(err error) bool {
	var e *NoParseError
	return errors.As(err, &e)
}

// IsParseTimeout reports whether err is (or wraps) a ParseTimeoutError.
func IsParseTimeout(err error) bool {
	var e *ParseTimeoutError
	return errors.As(err, &e)
}

// IsOracleFailure reports whether err should be treated as an oracle
// rejection by the repair loop: an explicit OracleError/OracleTimeoutError,
// or a NoParseError (per §7's propagation policy).
func IsOracleFailure(err error) bool {
	var oe *OracleError
	var ote *OracleTimeoutError
	return errors.As(err, &oe) || errors.As(err, &ote) || IsNoParse(err)
}

// IsCacheCorruption reports whether err is (or wraps) a CacheCorruptionError.
func IsCacheCorruption(err error) bool {
	var e *CacheCorruptionError
	return errors.As(err, &e)
}

// IsInvalidGrammar reports whether err is (or wraps) an InvalidGrammarError.
func IsInvalidGrammar(err error) bool {
	var e *InvalidGrammarError
	return errors.As(err, &e)
}
