package etlerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrDataIntegrity = errors.New("data integrity error")
	ErrIO            = errors.New("io error")
)

// Exit codes returned by the CLI for each error class.
const (
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitDataIntegrity = 3
	ExitIO            = 4
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker. The marker should be one of the exported sentinel errors
// above; nil falls back to ErrIO.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Configuration is shorthand for Wrap(ErrConfiguration, ...) without a cause.
func Configuration(stage, operation, message string) error {
	return Wrap(ErrConfiguration, stage, operation, message, nil)
}

// RowError reports a malformed or unresolvable row.
type RowError struct {
	File   string
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %s", ErrDataIntegrity, e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrDataIntegrity, e.File, e.Reason)
}

// Is lets errors.Is(err, ErrDataIntegrity) match row errors.
func (e *RowError) Is(target error) bool {
	return target == ErrDataIntegrity
}

// Row builds a RowError with a formatted reason.
func Row(file string, line int, format string, args ...any) error {
	return &RowError{File: file, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	case errors.Is(err, ErrDataIntegrity):
		return ExitDataIntegrity
	case errors.Is(err, ErrIO):
		return ExitIO
	default:
		return ExitFailure
	}
}

// Kind returns a short label for the error class, used in logs and the ledger.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrDataIntegrity):
		return "data_integrity"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
