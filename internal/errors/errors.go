// Package errors provides sentinel errors and error types for the checkers engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidConfig indicates invalid configuration values such as an odd
	// or too small board size.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidAction indicates a move or capture chain that is not legal
	// in the current position.
	ErrInvalidAction = errors.New("invalid action")

	// ErrGameOver indicates an action was submitted to a finished game.
	ErrGameOver = errors.New("game over")

	// ErrInvariant indicates engine state and its caller have desynchronised.
	ErrInvariant = errors.New("invariant violation")

	// ErrInvalidPosition indicates a malformed position string.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrProtocol indicates an undecodable or unexpected peer message.
	ErrProtocol = errors.New("protocol error")

	// ErrTranscript indicates game transcript text that cannot be read.
	ErrTranscript = errors.New("malformed transcript")

	// ErrNotFound indicates a lookup of a game that does not exist.
	ErrNotFound = errors.New("not found")
)

// ActionError wraps errors with turn context, including the side to move,
// the turn number and the rejected action. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type ActionError struct {
	Err    error  // The underlying error
	Colour string // Side that attempted the action
	Turn   int    // 1-based turn number (0 if not applicable)
	Action string // Notation of the rejected action
	Reason string // Why the action was rejected
}

// Error returns a formatted error message including all available context.
func (e *ActionError) Error() string {
	var parts []string

	if e.Colour != "" {
		parts = append(parts, e.Colour)
	}
	if e.Turn > 0 {
		parts = append(parts, fmt.Sprintf("turn %d", e.Turn))
	}
	if e.Action != "" {
		parts = append(parts, fmt.Sprintf("action %q", e.Action))
	}

	context := strings.Join(parts, ", ")
	msg := "action rejected"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if context == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", context, msg)
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the ActionError wrapper.
func (e *ActionError) Unwrap() error {
	return e.Err
}

// PositionError represents a position-string parsing error with the
// offending field.
type PositionError struct {
	Err      error  // The underlying error
	Field    string // Field of the position string being parsed
	Got      string // What was found
	Expected string // What was expected
}

// Error returns a formatted error message with field and context.
func (e *PositionError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %q", e.Expected, e.Got))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "position error"
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
// It re-exports the standard library function so callers need only one
// errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
