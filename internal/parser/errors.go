package parser

import (
	"fmt"

	"github.com/rockysnow7/mlb-transformer/pkg/models"
)

// UnexpectedTokenError reports a literal match that failed: a marker was
// missing, misordered, or a value had the wrong shape. Position is the
// zero-based index of the offending token in the stream.
type UnexpectedTokenError struct {
	Expected string
	Found    string
	Position int
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("expected %s but found %q at token %d", e.Expected, e.Found, e.Position)
}

// UnexpectedEndOfStreamError reports that a builder needed a token but
// the stream was exhausted.
type UnexpectedEndOfStreamError struct {
	Position int
}

func (e *UnexpectedEndOfStreamError) Error() string {
	return fmt.Sprintf("unexpected end of stream at token %d", e.Position)
}

// TrailingTokensError reports tokens left over after [GAME_END].
type TrailingTokensError struct {
	Next     string
	Position int
}

func (e *TrailingTokensError) Error() string {
	return fmt.Sprintf("trailing tokens after [GAME_END]: %q at token %d", e.Next, e.Position)
}

// UnknownPlayTypeError reports play-type text that resolves to nothing
// in the enumeration.
type UnknownPlayTypeError struct {
	Text string
}

func (e *UnknownPlayTypeError) Error() string {
	return fmt.Sprintf("unknown play type %q", e.Text)
}

// UnsupportedPlayTypeError reports a recognized play type with no schema
// entry. The schema table is meant to be exhaustive, so hitting this is
// a bug in the table, not in the input.
type UnsupportedPlayTypeError struct {
	PlayType models.PlayType
}

func (e *UnsupportedPlayTypeError) Error() string {
	return fmt.Sprintf("play type %s has no schema entry", e.PlayType)
}

// InvalidContextError reports a context section that parsed but violates
// a structural invariant, such as both rosters carrying the same team id.
type InvalidContextError struct {
	Reason string
}

func (e *InvalidContextError) Error() string {
	return fmt.Sprintf("invalid game context: %s", e.Reason)
}
