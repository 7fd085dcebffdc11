package parser

import (
	"strconv"
	"strings"

	"github.com/rockysnow7/mlb-transformer/pkg/models"
)

// EndOfStream is the sentinel Peek returns once the token stream is
// exhausted. It can never collide with a real token because the lexer
// never emits empty tokens or tokens containing spaces.
const EndOfStream = "<end of stream>"

// Cursor is a read position over an immutable token slice. It is the
// single piece of mutable state in a parse; every builder consumes
// tokens through it, strictly left to right.
type Cursor struct {
	tokens []string
	pos    int
}

// NewCursor wraps a token slice in a cursor positioned at the start
func NewCursor(tokens []string) *Cursor {
	return &Cursor{tokens: tokens}
}

// AtEnd reports whether any tokens remain
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.tokens)
}

// Pos returns the zero-based index of the next token
func (c *Cursor) Pos() int {
	return c.pos
}

// Peek returns the next token without consuming it, or EndOfStream
func (c *Cursor) Peek() string {
	if c.AtEnd() {
		return EndOfStream
	}
	return c.tokens[c.pos]
}

// next consumes and returns the next token
func (c *Cursor) next() (string, error) {
	if c.AtEnd() {
		return "", &UnexpectedEndOfStreamError{Position: c.pos}
	}
	token := c.tokens[c.pos]
	c.pos++
	return token, nil
}

// Expect consumes the next token iff it equals the given literal
func (c *Cursor) Expect(literal string) error {
	pos := c.pos
	token, err := c.next()
	if err != nil {
		return err
	}
	if token != literal {
		c.pos = pos
		return &UnexpectedTokenError{Expected: strconv.Quote(literal), Found: token, Position: pos}
	}
	return nil
}

// TakeName consumes consecutive tokens that are neither bracketed
// markers nor matched by the stop predicate, joining them with single
// spaces. A nil stop predicate stops only on markers and end of stream.
// The result may be empty; callers that need a non-empty name check it
// themselves.
func (c *Cursor) TakeName(stop func(token string) bool) string {
	var parts []string
	for !c.AtEnd() {
		token := c.tokens[c.pos]
		if isMarker(token) || (stop != nil && stop(token)) {
			break
		}
		parts = append(parts, token)
		c.pos++
	}
	return strings.Join(parts, " ")
}

// TakeInt consumes the next token as a non-negative integer
func (c *Cursor) TakeInt(what string) (int, error) {
	pos := c.pos
	token, err := c.next()
	if err != nil {
		return 0, err
	}
	if !isInteger(token) {
		c.pos = pos
		return 0, &UnexpectedTokenError{Expected: what, Found: token, Position: pos}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		c.pos = pos
		return 0, &UnexpectedTokenError{Expected: what, Found: token, Position: pos}
	}
	return n, nil
}

// TakeBase consumes the next token as a base number. The literal "home"
// normalizes to base 4; numeric tokens must land on a real base.
func (c *Cursor) TakeBase() (int, error) {
	pos := c.pos
	token, err := c.next()
	if err != nil {
		return 0, err
	}
	if token == "home" {
		return models.HomePlate, nil
	}
	if isInteger(token) {
		n, _ := strconv.Atoi(token)
		if n >= 1 && n <= models.HomePlate {
			return n, nil
		}
	}
	c.pos = pos
	return 0, &UnexpectedTokenError{Expected: "base (1-3 or home)", Found: token, Position: pos}
}
