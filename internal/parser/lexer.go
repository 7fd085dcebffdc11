package parser

import "strings"

// Lex splits raw transcript text into tokens on runs of whitespace and
// commas. Separators carry no meaning, so they are dropped; tokens are
// returned verbatim and never empty. An empty input yields zero tokens,
// which the game assembler reports as an unexpected end of stream on
// first use.
func Lex(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// isMarker reports whether a token is a bracketed marker like [PLAY] or [out]
func isMarker(token string) bool {
	return len(token) >= 2 && token[0] == '[' && token[len(token)-1] == ']'
}

// isInteger reports whether a token is a plain unsigned decimal number
func isInteger(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isBaseToken reports whether a token denotes a base: a number or the
// literal "home"
func isBaseToken(token string) bool {
	return token == "home" || isInteger(token)
}
