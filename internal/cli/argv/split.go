package argv

import (
	"errors"
	"strings"
	"unicode"
)

// Errors returned by Split.
var (
	ErrEmptyCommand      = errors.New("empty command")
	ErrDanglingEscape    = errors.New("dangling escape at end of command")
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// Split tokenizes one shell-like command string.
//
// Whitespace outside quotes separates tokens. A single active quote
// (' or ") groups characters and is dropped from the output. A backslash
// makes the next character literal and is dropped, inside or outside
// quotes. Quotes do not nest.
func Split(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
		escaped bool
		inToken bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
			inToken = true
		case r == '\\':
			escaped = true
			inToken = true
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if escaped {
		return nil, ErrDanglingEscape
	}
	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyCommand
	}
	return tokens, nil
}
