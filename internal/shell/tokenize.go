package shell

import "unicode"

// Tokenize splits a command line into arguments.
//
// Whitespace separates tokens. Text between matching single or double quotes
// belongs to the current token with the quotes removed, whitespace included.
// An unterminated quote runs to the end of the line. A quoted empty string
// ("" or '') yields an empty token.
func Tokenize(line string) []string {
	var (
		tokens  []string
		current []rune
		quote   rune
		started bool // current holds a token, possibly empty ("")
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current = append(current, r)
			}
		case r == '"' || r == '\'':
			quote = r
			started = true
		case unicode.IsSpace(r):
			if started {
				tokens = append(tokens, string(current))
				current = current[:0]
				started = false
			}
		default:
			current = append(current, r)
			started = true
		}
	}

	if started {
		tokens = append(tokens, string(current))
	}
	return tokens
}
