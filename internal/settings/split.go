package settings

import (
	"fmt"
	"strings"
	"unicode"
)

type pair struct {
	name  string
	value string
}

// split breaks settings text into name=value pairs. Whitespace separates
// pairs except inside quotes or brackets, and next to '='.
func split(text string) ([]pair, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	pairs := make([]pair, 0, len(tokens))
	for _, tok := range tokens {
		eq := topLevelEquals(tok)
		if eq < 0 {
			return nil, fmt.Errorf("expected name=value, got '%s'", tok)
		}
		name := strings.TrimSpace(tok[:eq])
		value := strings.TrimSpace(tok[eq+1:])
		if name == "" || value == "" {
			return nil, fmt.Errorf("expected name=value, got '%s'", tok)
		}
		pairs = append(pairs, pair{name: name, value: value})
	}
	return pairs, nil
}

func tokenize(text string) ([]string, error) {
	var (
		tokens []string
		cur    strings.Builder
		depth  int
		quote  bool
		escape bool
	)
	runes := []rune(text)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i, r := range runes {
		if quote {
			cur.WriteRune(r)
			switch {
			case escape:
				escape = false
			case r == '\\':
				escape = true
			case r == '"':
				quote = false
			}
			continue
		}

		switch {
		case r == '"':
			quote = true
		case r == '[' || r == '{' || r == '(':
			depth++
		case r == ']' || r == '}' || r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced '%c' at offset %d", r, i)
			}
		case unicode.IsSpace(r) && depth == 0:
			if nextToEquals(runes, i) {
				continue
			}
			flush()
			continue
		}
		cur.WriteRune(r)
	}

	if quote {
		return nil, fmt.Errorf("unterminated string")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unclosed bracket")
	}
	flush()
	return tokens, nil
}

// nextToEquals reports whether the whitespace run containing runes[i] borders
// an '=' on either side.
func nextToEquals(runes []rune, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if !unicode.IsSpace(runes[j]) {
			if runes[j] == '=' {
				return true
			}
			break
		}
	}
	for j := i + 1; j < len(runes); j++ {
		if !unicode.IsSpace(runes[j]) {
			return runes[j] == '='
		}
	}
	return false
}

// topLevelEquals returns the index of the first '=' outside quotes and
// brackets, or -1.
func topLevelEquals(tok string) int {
	depth := 0
	quote, escape := false, false
	for i, r := range tok {
		if quote {
			switch {
			case escape:
				escape = false
			case r == '\\':
				escape = true
			case r == '"':
				quote = false
			}
			continue
		}
		switch r {
		case '"':
			quote = true
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case '=':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
