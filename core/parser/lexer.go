package parser

import (
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

// Fields splits a command segment into words, respecting single and double
// quotes. Quoting is resolved here; the words carry no quote characters.
// A $( ) span stays one word even when its body contains spaces, so command
// substitutions reach the expander intact.
func Fields(s string) ([]string, error) {
	words, err := shlex.Split(protectSubstitutions(s), true)
	if err != nil {
		return nil, &SyntaxError{Msg: "unexpected end of input while looking for matching quote"}
	}
	for i := range words {
		words[i] = strings.ReplaceAll(words[i], "\x00", " ")
	}
	return words, nil
}

// protectSubstitutions swaps unquoted whitespace inside $( ) for NUL bytes
// that Fields restores after word splitting.
func protectSubstitutions(s string) string {
	var q quoteTracker
	depth := 0
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		q.step(b[i])
		if q.quoted() {
			continue
		}
		switch {
		case b[i] == '$' && i+1 < len(b) && b[i+1] == '(':
			depth++
			i++
		case b[i] == ')' && depth > 0:
			depth--
		case (b[i] == ' ' || b[i] == '\t') && depth > 0:
			b[i] = 0
		}
	}
	return string(b)
}

// quoteTracker follows single/double quote state across a left-to-right scan.
type quoteTracker struct {
	inSingle bool
	inDouble bool
}

func (q *quoteTracker) step(c byte) {
	switch c {
	case '\'':
		if !q.inDouble {
			q.inSingle = !q.inSingle
		}
	case '"':
		if !q.inSingle {
			q.inDouble = !q.inDouble
		}
	}
}

func (q *quoteTracker) quoted() bool { return q.inSingle || q.inDouble }

// splitTop splits s on every unquoted occurrence of sep, trimming whitespace
// and dropping empty segments. Separators inside $( ) are left alone so
// command substitutions survive structural splitting.
func splitTop(s string, sep byte) []string {
	var (
		q     quoteTracker
		depth int
		parts []string
		start int
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		q.step(c)
		if q.quoted() {
			continue
		}
		switch {
		case c == '$' && i+1 < len(s) && s[i+1] == '(':
			depth++
			i++
		case c == ')' && depth > 0:
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])

	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// redirect operators ordered longest first so "<<-" wins over "<<" and "<",
// and ">>" wins over ">".
var redirectOps = []string{"<<-", "<<", ">>", ">", "<"}

// findLastRedirect locates the final unquoted redirect operator in s, so a
// chain like "cmd < a > b" splits at the outermost redirection first.
// Operators inside $( ) belong to the inner command and are skipped.
func findLastRedirect(s string) (int, string) {
	var q quoteTracker
	depth := 0
	pos, op := -1, ""
	for i := 0; i < len(s); i++ {
		q.step(s[i])
		if q.quoted() {
			continue
		}
		switch {
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '(':
			depth++
			i++
			continue
		case s[i] == ')' && depth > 0:
			depth--
			continue
		}
		if depth > 0 {
			continue
		}
		for _, candidate := range redirectOps {
			if strings.HasPrefix(s[i:], candidate) {
				pos, op = i, candidate
				i += len(candidate) - 1
				break
			}
		}
	}
	return pos, op
}

// trailingAmpersand reports whether s ends with an unquoted background
// marker, returning the text with the marker removed.
func trailingAmpersand(s string) (string, bool) {
	t := strings.TrimRight(s, " \t")
	if !strings.HasSuffix(t, "&") {
		return s, false
	}
	// The marker must be outside quotes: verify by scanning.
	var q quoteTracker
	for i := 0; i < len(t)-1; i++ {
		q.step(t[i])
	}
	if q.quoted() {
		return s, false
	}
	return strings.TrimRight(t[:len(t)-1], " \t"), true
}
