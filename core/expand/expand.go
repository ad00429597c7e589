// Package expand rewrites command text at evaluation time: command
// substitutions first, innermost out, then variable references.
package expand

import (
	"strings"

	"minsh/core/env"
)

// Runner executes one substituted command and returns its captured output.
type Runner func(command string) (string, error)

// Expander binds an environment and a command runner. The runner may be nil,
// in which case substitutions expand to the empty string.
type Expander struct {
	env *env.Env
	run Runner
}

func New(e *env.Env, run Runner) *Expander {
	return &Expander{env: e, run: run}
}

// Expand rewrites one piece of text. Substitutions happen before variable
// references so that inner commands see their text unexpanded.
func (x *Expander) Expand(s string) string {
	return x.expandVars(x.expandSubst(s))
}

// ExpandAll expands every element of args in place order.
func (x *Expander) ExpandAll(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = x.Expand(a)
	}
	return out
}

// expandSubst replaces each $(...) with the output of running its command,
// innermost first. A failed command contributes the empty string; a single
// trailing newline is trimmed from successful output. Unclosed substitutions
// are left verbatim.
func (x *Expander) expandSubst(s string) string {
	for {
		start, end, ok := innermostSubst(s)
		if !ok {
			return s
		}
		var out string
		if x.run != nil {
			if res, err := x.run(strings.TrimSpace(s[start+2 : end])); err == nil {
				out = strings.TrimSuffix(res, "\n")
			}
		}
		s = s[:start] + out + s[end+1:]
	}
}

// innermostSubst locates a $(...) pair whose body contains no further
// substitution, returning the index of '$' and of the matching ')'.
func innermostSubst(s string) (start, end int, ok bool) {
	var stack []int
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '(':
			stack = append(stack, i)
			i++
		case s[i] == ')' && len(stack) > 0:
			return stack[len(stack)-1], i, true
		}
	}
	return 0, 0, false
}

// expandVars replaces $NAME and ${NAME} references with their values,
// unknown names with the empty string. Names are runs of letters, digits,
// and underscores and may start with a digit. A dollar sign that opens no
// valid reference stays literal, as do ${} and an unterminated ${NAME.
func (x *Expander) expandVars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+1 >= len(s) {
			b.WriteByte('$')
			break
		}
		if s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				break
			}
			name := s[i+2 : i+2+end]
			width := len(name) + 3
			if !validName(name) {
				b.WriteString(s[i : i+width])
			} else {
				b.WriteString(x.env.Get(name))
			}
			i += width
			continue
		}
		j := i + 1
		for j < len(s) && isNameByte(s[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte('$')
			i++
			continue
		}
		b.WriteString(x.env.Get(s[i+1 : j]))
		i = j
	}
	return b.String()
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return false
		}
	}
	return true
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
