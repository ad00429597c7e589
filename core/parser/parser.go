package parser

import (
	"fmt"
	"strings"
)

// SyntaxError is fatal to the current input unit only; the session continues
// with the next line.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Msg
}

func syntaxErrorf(format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

// Block is one logical input: a single line or an accumulated multi-line
// construct joined by the collector. Heredoc carries the collected body lines
// when the text contains a heredoc redirect.
type Block struct {
	Text    string
	Heredoc []string
}

// Parse turns one logical input without a heredoc body into a command node.
func Parse(text string) (Node, error) {
	return ParseBlock(Block{Text: text})
}

// ParseBlock turns one logical input into a command node or fails with a
// *SyntaxError naming the missing or unexpected token.
func ParseBlock(b Block) (Node, error) {
	p := &parser{heredoc: b.Heredoc}
	return p.parse(b.Text)
}

type parser struct {
	heredoc []string
}

func (p *parser) parse(input string) (Node, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, syntaxErrorf("unexpected end of input")
	}

	// The background marker binds loosest: everything before it is the job.
	if rest, ok := trailingAmpersand(input); ok {
		inner, err := p.parse(rest)
		if err != nil {
			return nil, err
		}
		return &Background{Inner: inner, Raw: rest}, nil
	}

	// Control keywords are only recognized in command position.
	switch {
	case hasKeywordPrefix(input, "if"):
		return p.parseIf(input)
	case hasKeywordPrefix(input, "while"):
		return p.parseWhile(input)
	case hasKeywordPrefix(input, "for"):
		return p.parseFor(input)
	case hasKeywordPrefix(input, "function"):
		return p.parseFunction(input)
	}

	if parts := splitTop(input, ';'); len(parts) > 1 {
		members := make([]Node, 0, len(parts))
		for _, part := range parts {
			m, err := p.parse(part)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		return &Sequence{Members: members}, nil
	}

	if parts := splitTop(input, '|'); len(parts) > 1 {
		return p.parsePipeline(parts)
	}

	if pos, _ := findLastRedirect(input); pos >= 0 {
		return p.parseRedirected(input)
	}

	return p.parseSimple(input)
}

func (p *parser) parseSimple(input string) (Node, error) {
	args, err := Fields(input)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, syntaxErrorf("unexpected end of input")
	}
	return &Simple{Args: args}, nil
}

// parsePipeline builds a pipeline from pre-split stages. A redirect on the
// final stage applies to the pipeline as a whole; redirects on earlier stages
// stay attached to their own stage.
func (p *parser) parsePipeline(parts []string) (Node, error) {
	last := parts[len(parts)-1]
	var tail *RedirectSpec

	if pos, op := findLastRedirect(last); pos >= 0 && isOutRedirect(op) {
		cmd, spec, err := p.splitRedirect(last, pos, op)
		if err != nil {
			return nil, err
		}
		parts[len(parts)-1] = cmd
		tail = &spec
	}

	stages := make([]Node, 0, len(parts))
	for _, part := range parts {
		var (
			stage Node
			err   error
		)
		if pos, _ := findLastRedirect(part); pos >= 0 {
			stage, err = p.parseRedirected(part)
		} else {
			stage, err = p.parseSimple(part)
		}
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}

	var node Node = &Pipeline{Stages: stages}
	if tail != nil {
		node = &Redirected{Inner: node, Spec: *tail}
	}
	return node, nil
}

func isOutRedirect(op string) bool { return op == ">" || op == ">>" }

// parseRedirected splits a segment at its last redirect operator and wraps
// the command in a Redirected node, so chained redirects nest outermost
// last.
func (p *parser) parseRedirected(input string) (Node, error) {
	pos, op := findLastRedirect(input)
	if pos < 0 {
		return p.parseSimple(input)
	}
	cmd, spec, err := p.splitRedirect(input, pos, op)
	if err != nil {
		return nil, err
	}

	var inner Node
	if rp, _ := findLastRedirect(cmd); rp >= 0 {
		inner, err = p.parseRedirected(cmd)
	} else {
		inner, err = p.parseSimple(cmd)
	}
	if err != nil {
		return nil, err
	}
	return &Redirected{Inner: inner, Spec: spec}, nil
}

func (p *parser) splitRedirect(input string, pos int, op string) (string, RedirectSpec, error) {
	cmd := strings.TrimSpace(input[:pos])
	rest := strings.TrimSpace(input[pos+len(op):])
	if cmd == "" {
		return "", RedirectSpec{}, syntaxErrorf("missing command before %q", op)
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", RedirectSpec{}, syntaxErrorf("missing target after %q", op)
	}
	if len(fields) > 1 {
		return "", RedirectSpec{}, syntaxErrorf("unexpected %q after redirect target", fields[1])
	}
	target := fields[0]

	spec := RedirectSpec{Target: target}
	switch op {
	case ">":
		spec.Kind = RedirectOut
	case ">>":
		spec.Kind = RedirectAppend
	case "<":
		spec.Kind = RedirectIn
	case "<<":
		spec.Kind = RedirectHereDoc
		spec.Body = p.heredoc
	case "<<-":
		spec.Kind = RedirectHereDocStrip
		spec.Body = stripCommonTabs(p.heredoc)
	}
	return cmd, spec, nil
}

// stripCommonTabs removes the largest run of leading tabs shared by every
// line. Leading spaces are never stripped.
func stripCommonTabs(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	common := -1
	for _, line := range lines {
		n := 0
		for n < len(line) && line[n] == '\t' {
			n++
		}
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line[common:]
	}
	return out
}

// hasKeywordPrefix reports whether input starts with the keyword as its own
// word.
func hasKeywordPrefix(input, keyword string) bool {
	if !strings.HasPrefix(input, keyword) {
		return false
	}
	rest := input[len(keyword):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// normalize collapses runs of whitespace to single spaces so keyword
// boundaries can be located by plain string search.
func normalize(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

func (p *parser) parseIf(input string) (Node, error) {
	s := normalize(input)

	thenPos := strings.Index(s, " then ")
	if thenPos < 0 {
		return nil, syntaxErrorf("if: expected 'then'")
	}
	fiPos := strings.LastIndex(s, " fi")
	if fiPos < 0 || fiPos < thenPos {
		return nil, syntaxErrorf("if: expected 'fi'")
	}

	condStr := trimSemis(s[len("if "):thenPos])
	thenStr := s[thenPos+len(" then ") : fiPos]
	var elseStr string
	if elsePos := strings.Index(thenStr, " else "); elsePos >= 0 {
		elseStr = thenStr[elsePos+len(" else "):]
		thenStr = thenStr[:elsePos]
	}

	cond, err := p.parse(condStr)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBody(thenStr)
	if err != nil {
		return nil, err
	}
	node := &Conditional{Cond: cond, Then: then}
	if elseStr != "" {
		if node.Else, err = p.parseBody(elseStr); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *parser) parseWhile(input string) (Node, error) {
	s := normalize(input)

	doPos := strings.Index(s, " do ")
	if doPos < 0 {
		return nil, syntaxErrorf("while: expected 'do'")
	}
	donePos := strings.LastIndex(s, " done")
	if donePos < 0 || donePos < doPos {
		return nil, syntaxErrorf("while: expected 'done'")
	}

	cond, err := p.parse(trimSemis(s[len("while "):doPos]))
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody(s[doPos+len(" do ") : donePos])
	if err != nil {
		return nil, err
	}
	return &WhileLoop{Cond: cond, Body: body}, nil
}

func (p *parser) parseFor(input string) (Node, error) {
	s := normalize(input)

	inPos := strings.Index(s, " in ")
	if inPos < 0 {
		return nil, syntaxErrorf("for: expected 'in'")
	}
	doPos := strings.Index(s, " do ")
	if doPos < 0 || doPos < inPos {
		return nil, syntaxErrorf("for: expected 'do'")
	}
	donePos := strings.LastIndex(s, " done")
	if donePos < 0 || donePos < doPos {
		return nil, syntaxErrorf("for: expected 'done'")
	}

	variable := strings.TrimSpace(s[len("for "):inPos])
	if variable == "" || strings.ContainsAny(variable, " ;") {
		return nil, syntaxErrorf("for: invalid loop variable %q", variable)
	}
	items, err := Fields(trimSemis(s[inPos+len(" in ") : doPos]))
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody(s[doPos+len(" do ") : donePos])
	if err != nil {
		return nil, err
	}
	return &ForLoop{Variable: variable, Items: items, Body: body}, nil
}

func (p *parser) parseFunction(input string) (Node, error) {
	s := normalize(input)

	open := strings.Index(s, "(")
	if open < 0 {
		return nil, syntaxErrorf("function: expected '('")
	}
	closeParen := strings.Index(s, ")")
	if closeParen != open+1 {
		return nil, syntaxErrorf("function: parameters are not supported")
	}
	openBrace := strings.Index(s, "{")
	if openBrace < 0 {
		return nil, syntaxErrorf("function: expected '{'")
	}
	closeBrace := strings.LastIndex(s, "}")
	if closeBrace < 0 || closeBrace < openBrace {
		return nil, syntaxErrorf("function: expected '}'")
	}

	name := strings.TrimSpace(s[len("function "):open])
	if name == "" || strings.ContainsAny(name, " ;|&<>") {
		return nil, syntaxErrorf("function: invalid name %q", name)
	}
	body, err := p.parseBody(s[openBrace+1 : closeBrace])
	if err != nil {
		return nil, err
	}
	return &FunctionDef{Name: name, Body: body}, nil
}

// parseBody parses a control-structure body, wrapping multiple statements in
// a Compound. Bodies may not open another control block; a member that does
// fails with a syntax error when its terminator is missing.
func (p *parser) parseBody(input string) (Node, error) {
	parts := splitTop(strings.TrimSpace(input), ';')
	if len(parts) == 0 {
		return nil, syntaxErrorf("empty body")
	}
	if len(parts) == 1 {
		return p.parse(parts[0])
	}
	members := make([]Node, 0, len(parts))
	for _, part := range parts {
		m, err := p.parse(part)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return &Compound{Members: members}, nil
}

func trimSemis(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ";"))
}
