package parser

import "strings"

// Collector accumulates raw input lines until they form one complete logical
// block: a single command, a multi-line control structure, or a heredoc with
// its body. Blank lines and comment lines outside heredocs are discarded.
type Collector struct {
	parts []string
	depth int

	heredocOpen  bool
	heredocStrip bool
	heredocDelim string
	heredocHead  string
	heredocBody  []string
}

func NewCollector() *Collector {
	return &Collector{}
}

// Pending reports whether the collector is waiting for more lines.
func (c *Collector) Pending() bool {
	return c.heredocOpen || c.depth > 0
}

// Prompt returns the prompt appropriate to the current collection state.
func (c *Collector) Prompt() string {
	switch {
	case c.heredocOpen:
		return "heredoc> "
	case c.depth > 0:
		return ">> "
	default:
		return "> "
	}
}

func (c *Collector) Reset() {
	*c = Collector{}
}

// Add feeds one raw line. When the accumulated input forms a complete block
// it is returned with done set; otherwise the collector keeps waiting.
func (c *Collector) Add(line string) (Block, bool) {
	if c.heredocOpen {
		return c.addHeredocLine(line)
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Block{}, false
	}

	if c.depth == 0 {
		if delim, strip, ok := heredocHeader(trimmed); ok {
			c.heredocOpen = true
			c.heredocStrip = strip
			c.heredocDelim = delim
			c.heredocHead = trimmed
			return Block{}, false
		}
		c.depth += blockDepth(trimmed)
		if c.depth > 0 {
			c.parts = append(c.parts, trimmed)
			return Block{}, false
		}
		return Block{Text: trimmed}, true
	}

	c.depth += blockDepth(trimmed)
	c.parts = append(c.parts, trimmed)
	if c.depth > 0 {
		return Block{}, false
	}
	block := Block{Text: joinParts(c.parts)}
	c.Reset()
	return block, true
}

func (c *Collector) addHeredocLine(line string) (Block, bool) {
	probe := strings.TrimRight(line, "\r")
	if c.heredocStrip {
		probe = strings.TrimLeft(probe, "\t")
	}
	if probe == c.heredocDelim {
		block := Block{Text: c.heredocHead, Heredoc: c.heredocBody}
		c.Reset()
		return block, true
	}
	c.heredocBody = append(c.heredocBody, strings.TrimRight(line, "\r"))
	return Block{}, false
}

// heredocHeader extracts the heredoc delimiter from a line containing an
// unquoted heredoc operator.
func heredocHeader(line string) (delim string, strip bool, ok bool) {
	var q quoteTracker
	for i := 0; i < len(line); i++ {
		q.step(line[i])
		if q.quoted() || line[i] != '<' {
			continue
		}
		if i+1 >= len(line) || line[i+1] != '<' {
			continue
		}
		rest := line[i+2:]
		if strings.HasPrefix(rest, "-") {
			strip = true
			rest = rest[1:]
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return "", false, false
		}
		return fields[0], strip, true
	}
	return "", false, false
}

// blockDepth returns the net change in control-structure nesting contributed
// by one line. Opening keywords count only in command position so that
// argument words like "echo done" stay inert.
func blockDepth(line string) int {
	depth := 0
	cmdPos := true
	for _, field := range strings.Fields(line) {
		word := strings.Trim(field, ";")
		switch {
		case cmdPos && (word == "if" || word == "while" || word == "for"):
			depth++
		case cmdPos && (word == "fi" || word == "done" || word == "}"):
			depth--
		case strings.HasSuffix(word, "{"):
			depth++
		}
		cmdPos = strings.HasSuffix(field, ";") ||
			word == "do" || word == "then" || word == "else" ||
			strings.HasSuffix(word, "{")
	}
	return depth
}

// joinParts flattens collected lines into the single-line form the parser
// understands. Lines after do, then, else, or an opening brace attach with a
// space; everything else attaches as a new statement.
func joinParts(parts []string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			if endsWithJoiner(parts[i-1]) {
				b.WriteByte(' ')
			} else {
				b.WriteString("; ")
			}
		}
		b.WriteString(part)
	}
	return b.String()
}

func endsWithJoiner(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	switch fields[len(fields)-1] {
	case "do", "then", "else", "{":
		return true
	}
	return false
}
