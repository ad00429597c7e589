// Package history keeps the bounded command history with event expansion,
// search, and file persistence.
package history

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"minsh/core/env"
)

// DefaultLimit is the number of entries retained when no limit is
// configured.
const DefaultLimit = 1000

// HistFileVar overrides the history file location when set in the
// environment.
const HistFileVar = "MINSH_HISTFILE"

const defaultFileName = ".minsh_history"

// Engine is a bounded, in-memory command history. Safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	entries []string
	limit   int
}

func New(limit int) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{limit: limit}
}

// Record appends one executed line. Blank lines and lines identical to the
// most recent entry are dropped.
func (h *Engine) Record(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Entries returns a copy of the history, oldest first.
func (h *Engine) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Expand resolves a leading history event reference. The second return
// reports whether the line changed; a reference that matches nothing is an
// error.
func (h *Engine) Expand(line string) (string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "!") || trimmed == "!" {
		return line, false, nil
	}

	ref := trimmed
	rest := ""
	if idx := strings.IndexAny(trimmed, " \t"); idx >= 0 {
		ref, rest = trimmed[:idx], trimmed[idx:]
	}

	resolved, err := h.resolve(ref)
	if err != nil {
		return "", false, err
	}
	return resolved + rest, true, nil
}

func (h *Engine) resolve(ref string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	notFound := fmt.Errorf("%s: event not found", ref)
	body := ref[1:]
	switch {
	case ref == "!!":
		if len(h.entries) == 0 {
			return "", notFound
		}
		return h.entries[len(h.entries)-1], nil

	case strings.HasPrefix(body, "-"):
		n, err := strconv.Atoi(body[1:])
		if err != nil || n <= 0 || n > len(h.entries) {
			return "", notFound
		}
		return h.entries[len(h.entries)-n], nil

	case isDigits(body):
		n, _ := strconv.Atoi(body)
		if n <= 0 || n > len(h.entries) {
			return "", notFound
		}
		return h.entries[n-1], nil

	default:
		for i := len(h.entries) - 1; i >= 0; i-- {
			if strings.HasPrefix(h.entries[i], body) {
				return h.entries[i], nil
			}
		}
		return "", notFound
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Match pairs an entry's text with its 1-based history number.
type Match struct {
	N    int
	Text string
}

// Search returns entries containing term, case-insensitively, oldest first.
// When the most recent entry is itself a history search it is skipped so the
// command does not report itself; any other newest entry stays eligible.
func (h *Engine) Search(term string) []Match {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.entries)
	if n > 0 && strings.HasPrefix(h.entries[n-1], "history search") {
		n--
	}

	needle := strings.ToLower(term)
	var out []Match
	for i := 0; i < n; i++ {
		if strings.Contains(strings.ToLower(h.entries[i]), needle) {
			out = append(out, Match{N: i + 1, Text: h.entries[i]})
		}
	}
	return out
}

// Load replaces the history with the contents of path, one entry per line,
// keeping only the most recent entries within the limit. A missing file is
// not an error.
func (h *Engine) Load(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if ok, _ := afero.Exists(fs, path); !ok {
			return nil
		}
		return err
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}
	h.entries = entries
	return nil
}

// Save writes the history to path, one entry per line.
func (h *Engine) Save(fs afero.Fs, path string) error {
	h.mu.Lock()
	data := strings.Join(h.entries, "\n")
	h.mu.Unlock()
	if data != "" {
		data += "\n"
	}
	return afero.WriteFile(fs, path, []byte(data), 0600)
}

// DefaultPath returns the history file location: MINSH_HISTFILE when set,
// otherwise .minsh_history in the given working directory.
func DefaultPath(e *env.Env, dir string) string {
	if p := e.Get(HistFileVar); p != "" {
		return p
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, defaultFileName)
}
