// Package shell drives the interactive loop and script execution: it feeds
// raw lines through history expansion and the block collector, hands
// complete blocks to the interpreter, and prints what comes back.
package shell

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/afero"

	"minsh/commands"
	"minsh/core/config"
	"minsh/core/history"
	"minsh/core/interp"
	"minsh/core/parser"
)

var (
	colorPrompt = color.New(color.FgGreen, color.Bold)
	colorBanner = color.New(color.FgCyan, color.Bold)
)

// Session couples an interpreter with input collection and output.
type Session struct {
	Interp    *interp.Interp
	Collector *parser.Collector
	Config    *config.Configuration

	Out    io.Writer
	Errout io.Writer

	histPath string
}

// New builds a session around an interpreter. Configuration aliases are
// installed immediately.
func New(it *interp.Interp, cfg *config.Configuration) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	for name, command := range cfg.Aliases {
		it.SetAlias(name, command)
	}

	histPath := cfg.HistoryFile
	if histPath == "" {
		histPath = history.DefaultPath(it.Env, it.Dir)
	}

	return &Session{
		Interp:    it,
		Collector: parser.NewCollector(),
		Config:    cfg,
		Out:       os.Stdout,
		Errout:    os.Stderr,
		histPath:  histPath,
	}
}

// prompt picks the configured top-level prompt or the collector's
// continuation prompt.
func (s *Session) prompt() string {
	if s.Collector.Pending() {
		return s.Collector.Prompt()
	}
	if s.Config.Prompt != "" {
		return s.Config.Prompt
	}
	return s.Collector.Prompt()
}

// Interactive runs the read-eval-print loop until EOF or an exit request.
// History is loaded first and saved on the way out.
func (s *Session) Interactive() error {
	if err := s.Interp.Hist.Load(s.Interp.FS, s.histPath); err != nil {
		log.Printf("could not load history: %v", err)
	}
	defer func() {
		if err := s.Interp.Hist.Save(s.Interp.FS, s.histPath); err != nil {
			log.Printf("could not save history: %v", err)
		}
	}()

	rl, err := readline.New(s.prompt())
	if err != nil {
		return err
	}
	defer rl.Close()

	colorBanner.Fprintf(s.Out, "minsh v%s", commands.Version)
	fmt.Fprintln(s.Out, "  type 'help' for available commands")

	for {
		rl.SetPrompt(colorPrompt.Sprint(s.prompt()))
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return nil

		case err == readline.ErrInterrupt:
			s.Collector.Reset()
			continue

		case err != nil:
			return err
		}

		if s.Feed(line) {
			return nil
		}
	}
}

// Feed processes one raw input line and reports whether the session should
// terminate.
func (s *Session) Feed(line string) bool {
	if !s.Collector.Pending() {
		expanded, changed, err := s.Interp.Hist.Expand(line)
		if err != nil {
			fmt.Fprintf(s.Errout, "minsh: %s\n", err)
			return false
		}
		if changed {
			fmt.Fprintln(s.Out, expanded)
		}
		line = expanded
	}

	block, done := s.Collector.Add(line)
	if !done {
		return false
	}

	s.Interp.Hist.Record(block.Text)

	result, err := s.Interp.Run(block)
	if err != nil {
		fmt.Fprintf(s.Errout, "minsh: %s\n", err)
		return false
	}
	if result.Output != "" {
		fmt.Fprint(s.Out, result.Output)
		if !strings.HasSuffix(result.Output, "\n") {
			fmt.Fprintln(s.Out)
		}
	}
	return result.Exit
}

// RunScript executes a file line by line with the same semantics as
// interactive input. A shebang on the first line is skipped. Execution
// continues past failing lines and stops at an exit request.
func (s *Session) RunScript(path string) error {
	data, err := afero.ReadFile(s.Interp.FS, path)
	if err != nil {
		return fmt.Errorf("cannot read script %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, "#!") {
			continue
		}
		if s.Feed(line) {
			return nil
		}
	}

	if s.Collector.Pending() {
		s.Collector.Reset()
		return fmt.Errorf("script %s: unterminated block at end of file", path)
	}
	return nil
}
