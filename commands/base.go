// Package commands implements the built-in utilities. Each command reads its
// arguments and optional piped input from an Invocation and writes results
// to the invocation's captured streams.
package commands

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"
)

// Invocation carries everything one command run needs: argv, the working
// directory, the filesystem, and piped input when the command is not the
// first pipeline stage.
type Invocation struct {
	// Args is the full argument vector including the command name.
	Args []string
	// Input is the captured output of the previous pipeline stage, nil when
	// the command reads no pipe.
	Input *string
	// FS is the filesystem all file operations go through.
	FS afero.Fs
	// Dir resolves relative paths.
	Dir string

	stdout bytes.Buffer
	stderr bytes.Buffer
}

func (inv *Invocation) Stdout() io.Writer { return &inv.stdout }
func (inv *Invocation) Stderr() io.Writer { return &inv.stderr }

// Out returns everything the command wrote to its stdout.
func (inv *Invocation) Out() string { return inv.stdout.String() }

// ErrOut returns everything the command wrote to its stderr.
func (inv *Invocation) ErrOut() string { return inv.stderr.String() }

// Path resolves p against the invocation's working directory.
func (inv *Invocation) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(inv.Dir, p)
}

// CommandFunc runs one command and returns its exit status.
type CommandFunc func(inv *Invocation) int

// Command is a registered utility. Func is nil for names the session
// implements itself; those still register here so help and argument
// validation cover them.
type Command struct {
	Func  CommandFunc
	Use   string
	Short string

	// MinArgs and MaxArgs bound the number of words after the command
	// name. MaxArgs of -1 means unlimited.
	MinArgs int
	MaxArgs int
}

// AllCommands holds every registered command by name.
var AllCommands = make(map[string]*Command)

func register(name string, cmd *Command) {
	AllCommands[name] = cmd
}

// Lookup returns the registered command for name.
func Lookup(name string) (*Command, bool) {
	cmd, ok := AllCommands[name]
	return cmd, ok
}

// ValidateArgs checks the operand count for name against its registration.
func ValidateArgs(name string, operands int) error {
	cmd, ok := AllCommands[name]
	if !ok {
		return fmt.Errorf("%s: command not found", name)
	}
	if operands < cmd.MinArgs {
		return fmt.Errorf("%s: missing operand", name)
	}
	if cmd.MaxArgs >= 0 && operands > cmd.MaxArgs {
		return fmt.Errorf("%s: too many arguments", name)
	}
	return nil
}

// Names returns all registered command names, sorted.
func Names() []string {
	names := make([]string, 0, len(AllCommands))
	for name := range AllCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SimpleCommand handles flag parsing and help output so commands only supply
// their core behavior.
type SimpleCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}
	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses flags from the invocation and calls the callback on success.
func (s *SimpleCommand) Run(inv *Invocation, callback func() int) int {
	opts := s.Flags()
	showHelp := opts.BoolLong("help", 'h', "show this help and exit")

	if err := opts.Getopt(inv.Args, nil); err != nil {
		fmt.Fprintf(inv.Stderr(), "error: %s\n\n", err)
		s.PrintHelp(inv.Stderr())
		return 1
	}

	if *showHelp {
		s.PrintHelp(inv.Stdout())
		return 0
	}

	return callback()
}

// eachInputLine calls fn for every line of the piped input, dropping a
// single trailing newline so commands do not see a phantom empty line.
func eachInputLine(input string, fn func(line string)) {
	input = strings.TrimSuffix(input, "\n")
	if input == "" {
		return
	}
	for _, line := range strings.Split(input, "\n") {
		fn(line)
	}
}
