package commands

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// Grep searches for lines matching a regular expression. Piped input yields
// bare matching lines; a single file prefixes each with its line number; and
// multiple files prefix the file name as well.
func Grep(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "grep PATTERN [FILE]...",
		Short: "Search input or files for lines matching a pattern.",
	}

	return cmd.Run(inv, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintln(inv.Stderr(), "grep: missing pattern")
			return 1
		}

		regex, err := regexp.Compile(args[0])
		if err != nil {
			fmt.Fprintf(inv.Stderr(), "grep: invalid pattern: %s\n", err)
			return 2
		}

		files := args[1:]
		if len(files) == 0 {
			if inv.Input == nil {
				fmt.Fprintln(inv.Stderr(), "grep: missing operand")
				return 1
			}
			eachInputLine(*inv.Input, func(line string) {
				if regex.MatchString(line) {
					fmt.Fprintln(inv.Stdout(), line)
				}
			})
			return 0
		}

		exitCode := 0
		for _, file := range files {
			data, err := afero.ReadFile(inv.FS, inv.Path(file))
			if err != nil {
				fmt.Fprintf(inv.Stderr(), "grep: %s: no such file or directory\n", file)
				exitCode = 2
				continue
			}
			for i, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
				if !regex.MatchString(line) {
					continue
				}
				if len(files) > 1 {
					fmt.Fprintf(inv.Stdout(), "%s:%d: %s\n", file, i+1, line)
				} else {
					fmt.Fprintf(inv.Stdout(), "%d: %s\n", i+1, line)
				}
			}
		}
		return exitCode
	})
}

var _ CommandFunc = Grep

func init() {
	register("grep", &Command{
		Func:    Grep,
		Use:     "grep PATTERN [FILE]...",
		Short:   "Search input or files for lines matching a pattern.",
		MinArgs: 1,
		MaxArgs: -1,
	})
}
