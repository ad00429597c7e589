package commands

import (
	"fmt"

	"github.com/spf13/afero"
)

// Cat writes the contents of each file argument, or the piped input when no
// files are named.
func Cat(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "cat [FILE]...",
		Short: "Concatenate files to output.",
	}

	return cmd.Run(inv, func() int {
		files := cmd.Flags().Args()
		if len(files) == 0 {
			if inv.Input != nil {
				fmt.Fprint(inv.Stdout(), *inv.Input)
				return 0
			}
			fmt.Fprintln(inv.Stderr(), "cat: missing operand")
			return 1
		}

		exitCode := 0
		for _, file := range files {
			data, err := afero.ReadFile(inv.FS, inv.Path(file))
			if err != nil {
				fmt.Fprintf(inv.Stderr(), "cat: %s: no such file or directory\n", file)
				exitCode = 1
				continue
			}
			fmt.Fprint(inv.Stdout(), string(data))
		}
		return exitCode
	})
}

var _ CommandFunc = Cat

func init() {
	register("cat", &Command{
		Func:    Cat,
		Use:     "cat [FILE]...",
		Short:   "Concatenate files to output.",
		MaxArgs: -1,
	})
}
