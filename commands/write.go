package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// WriteFile stores its text arguments, joined by spaces, in the named file.
func WriteFile(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "write FILE TEXT...",
		Short: "Write text to a file, replacing its contents.",
	}

	return cmd.Run(inv, func() int {
		args := cmd.Flags().Args()
		if len(args) < 2 {
			fmt.Fprintln(inv.Stderr(), "write: missing operand")
			return 1
		}

		content := strings.Join(args[1:], " ") + "\n"
		if err := afero.WriteFile(inv.FS, inv.Path(args[0]), []byte(content), 0644); err != nil {
			fmt.Fprintf(inv.Stderr(), "write: %s: %s\n", args[0], err)
			return 1
		}
		return 0
	})
}

var _ CommandFunc = WriteFile

func init() {
	register("write", &Command{
		Func:    WriteFile,
		Use:     "write FILE TEXT...",
		Short:   "Write text to a file, replacing its contents.",
		MinArgs: 2,
		MaxArgs: -1,
	})
}
