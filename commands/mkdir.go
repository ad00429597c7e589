package commands

import "fmt"

// Mkdir creates directories, optionally with missing parents.
func Mkdir(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "mkdir [-p] DIRECTORY...",
		Short: "Create directories if they don't exist.",
	}

	makeParents := cmd.Flags().BoolLong("parents", 'p', "make parents if needed")

	return cmd.Run(inv, func() int {
		directories := cmd.Flags().Args()
		if len(directories) == 0 {
			fmt.Fprintln(inv.Stderr(), "mkdir: missing operand")
			return 1
		}

		exitCode := 0
		for _, dir := range directories {
			var err error
			if *makeParents {
				err = inv.FS.MkdirAll(inv.Path(dir), 0755)
			} else {
				err = inv.FS.Mkdir(inv.Path(dir), 0755)
			}
			if err != nil {
				fmt.Fprintf(inv.Stderr(), "mkdir: cannot create directory %q: %s\n", dir, err)
				exitCode = 1
			}
		}
		return exitCode
	})
}

var _ CommandFunc = Mkdir

func init() {
	register("mkdir", &Command{
		Func:    Mkdir,
		Use:     "mkdir [-p] DIRECTORY...",
		Short:   "Create directories if they don't exist.",
		MinArgs: 1,
		MaxArgs: -1,
	})
}
