package commands

import (
	"fmt"

	"github.com/spf13/afero"
)

// Rm removes files, and with -r whole directory trees. With -f missing
// targets are not an error.
func Rm(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "rm [-rf] TARGET...",
		Short: "Remove files or directories.",
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "remove directories and their contents")
	force := cmd.Flags().BoolLong("force", 'f', "ignore missing targets")

	return cmd.Run(inv, func() int {
		targets := cmd.Flags().Args()
		if len(targets) == 0 {
			fmt.Fprintln(inv.Stderr(), "rm: missing operand")
			return 1
		}

		exitCode := 0
		for _, target := range targets {
			path := inv.Path(target)

			exists, _ := afero.Exists(inv.FS, path)
			if !exists {
				if !*force {
					fmt.Fprintf(inv.Stderr(), "rm: cannot remove '%s': no such file or directory\n", target)
					exitCode = 1
				}
				continue
			}

			isDir, _ := afero.IsDir(inv.FS, path)
			if isDir && !*recursive {
				fmt.Fprintf(inv.Stderr(), "rm: cannot remove '%s': is a directory\n", target)
				exitCode = 1
				continue
			}

			var err error
			if isDir {
				err = inv.FS.RemoveAll(path)
			} else {
				err = inv.FS.Remove(path)
			}
			if err != nil {
				fmt.Fprintf(inv.Stderr(), "rm: cannot remove '%s': %s\n", target, err)
				exitCode = 1
			}
		}
		return exitCode
	})
}

var _ CommandFunc = Rm

func init() {
	register("rm", &Command{
		Func:    Rm,
		Use:     "rm [-rf] TARGET...",
		Short:   "Remove files or directories.",
		MinArgs: 1,
		MaxArgs: -1,
	})
}
