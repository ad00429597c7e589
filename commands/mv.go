package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Mv renames a file or directory. When the destination is an existing
// directory the source moves into it under its own name.
func Mv(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "mv SOURCE DEST",
		Short: "Move or rename a file or directory.",
	}

	return cmd.Run(inv, func() int {
		args := cmd.Flags().Args()
		if len(args) != 2 {
			fmt.Fprintln(inv.Stderr(), "mv: expected SOURCE and DEST")
			return 1
		}

		src := inv.Path(args[0])
		dst := inv.Path(args[1])

		if exists, _ := afero.Exists(inv.FS, src); !exists {
			fmt.Fprintf(inv.Stderr(), "mv: cannot stat '%s': no such file or directory\n", args[0])
			return 1
		}
		if isDir, _ := afero.IsDir(inv.FS, dst); isDir {
			dst = filepath.Join(dst, filepath.Base(src))
		}

		if err := inv.FS.Rename(src, dst); err != nil {
			fmt.Fprintf(inv.Stderr(), "mv: cannot move '%s': %s\n", args[0], err)
			return 1
		}
		return 0
	})
}

var _ CommandFunc = Mv

func init() {
	register("mv", &Command{
		Func:    Mv,
		Use:     "mv SOURCE DEST",
		Short:   "Move or rename a file or directory.",
		MinArgs: 2,
		MaxArgs: 2,
	})
}
