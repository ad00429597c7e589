package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Cp copies a file, or with -r a directory tree, to the destination. When
// the destination is an existing directory the source keeps its base name
// inside it.
func Cp(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "cp [-r] SOURCE DEST",
		Short: "Copy a file or directory.",
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "copy directories recursively")

	return cmd.Run(inv, func() int {
		args := cmd.Flags().Args()
		if len(args) != 2 {
			fmt.Fprintln(inv.Stderr(), "cp: expected SOURCE and DEST")
			return 1
		}

		src := inv.Path(args[0])
		dst := inv.Path(args[1])

		if isDir, _ := afero.IsDir(inv.FS, dst); isDir {
			dst = filepath.Join(dst, filepath.Base(src))
		}

		srcInfo, err := inv.FS.Stat(src)
		if err != nil {
			fmt.Fprintf(inv.Stderr(), "cp: cannot stat '%s': no such file or directory\n", args[0])
			return 1
		}

		if srcInfo.IsDir() {
			if !*recursive {
				fmt.Fprintf(inv.Stderr(), "cp: -r not specified; omitting directory '%s'\n", args[0])
				return 1
			}
			if err := copyTree(inv.FS, src, dst); err != nil {
				fmt.Fprintf(inv.Stderr(), "cp: %s\n", err)
				return 1
			}
			return 0
		}

		if err := copyFile(inv.FS, src, dst, srcInfo.Mode()); err != nil {
			fmt.Fprintf(inv.Stderr(), "cp: %s\n", err)
			return 1
		}
		return 0
	})
}

func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, dst, data, mode)
}

func copyTree(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, info.Mode().Perm()|0700)
		}
		return copyFile(fs, path, target, info.Mode())
	})
}

var _ CommandFunc = Cp

func init() {
	register("cp", &Command{
		Func:    Cp,
		Use:     "cp [-r] SOURCE DEST",
		Short:   "Copy a file or directory.",
		MinArgs: 2,
		MaxArgs: 2,
	})
}
