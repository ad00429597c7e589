package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"
)

// Ls lists directory entries sorted by name, directories marked with a
// trailing slash.
func Ls(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "ls [DIR]...",
		Short: "List directory contents.",
	}

	return cmd.Run(inv, func() int {
		dirs := cmd.Flags().Args()
		if len(dirs) == 0 {
			dirs = []string{"."}
		}

		exitCode := 0
		showHeaders := len(dirs) > 1
		for i, dir := range dirs {
			entries, err := readDirSorted(inv, dir)
			if err != nil {
				fmt.Fprintf(inv.Stderr(), "ls: cannot access '%s': no such file or directory\n", dir)
				exitCode = 1
				continue
			}
			if showHeaders {
				if i > 0 {
					fmt.Fprintln(inv.Stdout())
				}
				fmt.Fprintf(inv.Stdout(), "%s:\n", dir)
			}
			for _, entry := range entries {
				fmt.Fprintln(inv.Stdout(), entry)
			}
		}
		return exitCode
	})
}

func readDirSorted(inv *Invocation, dir string) ([]string, error) {
	infos, err := afero.ReadDir(inv.FS, inv.Path(dir))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

var _ CommandFunc = Ls

func init() {
	register("ls", &Command{
		Func:    Ls,
		Use:     "ls [DIR]...",
		Short:   "List directory contents.",
		MaxArgs: -1,
	})
}
