package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Find walks a directory tree and prints every entry whose name matches the
// wildcard pattern. The pattern supports * for any run of characters and ?
// for exactly one.
func Find(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "find [DIR] PATTERN",
		Short: "Search a directory tree for files by name.",
	}

	return cmd.Run(inv, func() int {
		args := cmd.Flags().Args()

		root := "."
		var pattern string
		switch len(args) {
		case 1:
			pattern = args[0]
		case 2:
			root, pattern = args[0], args[1]
		default:
			fmt.Fprintln(inv.Stderr(), "find: expected [DIR] PATTERN")
			return 1
		}

		start := inv.Path(root)
		err := afero.Walk(inv.FS, start, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if path == start {
				return nil
			}
			if matchesPattern(info.Name(), pattern) {
				rel, relErr := filepath.Rel(inv.Dir, path)
				if relErr != nil || filepath.IsAbs(root) {
					rel = path
				}
				fmt.Fprintln(inv.Stdout(), rel)
			}
			return nil
		})
		if err != nil {
			fmt.Fprintf(inv.Stderr(), "find: '%s': no such file or directory\n", root)
			return 1
		}
		return 0
	})
}

// matchesPattern reports whether name matches the wildcard pattern.
func matchesPattern(name, pattern string) bool {
	return matchHelper(name, pattern, 0, 0)
}

func matchHelper(name, pattern string, ni, pi int) bool {
	if pi >= len(pattern) && ni >= len(name) {
		return true
	}
	if pi >= len(pattern) {
		return false
	}
	if ni >= len(name) {
		for ; pi < len(pattern); pi++ {
			if pattern[pi] != '*' {
				return false
			}
		}
		return true
	}

	switch pattern[pi] {
	case '?':
		return matchHelper(name, pattern, ni+1, pi+1)
	case '*':
		// Match zero characters, then try consuming one at a time.
		if matchHelper(name, pattern, ni, pi+1) {
			return true
		}
		return matchHelper(name, pattern, ni+1, pi)
	default:
		if pattern[pi] != name[ni] {
			return false
		}
		return matchHelper(name, pattern, ni+1, pi+1)
	}
}

var _ CommandFunc = Find

func init() {
	register("find", &Command{
		Func:    Find,
		Use:     "find [DIR] PATTERN",
		Short:   "Search a directory tree for files by name.",
		MinArgs: 1,
		MaxArgs: 2,
	})
}
