package commands

import "fmt"

// Version is the release identifier stamped at build time.
var Version = "0.1.0"

// PrintVersion reports the shell's version.
func PrintVersion(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "version",
		Short: "Show version information.",
	}

	return cmd.Run(inv, func() int {
		fmt.Fprintf(inv.Stdout(), "minsh v%s\n", Version)
		return 0
	})
}

var _ CommandFunc = PrintVersion

func init() {
	register("version", &Command{
		Func:  PrintVersion,
		Use:   "version",
		Short: "Show version information.",
	})
}
