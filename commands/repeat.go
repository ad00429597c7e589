package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// Repeat prints its message the requested number of times, one per line.
func Repeat(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "repeat COUNT MESSAGE...",
		Short: "Print a message repeatedly.",
	}

	return cmd.Run(inv, func() int {
		args := cmd.Flags().Args()
		if len(args) < 2 {
			fmt.Fprintln(inv.Stderr(), "repeat: missing operand")
			return 1
		}

		count, err := strconv.Atoi(args[0])
		if err != nil || count < 0 {
			fmt.Fprintf(inv.Stderr(), "repeat: invalid count: %s\n", args[0])
			return 1
		}

		message := strings.Join(args[1:], " ")
		for i := 0; i < count; i++ {
			fmt.Fprintln(inv.Stdout(), message)
		}
		return 0
	})
}

var _ CommandFunc = Repeat

func init() {
	register("repeat", &Command{
		Func:    Repeat,
		Use:     "repeat COUNT MESSAGE...",
		Short:   "Print a message repeatedly.",
		MinArgs: 2,
		MaxArgs: -1,
	})
}
