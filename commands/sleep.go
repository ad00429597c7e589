package commands

import (
	"fmt"
	"strconv"
	"time"
)

// Sleep pauses for a whole number of seconds. Useful mostly as a background
// job.
func Sleep(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "sleep SECONDS",
		Short: "Pause for a number of seconds.",
	}

	return cmd.Run(inv, func() int {
		args := cmd.Flags().Args()
		if len(args) != 1 {
			fmt.Fprintln(inv.Stderr(), "sleep: expected SECONDS")
			return 1
		}

		seconds, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Fprintf(inv.Stderr(), "sleep: invalid time interval '%s'\n", args[0])
			return 1
		}

		time.Sleep(time.Duration(seconds) * time.Second)
		return 0
	})
}

var _ CommandFunc = Sleep

func init() {
	register("sleep", &Command{
		Func:    Sleep,
		Use:     "sleep SECONDS",
		Short:   "Pause for a number of seconds.",
		MinArgs: 1,
		MaxArgs: 1,
	})
}
