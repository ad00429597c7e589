package commands

import "fmt"

// Help lists every registered command with its usage line, aligned the way
// the interactive banner shows them.
func Help(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "help",
		Short: "List available commands.",
	}

	return cmd.Run(inv, func() int {
		w := inv.Stdout()
		fmt.Fprintln(w, "Available commands:")

		maxWidth := 0
		for _, name := range Names() {
			if n := len(AllCommands[name].Use); n > maxWidth {
				maxWidth = n
			}
		}
		for _, name := range Names() {
			c := AllCommands[name]
			fmt.Fprintf(w, "  %-*s - %s\n", maxWidth, c.Use, c.Short)
		}

		fmt.Fprintln(w, "Options:")
		fmt.Fprintln(w, "  --debug    Enable debug mode with detailed logging")
		return 0
	})
}

var _ CommandFunc = Help

func init() {
	register("help", &Command{
		Func:  Help,
		Use:   "help",
		Short: "List available commands.",
	})
}
