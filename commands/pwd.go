package commands

import "fmt"

// Pwd prints the session's working directory.
func Pwd(inv *Invocation) int {
	cmd := &SimpleCommand{
		Use:   "pwd",
		Short: "Print the working directory.",
	}

	return cmd.Run(inv, func() int {
		fmt.Fprintln(inv.Stdout(), inv.Dir)
		return 0
	})
}

var _ CommandFunc = Pwd

func init() {
	register("pwd", &Command{
		Func:  Pwd,
		Use:   "pwd",
		Short: "Print the working directory.",
	})
}
