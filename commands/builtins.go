package commands

// The names below are implemented by the session itself because they touch
// interpreter state: the working directory, the environment, aliases,
// history, and the job table. They register here without a Func so help and
// argument validation still cover them.
func init() {
	register("cd", &Command{
		Use:     "cd [DIR]",
		Short:   "Change the working directory.",
		MaxArgs: 1,
	})
	register("env", &Command{
		Use:     "env [VAR[=value]]",
		Short:   "Show or set environment variables.",
		MaxArgs: 1,
	})
	register("alias", &Command{
		Use:     "alias [name=command]",
		Short:   "Set or show command aliases.",
		MaxArgs: 1,
	})
	register("history", &Command{
		Use:     "history [N | search QUERY]",
		Short:   "Show command history or search it.",
		MaxArgs: -1,
	})
	register("jobs", &Command{
		Use:     "jobs [JOB_ID]",
		Short:   "List background jobs, or query one by ID.",
		MaxArgs: 1,
	})
	register("fg", &Command{
		Use:     "fg [JOB_ID]",
		Short:   "Wait for a background job and show its output.",
		MaxArgs: 1,
	})
	register("exit", &Command{
		Use:   "exit",
		Short: "Exit the program.",
	})
	register("quit", &Command{
		Use:   "quit",
		Short: "Exit the program.",
	})
}
