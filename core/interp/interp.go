// Package interp walks parsed command nodes and produces their output. One
// Interp holds all session state: environment, aliases, functions, history,
// jobs, and the working directory.
package interp

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"minsh/commands"
	"minsh/core/env"
	"minsh/core/expand"
	"minsh/core/history"
	"minsh/core/job"
	"minsh/core/parser"
)

// DefaultLoopLimit caps while-loop iterations so a parsed-once condition
// cannot hang the session.
const DefaultLoopLimit = 1000

// Result is the outcome of one evaluated block.
type Result struct {
	// Output is everything the command chain produced on success paths.
	Output string
	// Exit is set when the block asked the session to terminate.
	Exit bool
}

// Interp evaluates command nodes against mutable session state.
type Interp struct {
	Env       *env.Env
	Jobs      *job.Registry
	Hist      *history.Engine
	FS        afero.Fs
	Dir       string
	Stderr    io.Writer
	Debug     *log.Logger
	LoopLimit int

	funcs    map[string]parser.Node
	aliases  map[string]string
	expander *expand.Expander
}

// New builds a session interpreter rooted at dir over the given filesystem.
func New(e *env.Env, fs afero.Fs, dir string) *Interp {
	it := &Interp{
		Env:       e,
		Jobs:      job.NewRegistry(),
		Hist:      history.New(0),
		FS:        fs,
		Dir:       dir,
		Stderr:    os.Stderr,
		Debug:     log.New(io.Discard, "", 0),
		LoopLimit: DefaultLoopLimit,
		funcs:     make(map[string]parser.Node),
		aliases:   make(map[string]string),
	}
	it.expander = expand.New(e, it.runSubstitution)
	return it
}

// runSubstitution executes the body of one $(...) and returns its output.
func (it *Interp) runSubstitution(command string) (string, error) {
	node, err := parser.Parse(command)
	if err != nil {
		return "", err
	}
	out, _, err := it.eval(node, nil)
	return out, err
}

// Run parses one logical block and evaluates it.
func (it *Interp) Run(block parser.Block) (Result, error) {
	node, err := parser.ParseBlock(block)
	if err != nil {
		return Result{}, err
	}
	it.Debug.Printf("eval %s", parser.Describe(node))
	out, exit, err := it.eval(node, nil)
	return Result{Output: out, Exit: exit}, err
}

// eval dispatches on node type. The input argument carries piped text into
// simple commands and is nil everywhere else.
func (it *Interp) eval(node parser.Node, input *string) (string, bool, error) {
	switch n := node.(type) {
	case *parser.Simple:
		return it.evalSimple(n.Args, input)
	case *parser.Pipeline:
		return it.evalPipeline(n)
	case *parser.Redirected:
		return it.evalRedirected(n, input)
	case *parser.Background:
		return it.evalBackground(n)
	case *parser.Sequence:
		return it.evalMembers(n.Members)
	case *parser.Compound:
		return it.evalMembers(n.Members)
	case *parser.Conditional:
		return it.evalConditional(n)
	case *parser.WhileLoop:
		return it.evalWhile(n)
	case *parser.ForLoop:
		return it.evalFor(n)
	case *parser.FunctionDef:
		it.funcs[n.Name] = n.Body
		return "", false, nil
	default:
		return "", false, fmt.Errorf("cannot evaluate %T", node)
	}
}

// evalMembers runs statements in order. A failing member reports its error
// and the rest still run; an exit request stops immediately.
func (it *Interp) evalMembers(members []parser.Node) (string, bool, error) {
	var b strings.Builder
	for _, member := range members {
		out, exit, err := it.eval(member, nil)
		b.WriteString(out)
		if err != nil {
			fmt.Fprintf(it.Stderr, "minsh: %s\n", err)
			continue
		}
		if exit {
			return b.String(), true, nil
		}
	}
	return b.String(), false, nil
}

func (it *Interp) evalConditional(n *parser.Conditional) (string, bool, error) {
	condOut, exit, condErr := it.eval(n.Cond, nil)
	if exit {
		return condOut, true, nil
	}

	var b strings.Builder
	b.WriteString(condOut)

	branch := n.Then
	if condErr != nil {
		branch = n.Else
	}
	if branch == nil {
		return b.String(), false, nil
	}
	out, exit, err := it.eval(branch, nil)
	b.WriteString(out)
	return b.String(), exit, err
}

// evalWhile reruns the condition and body until the condition fails or the
// iteration ceiling is reached. Hitting the ceiling stops the loop without
// an error.
func (it *Interp) evalWhile(n *parser.WhileLoop) (string, bool, error) {
	var b strings.Builder
	for i := 0; i < it.LoopLimit; i++ {
		condOut, exit, condErr := it.eval(n.Cond, nil)
		b.WriteString(condOut)
		if exit {
			return b.String(), true, nil
		}
		if condErr != nil {
			return b.String(), false, nil
		}

		out, exit, err := it.eval(n.Body, nil)
		b.WriteString(out)
		if err != nil {
			fmt.Fprintf(it.Stderr, "minsh: %s\n", err)
		}
		if exit {
			return b.String(), true, nil
		}
	}
	it.Debug.Printf("while loop stopped after %d iterations", it.LoopLimit)
	return b.String(), false, nil
}

// evalFor binds the loop variable to each item in turn. The previous binding
// of the variable, if any, comes back once the loop ends.
func (it *Interp) evalFor(n *parser.ForLoop) (string, bool, error) {
	items := it.expander.ExpandAll(n.Items)

	restore := it.Env.Bind(n.Variable, "")
	defer restore()

	var b strings.Builder
	for _, item := range items {
		it.Env.Set(n.Variable, item)
		out, exit, err := it.eval(n.Body, nil)
		b.WriteString(out)
		if err != nil {
			fmt.Fprintf(it.Stderr, "minsh: %s\n", err)
			continue
		}
		if exit {
			return b.String(), true, nil
		}
	}
	return b.String(), false, nil
}

// evalPipeline chains stage outputs: each stage reads the previous stage's
// captured output as its piped input.
func (it *Interp) evalPipeline(n *parser.Pipeline) (string, bool, error) {
	var input *string
	for _, stage := range n.Stages {
		out, exit, err := it.eval(stage, input)
		if err != nil {
			return "", false, err
		}
		if exit {
			return out, true, nil
		}
		input = &out
	}
	if input == nil {
		return "", false, nil
	}
	return *input, false, nil
}

func (it *Interp) evalRedirected(n *parser.Redirected, input *string) (string, bool, error) {
	spec := n.Spec
	switch spec.Kind {
	case parser.RedirectIn:
		data, err := afero.ReadFile(it.FS, it.resolve(it.expander.Expand(spec.Target)))
		if err != nil {
			return "", false, fmt.Errorf("%s: no such file or directory", spec.Target)
		}
		text := string(data)
		return it.eval(n.Inner, &text)

	case parser.RedirectHereDoc, parser.RedirectHereDocStrip:
		text := ""
		if len(spec.Body) > 0 {
			text = strings.Join(it.expander.ExpandAll(spec.Body), "\n") + "\n"
		}
		return it.eval(n.Inner, &text)

	case parser.RedirectOut, parser.RedirectAppend:
		out, exit, err := it.eval(n.Inner, input)
		if err != nil {
			return "", exit, err
		}
		target := it.resolve(it.expander.Expand(spec.Target))
		if werr := it.writeRedirect(target, out, spec.Kind == parser.RedirectAppend); werr != nil {
			return "", exit, fmt.Errorf("%s: %s", spec.Target, werr)
		}
		return "", exit, nil

	default:
		return "", false, fmt.Errorf("unsupported redirect %s", spec.Kind)
	}
}

func (it *Interp) writeRedirect(path, content string, appendTo bool) error {
	if !appendTo {
		return afero.WriteFile(it.FS, path, []byte(content), 0644)
	}
	f, err := it.FS.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}

// evalBackground submits the inner command as a job. The job runs against
// snapshots of the environment, function, and alias tables taken now, so
// later session changes neither leak in nor race the job goroutine. The
// acknowledgement line carries the new job ID.
func (it *Interp) evalBackground(n *parser.Background) (string, bool, error) {
	funcs := make(map[string]parser.Node, len(it.funcs))
	for name, body := range it.funcs {
		funcs[name] = body
	}
	aliases := make(map[string]string, len(it.aliases))
	for name, command := range it.aliases {
		aliases[name] = command
	}

	clone := &Interp{
		Env:       it.Env.Snapshot(),
		Jobs:      it.Jobs,
		Hist:      it.Hist,
		FS:        it.FS,
		Dir:       it.Dir,
		Stderr:    io.Discard,
		Debug:     it.Debug,
		LoopLimit: it.LoopLimit,
		funcs:     funcs,
		aliases:   aliases,
	}
	clone.expander = expand.New(clone.Env, clone.runSubstitution)

	inner := n.Inner
	j := it.Jobs.Submit(n.Raw, func() (string, error) {
		out, _, err := clone.eval(inner, nil)
		return out, err
	})
	return fmt.Sprintf("[%d] %s\n", j.ID, n.Raw), false, nil
}

// evalSimple resolves aliases, functions, session builtins, and registered
// commands, in that order.
func (it *Interp) evalSimple(args []string, input *string) (string, bool, error) {
	args = it.expander.ExpandAll(args)
	if len(args) == 0 || args[0] == "" {
		return "", false, nil
	}
	name := args[0]

	if alias, ok := it.aliases[name]; ok && name != "alias" {
		fields, err := parser.Fields(alias)
		if err != nil {
			return "", false, err
		}
		args = append(fields, args[1:]...)
		name = args[0]
	}

	if body, ok := it.funcs[name]; ok {
		return it.callFunction(body, args[1:])
	}

	if _, registered := commands.Lookup(name); registered {
		if err := commands.ValidateArgs(name, len(args)-1); err != nil {
			return "", false, err
		}
	}

	switch name {
	case "cd":
		return it.builtinCd(args[1:])
	case "env":
		return it.builtinEnv(args[1:])
	case "alias":
		return it.builtinAlias(args[1:])
	case "history":
		return it.builtinHistory(args[1:])
	case "jobs":
		return it.builtinJobs(args[1:])
	case "fg":
		return it.builtinFg(args[1:])
	case "exit", "quit":
		return "good bye\n", true, nil
	}

	cmd, ok := commands.Lookup(name)
	if !ok || cmd.Func == nil {
		return "", false, fmt.Errorf("%s: command not found", name)
	}

	inv := &commands.Invocation{
		Args:  args,
		Input: input,
		FS:    it.FS,
		Dir:   it.Dir,
	}
	if code := cmd.Func(inv); code != 0 {
		msg := strings.TrimSpace(inv.ErrOut())
		if msg == "" {
			msg = fmt.Sprintf("%s: exit status %d", name, code)
		}
		return "", false, errors.New(msg)
	}
	return inv.Out(), false, nil
}

// callFunction binds positional parameters 1..N for the duration of the
// body.
func (it *Interp) callFunction(body parser.Node, args []string) (string, bool, error) {
	restores := make([]func(), 0, len(args))
	for i, arg := range args {
		restores = append(restores, it.Env.Bind(strconv.Itoa(i+1), arg))
	}
	defer func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}()

	return it.eval(body, nil)
}

// resolve turns a possibly relative path into an absolute one under the
// session's working directory.
func (it *Interp) resolve(path string) string {
	switch {
	case path == "" || filepath.IsAbs(path):
		return filepath.Clean(path)
	case path == "~":
		return it.Env.Get("HOME")
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(it.Env.Get("HOME"), path[2:])
	default:
		return filepath.Join(it.Dir, path)
	}
}

func (it *Interp) builtinCd(args []string) (string, bool, error) {
	var target string
	switch {
	case len(args) == 0 || args[0] == "~":
		target = it.Env.Get("HOME")
		if target == "" {
			return "", false, errors.New("cd: HOME not set")
		}
	case args[0] == "-":
		target = it.Env.Get("OLDPWD")
		if target == "" {
			return "", false, errors.New("cd: OLDPWD not set")
		}
	default:
		target = it.resolve(args[0])
	}

	isDir, err := afero.DirExists(it.FS, target)
	if err != nil || !isDir {
		return "", false, fmt.Errorf("cd: %s: no such file or directory", args[0])
	}

	it.Env.Set("OLDPWD", it.Dir)
	it.Env.Set("PWD", target)
	it.Dir = target

	if len(args) > 0 && args[0] == "-" {
		return target + "\n", false, nil
	}
	return "", false, nil
}

func (it *Interp) builtinEnv(args []string) (string, bool, error) {
	if len(args) == 0 {
		return strings.Join(it.Env.Environ(), "\n") + "\n", false, nil
	}

	arg := args[0]
	if name, value, ok := strings.Cut(arg, "="); ok {
		if name == "" {
			return "", false, errors.New("env: empty variable name")
		}
		it.Env.Set(name, value)
		return "", false, nil
	}

	value, ok := it.Env.Lookup(arg)
	if !ok {
		return "", false, fmt.Errorf("env: %s: not set", arg)
	}
	return value + "\n", false, nil
}

func (it *Interp) builtinAlias(args []string) (string, bool, error) {
	if len(args) == 0 {
		names := make([]string, 0, len(it.aliases))
		for name := range it.aliases {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "alias %s='%s'\n", name, it.aliases[name])
		}
		return b.String(), false, nil
	}

	name, command, ok := strings.Cut(args[0], "=")
	if !ok || name == "" {
		return "", false, errors.New("alias: expected name=command")
	}
	if command == "" {
		return "", false, errors.New("alias: empty command")
	}
	it.aliases[name] = command
	return "", false, nil
}

func (it *Interp) builtinHistory(args []string) (string, bool, error) {
	if len(args) > 0 && args[0] == "search" {
		if len(args) < 2 {
			return "", false, errors.New("history: search needs a query")
		}
		matches := it.Hist.Search(strings.Join(args[1:], " "))
		if len(matches) == 0 {
			return "no matches\n", false, nil
		}
		var b strings.Builder
		for _, m := range matches {
			fmt.Fprintf(&b, "%4d  %s\n", m.N, m.Text)
		}
		return b.String(), false, nil
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", false, fmt.Errorf("history: unknown subcommand %q", args[0])
		}
		entries := it.Hist.Entries()
		if n < 1 || n > len(entries) {
			return "", false, fmt.Errorf("history: %d: history position out of range", n)
		}
		node, err := parser.Parse(entries[n-1])
		if err != nil {
			return "", false, err
		}
		return it.eval(node, nil)
	}

	var b strings.Builder
	for i, entry := range it.Hist.Entries() {
		fmt.Fprintf(&b, "%4d  %s\n", i+1, entry)
	}
	return b.String(), false, nil
}

func (it *Interp) builtinJobs(args []string) (string, bool, error) {
	if len(args) > 0 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return "", false, fmt.Errorf("jobs: invalid job ID %q", args[0])
		}
		line, ok := it.Jobs.Status(id)
		if !ok {
			return "", false, fmt.Errorf("jobs: %d: no such job", id)
		}
		return line + "\n", false, nil
	}

	lines := it.Jobs.List()
	if len(lines) == 0 {
		return "No jobs\n", false, nil
	}
	return strings.Join(lines, "\n") + "\n", false, nil
}

func (it *Interp) builtinFg(args []string) (string, bool, error) {
	var target *job.Job
	if len(args) == 0 {
		latest, ok := it.Jobs.Latest()
		if !ok {
			return "", false, errors.New("fg: no current job")
		}
		target = latest
	} else {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return "", false, fmt.Errorf("fg: invalid job ID %q", args[0])
		}
		found, ok := it.Jobs.Find(id)
		if !ok {
			return "", false, fmt.Errorf("fg: %d: no such job", id)
		}
		target = found
	}

	out, err := target.Wait()
	it.Jobs.Remove(target.ID)
	if err != nil {
		return "", false, fmt.Errorf("fg: %s", err)
	}
	return out, false, nil
}

// SetAlias installs an alias directly, for configuration defaults.
func (it *Interp) SetAlias(name, command string) {
	it.aliases[name] = command
}
