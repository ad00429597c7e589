package parser

import "strings"

// RedirectKind identifies how a command's input or output is rerouted.
type RedirectKind int

const (
	// RedirectOut truncates the target file and writes the command's output.
	RedirectOut RedirectKind = iota
	// RedirectAppend creates the target if needed and appends the output.
	RedirectAppend
	// RedirectIn feeds the target file's contents to the command as input.
	RedirectIn
	// RedirectHereDoc feeds a collected literal block to the command.
	RedirectHereDoc
	// RedirectHereDocStrip is RedirectHereDoc with common leading tabs removed.
	RedirectHereDocStrip
)

func (k RedirectKind) String() string {
	switch k {
	case RedirectOut:
		return ">"
	case RedirectAppend:
		return ">>"
	case RedirectIn:
		return "<"
	case RedirectHereDoc:
		return "<<"
	case RedirectHereDocStrip:
		return "<<-"
	default:
		return "?"
	}
}

// RedirectSpec describes a single redirection. Target is a file path for the
// file kinds and the terminator word for the heredoc kinds. Body holds the
// collected heredoc lines, already tab-stripped for RedirectHereDocStrip.
type RedirectSpec struct {
	Kind   RedirectKind
	Target string
	Body   []string
}

// Node is one parsed command. Nodes are built per logical input and discarded
// after a single execution; expansion happens at evaluation time, so the same
// node can produce different output on repeated runs.
type Node interface {
	node()
}

// Simple is a plain command invocation. Args holds the raw, unexpanded words;
// Args[0] is the command name.
type Simple struct {
	Args []string
}

// Pipeline chains stages left to right, feeding each stage's captured output
// to the next stage as input.
type Pipeline struct {
	Stages []Node
}

// Redirected wraps an inner node with one redirection.
type Redirected struct {
	Inner Node
	Spec  RedirectSpec
}

// Background marks a node for asynchronous execution. Raw keeps the original
// command text for job listings.
type Background struct {
	Inner Node
	Raw   string
}

// Sequence executes members in order; a failing member does not stop the
// members after it.
type Sequence struct {
	Members []Node
}

// Conditional runs Then when Cond succeeds and Else (if present) otherwise.
type Conditional struct {
	Cond Node
	Then Node
	Else Node
}

// WhileLoop repeats Body while Cond succeeds, bounded by the interpreter's
// iteration ceiling.
type WhileLoop struct {
	Cond Node
	Body Node
}

// ForLoop binds Variable to each of Items in turn and runs Body. Items are
// expanded once when the loop starts.
type ForLoop struct {
	Variable string
	Items    []string
	Body     Node
}

// FunctionDef stores Body under Name in the function table.
type FunctionDef struct {
	Name string
	Body Node
}

// Compound is an ordered multi-statement body, used for control-structure
// branches that contain more than one command.
type Compound struct {
	Members []Node
}

func (*Simple) node()      {}
func (*Pipeline) node()    {}
func (*Redirected) node()  {}
func (*Background) node()  {}
func (*Sequence) node()    {}
func (*Conditional) node() {}
func (*WhileLoop) node()   {}
func (*ForLoop) node()     {}
func (*FunctionDef) node() {}
func (*Compound) node()    {}

// Name returns the command word of a Simple node, or "" for anything else.
func Name(n Node) string {
	if s, ok := n.(*Simple); ok && len(s.Args) > 0 {
		return s.Args[0]
	}
	return ""
}

// Describe renders a short display form of a node, used for job listings when
// the original text is unavailable.
func Describe(n Node) string {
	switch n := n.(type) {
	case *Simple:
		return strings.Join(n.Args, " ")
	case *Pipeline:
		parts := make([]string, 0, len(n.Stages))
		for _, s := range n.Stages {
			parts = append(parts, Describe(s))
		}
		return strings.Join(parts, " | ")
	case *Redirected:
		return Describe(n.Inner) + " " + n.Spec.Kind.String() + " " + n.Spec.Target
	case *Background:
		return Describe(n.Inner) + " &"
	case *Sequence:
		parts := make([]string, 0, len(n.Members))
		for _, m := range n.Members {
			parts = append(parts, Describe(m))
		}
		return strings.Join(parts, "; ")
	case *Compound:
		parts := make([]string, 0, len(n.Members))
		for _, m := range n.Members {
			parts = append(parts, Describe(m))
		}
		return strings.Join(parts, "; ")
	case *Conditional:
		return "if " + Describe(n.Cond) + "; then ...; fi"
	case *WhileLoop:
		return "while " + Describe(n.Cond) + "; do ...; done"
	case *ForLoop:
		return "for " + n.Variable + " in " + strings.Join(n.Items, " ") + "; do ...; done"
	case *FunctionDef:
		return "function " + n.Name + "() { ... }"
	default:
		return ""
	}
}
