// Package parser turns raw input lines into command nodes. A Collector
// gathers multi-line control structures and heredoc bodies into single
// logical blocks; Parse then builds the node tree the interpreter walks.
package parser
