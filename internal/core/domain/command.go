package domain

import "strings"

// fileVar is the template reference users may embed in the command string.
const fileVar = "${file}"

// Command is the shell command executed when a watched file changes.
// Raw is passed to the shell verbatim; no structure is parsed out of it.
type Command struct {
	Raw       string
	RunBefore bool
}

// WithFileVar returns a copy of the command with every ${file} reference
// replaced by path. Other ${...} references are left untouched so the shell
// (or the user's own templating) can still see them.
func (c Command) WithFileVar(path string) Command {
	c.Raw = strings.ReplaceAll(c.Raw, fileVar, path)
	return c
}
