package repl

import (
	"sort"
	"strings"
)

// Builtins are handled by the shell itself.
var Builtins = []string{"exit", "quit"}

// Completer provides prefix completion over command paths.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the given command paths plus
// the shell builtins.
func NewCompleter(paths []string) *Completer {
	seen := make(map[string]bool, len(paths)+len(Builtins))
	commands := make([]string, 0, len(paths)+len(Builtins))
	for _, p := range append(append([]string{}, paths...), Builtins...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		commands = append(commands, p)
	}
	sort.Strings(commands)
	return &Completer{commands: commands}
}

// Complete returns the commands starting with prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Extend returns the longest common prefix of the suggestions for line,
// or line itself when there is nothing to add.
func (c *Completer) Extend(line string) string {
	matches := c.Complete(line)
	if len(matches) == 0 {
		return line
	}
	common := matches[0]
	for _, m := range matches[1:] {
		for !strings.HasPrefix(m, common) {
			common = common[:len(common)-1]
		}
	}
	if len(matches) == 1 {
		common += " "
	}
	if len(common) <= len(line) {
		return line
	}
	return common
}

// AutoComplete adapts Extend to term.Terminal's AutoCompleteCallback.
// Only tab at the end of the line completes.
func (c *Completer) AutoComplete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' || pos != len(line) {
		return "", 0, false
	}
	extended := c.Extend(line)
	if extended == line {
		return "", 0, false
	}
	return extended, len(extended), true
}
