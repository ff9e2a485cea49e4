// Package repl implements the interactive shell behind "slackctl shell".
//
// Lines are split with argv.Split and handed to an Exec function; each
// result is passed to a Render function. exit, quit and end of input stop
// the loop. When the input is a terminal the prompt supports line editing
// and tab completion through golang.org/x/term.
package repl
