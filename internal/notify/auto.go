package notify

import (
	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

// auto prefers a desktop dialog, then a terminal modal, then plain output.
func auto(d *Dialog, opts Options) Notifier {
	if d.Available() {
		return d
	}
	if isTerminal(int(opts.Stdin.Fd())) {
		return NewTerminal(opts.Stdin, opts.Stdout, opts.OnInterrupt)
	}
	return NewConsole(opts.Stdout)
}
