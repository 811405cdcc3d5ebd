// Package notify surfaces confirmed file changes to the user.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Title heads every alert.
const Title = "File Integrity Alert"

// Message is the alert body for path.
func Message(path string) string {
	return "File modified: " + path
}

// Notifier presents an alert for path and returns once the user has
// acknowledged it.
type Notifier interface {
	Notify(ctx context.Context, path string) error
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, path string) error

func (f Func) Notify(ctx context.Context, path string) error {
	return f(ctx, path)
}

// Kinds accepted by New.
const (
	KindAuto     = "auto"
	KindDialog   = "dialog"
	KindTerminal = "terminal"
	KindConsole  = "console"
)

// Options carries the process streams notifiers may need.
type Options struct {
	Stdin  *os.File
	Stdout io.Writer
	// OnInterrupt is called when the user presses ctrl+c inside a
	// terminal alert, where the keypress never becomes a signal.
	OnInterrupt func()
}

// New builds the notifier named by kind.
func New(kind string, opts Options) (Notifier, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	switch kind {
	case KindAuto, "":
		return auto(NewDialog(), opts), nil
	case KindDialog:
		d := NewDialog()
		if !d.Available() {
			return nil, fmt.Errorf("no dialog tool available on this system")
		}
		return d, nil
	case KindTerminal:
		return NewTerminal(opts.Stdin, opts.Stdout, opts.OnInterrupt), nil
	case KindConsole:
		return NewConsole(opts.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", kind)
	}
}
