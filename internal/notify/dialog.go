package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Dialog shows a modal message box through the platform's dialog tool and
// waits for the user to close it.
type Dialog struct {
	goos     string
	lookPath func(string) (string, error)
	getenv   func(string) string
	run      func(*exec.Cmd) error
}

func NewDialog() *Dialog {
	return &Dialog{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
		run:      (*exec.Cmd).Run,
	}
}

// Available reports whether a dialog tool and a display are present.
func (d *Dialog) Available() bool {
	_, _, ok := d.tool()
	return ok
}

func (d *Dialog) Notify(ctx context.Context, path string) error {
	name, args, ok := d.tool()
	if !ok {
		return fmt.Errorf("no dialog tool available on %s", d.goos)
	}

	cmd := exec.CommandContext(ctx, name, d.args(args, path)...)
	if d.goos == "windows" {
		cmd.Env = append(os.Environ(), "HASHWATCH_MESSAGE="+Message(path))
	}

	err := d.run(cmd)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		// closed through the window manager rather than the button
		return nil
	}
	if err != nil {
		return fmt.Errorf("dialog for %q: %w", path, err)
	}
	return nil
}

// tool picks the executable and its fixed leading arguments.
func (d *Dialog) tool() (string, []string, bool) {
	switch d.goos {
	case "darwin":
		if p, err := d.lookPath("osascript"); err == nil {
			return p, nil, true
		}
	case "windows":
		if p, err := d.lookPath("powershell"); err == nil {
			return p, []string{"-NoProfile", "-NonInteractive", "-Command"}, true
		}
	default:
		if d.getenv("DISPLAY") == "" && d.getenv("WAYLAND_DISPLAY") == "" {
			return "", nil, false
		}
		if p, err := d.lookPath("zenity"); err == nil {
			return p, []string{"--warning", "--no-markup"}, true
		}
		if p, err := d.lookPath("kdialog"); err == nil {
			return p, nil, true
		}
	}
	return "", nil, false
}

func (d *Dialog) args(lead []string, path string) []string {
	msg := Message(path)
	out := append([]string(nil), lead...)

	switch d.goos {
	case "darwin":
		script := fmt.Sprintf(`display dialog %s with title %s buttons {"OK"} default button "OK" with icon caution`,
			appleScriptQuote(msg), appleScriptQuote(Title))
		return append(out, "-e", script)
	case "windows":
		script := "Add-Type -AssemblyName PresentationFramework; " +
			"[void][System.Windows.MessageBox]::Show($env:HASHWATCH_MESSAGE, '" + Title + "')"
		return append(out, script)
	default:
		if len(lead) > 0 && lead[0] == "--warning" {
			return append(out, "--title="+Title, "--text="+msg)
		}
		return append(out, "--title", Title, "--sorry", msg)
	}
}

func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
