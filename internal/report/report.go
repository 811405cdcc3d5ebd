// Package report renders read-only views of the history store.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/keshon/hashwatch/internal/detect"
	"github.com/keshon/hashwatch/internal/fingerprint"
	"github.com/keshon/hashwatch/internal/history"
)

type State string

const (
	StateOK      State = "ok"
	StateChanged State = "changed"
	StateMissing State = "missing"
)

// Digester computes the content digest of a file.
type Digester interface {
	Digest(path string) (string, error)
}

// Row is the status of one tracked path.
type Row struct {
	Path         string
	Digest       string
	ObservedAt   history.Timestamp
	Observations int
	State        State
}

// Status compares every tracked file with its committed digest. Nothing is
// written and nobody is alerted.
func Status(st *history.Store, d Digester) ([]Row, error) {
	rows := make([]Row, 0, st.Len())
	for _, path := range st.Paths() {
		h, _ := st.History(path)
		last, _ := h.Current()

		row := Row{
			Path:         path,
			Digest:       last.Digest,
			ObservedAt:   last.ObservedAt,
			Observations: len(h),
			State:        StateOK,
		}

		current, err := d.Digest(path)
		switch {
		case errors.Is(err, fingerprint.ErrNotFound):
			row.State = StateMissing
		case err != nil:
			return nil, fmt.Errorf("status of %q: %w", path, err)
		case detect.Evaluate(h, current).Verdict == detect.Changed:
			row.State = StateChanged
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	stateStyles = map[State]lipgloss.Style{
		StateOK:      cellStyle.Foreground(lipgloss.Color("42")),
		StateChanged: cellStyle.Foreground(lipgloss.Color("208")).Bold(true),
		StateMissing: cellStyle.Foreground(lipgloss.Color("196")),
	}
)

const stateCol = 4

// WriteStatus renders rows as a table.
func WriteStatus(w io.Writer, rows []Row) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PATH", "HASH", "RECORDED", "ENTRIES", "STATE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == stateCol && row >= 0 && row < len(rows) {
				return stateStyles[rows[row].State]
			}
			return cellStyle
		})

	for _, r := range rows {
		t.Row(r.Path, r.Digest, r.ObservedAt.String(), strconv.Itoa(r.Observations), string(r.State))
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// WriteHistory lists every observation of one path, oldest first.
func WriteHistory(w io.Writer, path string, h history.History) error {
	if _, err := fmt.Fprintf(w, "%s\n", path); err != nil {
		return err
	}
	for i, obs := range h {
		if _, err := fmt.Fprintf(w, "%4d  %s  %s\n", i+1, obs.ObservedAt, obs.Digest); err != nil {
			return err
		}
	}
	return nil
}
