package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Tracker draws a single self-overwriting status line while a batch of
// files is hashed.
type Tracker struct {
	w         io.Writer
	total     int
	current   int
	message   string
	mu        sync.Mutex
	startTime time.Time
	tick      time.Duration
	done      chan struct{}
	stopped   chan struct{}
}

func New(w io.Writer, total int, message string) *Tracker {
	return newTracker(w, total, message, 100*time.Millisecond)
}

func newTracker(w io.Writer, total int, message string, tick time.Duration) *Tracker {
	p := &Tracker{
		w:         w,
		total:     total,
		message:   message,
		startTime: time.Now(),
		tick:      tick,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go p.render()
	return p
}

func (p *Tracker) render() {
	defer close(p.stopped)

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-p.done:
			p.mu.Lock()
			fmt.Fprintf(p.w, "\r✓ %s (%d files, %s)          \n",
				p.message, p.current, time.Since(p.startTime).Round(time.Millisecond))
			p.mu.Unlock()
			return

		case <-ticker.C:
			p.mu.Lock()
			if p.total > 0 {
				fmt.Fprintf(p.w, "\r%s %s [%d/%d] %.0f%%  ",
					spinner[frame%len(spinner)], p.message, p.current, p.total,
					float64(p.current)/float64(p.total)*100)
			} else {
				fmt.Fprintf(p.w, "\r%s %s [%d files]  ",
					spinner[frame%len(spinner)], p.message, p.current)
			}
			p.mu.Unlock()
			frame++
		}
	}
}

func (p *Tracker) Increment() {
	p.mu.Lock()
	p.current++
	p.mu.Unlock()
}

func (p *Tracker) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Finish prints the summary line and waits for the renderer to exit.
func (p *Tracker) Finish() {
	close(p.done)
	<-p.stopped
}
