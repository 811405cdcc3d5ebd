package notify

import (
	"context"
	"fmt"
	"io"
)

// Console prints the alert and returns without waiting.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(_ context.Context, path string) error {
	_, err := fmt.Fprintf(c.w, "%s: %s\n", Title, Message(path))
	return err
}
