package notify

import "context"

// Recorder remembers every alert. Hook, when set, runs inside Notify and
// its error is returned.
type Recorder struct {
	Paths []string
	Hook  func(path string) error
}

func (r *Recorder) Notify(_ context.Context, path string) error {
	r.Paths = append(r.Paths, path)
	if r.Hook != nil {
		return r.Hook(path)
	}
	return nil
}

// Count returns how many alerts were raised for path.
func (r *Recorder) Count(path string) int {
	n := 0
	for _, p := range r.Paths {
		if p == path {
			n++
		}
	}
	return n
}
