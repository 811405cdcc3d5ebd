package history

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the on-disk timestamp format, local time, second precision.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp is a local wall-clock time truncated to whole seconds.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.In(time.Local).Truncate(time.Second)}
}

// ParseTimestamp parses a TimeLayout string in the local zone.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return Timestamp{t}, nil
}

func (t Timestamp) String() string {
	return t.Time.Format(TimeLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Observation is one recorded digest of a file at a point in time.
type Observation struct {
	Digest     string    `json:"hash"`
	ObservedAt Timestamp `json:"timestamp"`
}

func NewObservation(digest string, at time.Time) Observation {
	return Observation{Digest: digest, ObservedAt: NewTimestamp(at)}
}

// Equal compares digests and timestamps at second precision.
func (o Observation) Equal(other Observation) bool {
	return o.Digest == other.Digest && o.ObservedAt.Equal(other.ObservedAt.Time)
}

// History is the chronological list of observations of one path.
// The last element is the committed state.
type History []Observation

// Current returns the most recent observation.
func (h History) Current() (Observation, bool) {
	if len(h) == 0 {
		return Observation{}, false
	}
	return h[len(h)-1], true
}
