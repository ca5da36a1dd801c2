package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Output handles formatting output based on the configured format. It is
// safe for concurrent use since timers redraw views from their own
// goroutines.
type Output struct {
	format string

	mu sync.Mutex
	w  io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Event is one redraw of a view
type Event struct {
	View   string `json:"view"`
	State  string `json:"state"`
	Notice string `json:"notice,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Result is the final answer of a command
type Result struct {
	Command  string `json:"command"`
	Outcome  string `json:"outcome"`
	Username string `json:"username,omitempty"`
}

// Event prints a view redraw as one line
func (o *Output) Event(e Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == "json" {
		data, _ := json.Marshal(e)
		fmt.Fprintln(o.w, string(data))
		return
	}

	switch {
	case e.Text != "":
		fmt.Fprintf(o.w, "%s [%s]: %s\n", e.View, e.State, e.Text)
	default:
		fmt.Fprintf(o.w, "%s: %s\n", e.View, e.State)
	}
}

// Print outputs a command result
func (o *Output) Print(r Result) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == "json" {
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(r)
		return
	}

	if r.Username != "" {
		fmt.Fprintf(o.w, "%s %s: %s\n", r.Command, r.Username, r.Outcome)
		return
	}
	fmt.Fprintf(o.w, "%s: %s\n", r.Command, r.Outcome)
}
