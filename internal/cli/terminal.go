package cli

import (
	"sync"

	"github.com/mcoot/aqua-access/internal/views"
)

// field prints the highlight of one input
type field struct {
	out  *Output
	name string
}

func (f field) RedrawOk()      { f.out.Event(Event{View: f.name, State: "ok"}) }
func (f field) RedrawNeutral() { f.out.Event(Event{View: f.name, State: "neutral"}) }
func (f field) RedrawBad()     { f.out.Event(Event{View: f.name, State: "bad"}) }

type notification struct {
	out *Output
}

func (n notification) Show(shown views.Notification) {
	n.out.Event(Event{
		View:   "notification",
		State:  shown.Notice.Severity().String(),
		Notice: shown.Notice.String(),
		Text:   shown.Text(),
	})
}

func (n notification) Hide() {
	n.out.Event(Event{View: "notification", State: "hidden"})
}

// window prints navigation and lets a command wait for the main screen
type window struct {
	out  *Output
	once sync.Once
	main chan struct{}
}

func newWindow(out *Output) *window {
	return &window{out: out, main: make(chan struct{})}
}

func (w *window) RedrawToLogin() {
	w.out.Event(Event{View: "window", State: "login"})
}

func (w *window) RedrawForMainInteractions() {
	w.out.Event(Event{View: "window", State: "main"})
	w.once.Do(func() { close(w.main) })
}

// Main is closed once the main screen has been shown
func (w *window) Main() <-chan struct{} {
	return w.main
}

func newLoginForm(out *Output) (views.LoginForm, *window) {
	w := newWindow(out)
	return views.LoginForm{
		Username:     field{out: out, name: "username"},
		Password:     field{out: out, name: "password"},
		Notification: notification{out: out},
		Window:       w,
	}, w
}

func newRegistrationForm(out *Output) (views.RegistrationForm, *window) {
	w := newWindow(out)
	return views.RegistrationForm{
		Username:     field{out: out, name: "username"},
		Password:     field{out: out, name: "password"},
		Weight:       field{out: out, name: "weight"},
		Target:       field{out: out, name: "target"},
		Glass:        field{out: out, name: "glass"},
		Submit:       field{out: out, name: "submit"},
		Notification: notification{out: out},
		Window:       w,
	}, w
}
