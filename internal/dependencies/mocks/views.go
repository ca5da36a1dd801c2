package mocks

import (
	"sync"

	"github.com/mcoot/aqua-access/internal/views"
)

// Field states recorded by MockField and MockButton
const (
	StateUntouched = "untouched"
	StateOk        = "ok"
	StateNeutral   = "neutral"
	StateBad       = "bad"
)

// MockField records redraws of a field or button
type MockField struct {
	mu      sync.Mutex
	state   string
	redraws int
}

// Ensure MockField implements ButtonView
var _ views.ButtonView = (*MockField)(nil)

// NewMockField creates a field nobody has redrawn yet
func NewMockField() *MockField {
	return &MockField{state: StateUntouched}
}

func (f *MockField) RedrawOk()      { f.set(StateOk) }
func (f *MockField) RedrawNeutral() { f.set(StateNeutral) }
func (f *MockField) RedrawBad()     { f.set(StateBad) }

func (f *MockField) set(state string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
	f.redraws++
}

// State returns the last drawn state
func (f *MockField) State() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Redraws returns how many times the field was redrawn
func (f *MockField) Redraws() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.redraws
}

// MockNotification records what a notification panel shows
type MockNotification struct {
	mu      sync.Mutex
	visible bool
	current views.Notification
	shown   []views.Notice
}

// Ensure MockNotification implements NotificationView
var _ views.NotificationView = (*MockNotification)(nil)

// NewMockNotification creates a hidden notification panel
func NewMockNotification() *MockNotification {
	return &MockNotification{}
}

func (n *MockNotification) Show(notification views.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = true
	n.current = notification
	n.shown = append(n.shown, notification.Notice)
}

func (n *MockNotification) Hide() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = false
	n.current = views.Notification{}
}

// Visible reports whether a notice is on screen
func (n *MockNotification) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// Current returns the notification on screen; ok is false when hidden
func (n *MockNotification) Current() (views.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.visible
}

// Shown lists every notice shown so far, in order
func (n *MockNotification) Shown() []views.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]views.Notice(nil), n.shown...)
}

// Window locations recorded by MockWindow
const (
	LocationCurrent = "current"
	LocationLogin   = "login"
	LocationMain    = "main"
)

// MockWindow records navigation
type MockWindow struct {
	mu       sync.Mutex
	location string
}

// Ensure MockWindow implements WindowView
var _ views.WindowView = (*MockWindow)(nil)

// NewMockWindow creates a window that has not navigated
func NewMockWindow() *MockWindow {
	return &MockWindow{location: LocationCurrent}
}

func (w *MockWindow) RedrawToLogin() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = LocationLogin
}

func (w *MockWindow) RedrawForMainInteractions() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = LocationMain
}

// Location returns where the window navigated last
func (w *MockWindow) Location() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.location
}

// MockLoginForm bundles recording views for the login screen
type MockLoginForm struct {
	Username     *MockField
	Password     *MockField
	Notification *MockNotification
	Window       *MockWindow
}

// NewMockLoginForm creates a login form of fresh recording views
func NewMockLoginForm() *MockLoginForm {
	return &MockLoginForm{
		Username:     NewMockField(),
		Password:     NewMockField(),
		Notification: NewMockNotification(),
		Window:       NewMockWindow(),
	}
}

// Views returns the form as the ports use cases draw on
func (f *MockLoginForm) Views() views.LoginForm {
	return views.LoginForm{
		Username:     f.Username,
		Password:     f.Password,
		Notification: f.Notification,
		Window:       f.Window,
	}
}

// MockRegistrationForm bundles recording views for the registration screen
type MockRegistrationForm struct {
	Username     *MockField
	Password     *MockField
	Weight       *MockField
	Target       *MockField
	Glass        *MockField
	Submit       *MockField
	Notification *MockNotification
	Window       *MockWindow
}

// NewMockRegistrationForm creates a registration form of fresh recording views
func NewMockRegistrationForm() *MockRegistrationForm {
	return &MockRegistrationForm{
		Username:     NewMockField(),
		Password:     NewMockField(),
		Weight:       NewMockField(),
		Target:       NewMockField(),
		Glass:        NewMockField(),
		Submit:       NewMockField(),
		Notification: NewMockNotification(),
		Window:       NewMockWindow(),
	}
}

// Views returns the form as the ports use cases draw on
func (f *MockRegistrationForm) Views() views.RegistrationForm {
	return views.RegistrationForm{
		Username:     f.Username,
		Password:     f.Password,
		Weight:       f.Weight,
		Target:       f.Target,
		Glass:        f.Glass,
		Submit:       f.Submit,
		Notification: f.Notification,
		Window:       f.Window,
	}
}
