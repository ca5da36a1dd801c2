// Package views declares what the access flow needs from a user interface.
// Use cases only ever redraw through these ports.
package views

// FieldView highlights one input field
type FieldView interface {
	RedrawOk()
	RedrawNeutral()
}

// ButtonView highlights the submit control
type ButtonView interface {
	FieldView
	RedrawBad()
}

// NotificationView is the message panel of a form
type NotificationView interface {
	Show(notification Notification)
	Hide()
}

// WindowView navigates between the screens of the application
type WindowView interface {
	RedrawToLogin()
	RedrawForMainInteractions()
}

// LoginForm groups the views of the login screen
type LoginForm struct {
	Username     FieldView
	Password     FieldView
	Notification NotificationView
	Window       WindowView
}

// RegistrationForm groups the views of the registration screen
type RegistrationForm struct {
	Username     FieldView
	Password     FieldView
	Weight       FieldView
	Target       FieldView
	Glass        FieldView
	Submit       ButtonView
	Notification NotificationView
	Window       WindowView
}
