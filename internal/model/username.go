package model

// Username is a validated, non-empty account name
type Username struct {
	text string
}

// NewUsername creates a Username, rejecting empty text
func NewUsername(text string) (Username, error) {
	if text == "" {
		return Username{}, ErrEmptyUsername
	}
	return Username{text: text}, nil
}

// Text returns the username as typed
func (u Username) Text() string {
	return u.text
}

// UsernameKind tags the variant held by an AnyUsername
type UsernameKind int

const (
	UsernameInvalid UsernameKind = iota
	UsernameValid
)

// AnyUsername is either a valid Username or the rejected raw text
type AnyUsername struct {
	Kind UsernameKind
	Text string
}

// UsernameWith parses raw field text. It never fails: empty text yields
// the invalid variant carrying the rejected text.
func UsernameWith(text string) AnyUsername {
	if _, err := NewUsername(text); err != nil {
		return AnyUsername{Kind: UsernameInvalid, Text: text}
	}
	return AnyUsername{Kind: UsernameValid, Text: text}
}

// Username returns the validated username if this is the valid variant
func (u AnyUsername) Username() (Username, bool) {
	if u.Kind != UsernameValid {
		return Username{}, false
	}
	return Username{text: u.Text}, true
}

// IsValid reports whether the username passed validation
func (u AnyUsername) IsValid() bool {
	return u.Kind == UsernameValid
}
