package model

// CredentialsKey identifies credentials by their texts, not their identity
type CredentialsKey struct {
	Username string
	Password string
}

// Credentials pairs a possibly invalid username with a password of any power
type Credentials struct {
	Username AnyUsername
	Password Password
}

// CredentialsWith parses raw username and password texts
func CredentialsWith(usernameText, passwordText string) Credentials {
	return Credentials{
		Username: UsernameWith(usernameText),
		Password: PasswordWith(passwordText),
	}
}

// Key returns the text pair used to compare credentials
func (c Credentials) Key() CredentialsKey {
	return CredentialsKey{Username: c.Username.Text, Password: c.Password.Text}
}

// Strong returns the credentials as StrongCredentials when the username is
// valid and the password has no weakness reasons
func (c Credentials) Strong() (StrongCredentials, error) {
	username, ok := c.Username.Username()
	if !ok || c.Password.IsWeak() {
		return StrongCredentials{}, ErrWeakCredentials
	}
	return StrongCredentials{Username: username, Password: c.Password}, nil
}

// StrongCredentials are credentials that may be sent to the backend
type StrongCredentials struct {
	Username Username
	Password Password
}

// Credentials converts back to the general form
func (c StrongCredentials) Credentials() Credentials {
	return Credentials{
		Username: AnyUsername{Kind: UsernameValid, Text: c.Username.Text()},
		Password: c.Password,
	}
}
