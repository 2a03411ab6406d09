package domain

import "fmt"

// Profile is the user record returned by the backend next to the token.
// Its shape is owned by the backend.
type Profile map[string]any

func (p Profile) String(key string) string {
	value, ok := p[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

type Session struct {
	Token   string
	Profile Profile
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
