package session

import (
	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/pkg/logging"
)

// Session groups the state owned by one visitor.
type Session struct {
	identity  *Value[Identity]
	identityW *Writer[Identity]
	theme     *Value[Theme]
	themeW    *Writer[Theme]

	Menu   *Menu
	Viewer *Viewer

	logger *zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithTheme sets the initial theme.
func WithTheme(t Theme) Option {
	return func(s *Session) {
		s.themeW.Set(t)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a signed out session with the light theme.
func New(opts ...Option) *Session {
	s := &Session{
		Menu:   NewMenu(),
		Viewer: NewViewer(),
		logger: logging.Default(),
	}
	s.identity, s.identityW = NewValue(Identity{})
	s.theme, s.themeW = NewValue(ThemeLight)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Identity is the observable signed in user.
func (s *Session) Identity() *Value[Identity] {
	return s.identity
}

// Theme is the observable theme.
func (s *Session) Theme() *Value[Theme] {
	return s.theme
}

// SignedIn reports whether a user is signed in.
func (s *Session) SignedIn() bool {
	return s.identity.Get().SignedIn()
}

// SignIn decodes token and makes it the session identity.
func (s *Session) SignIn(token string) (Identity, error) {
	id, err := ParseIdentity(token)
	if err != nil {
		return Identity{}, err
	}
	s.identityW.Set(id)
	s.logger.Debug().Str("sub", id.Subject).Str("email", id.Email).Msg("Signed in")
	return id, nil
}

// SignOut clears the identity.
func (s *Session) SignOut() {
	s.identityW.Set(Identity{})
	s.logger.Debug().Msg("Signed out")
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *Session) ToggleTheme() Theme {
	return s.themeW.Update(Theme.Toggle)
}

// SetTheme sets the theme.
func (s *Session) SetTheme(t Theme) {
	s.themeW.Set(t)
}
