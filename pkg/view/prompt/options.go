package prompt

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxAttempts is how many times a field is prompted before the session
// moves on with the last value.
const DefaultMaxAttempts = 3

// Theme holds optional message prefixes.
type Theme struct {
	SectionPrefix string
	ErrorPrefix   string
}

// Option configures a Session.
type Option func(*Session)

// WithDriver overrides the survey driver.
func WithDriver(driver Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxAttempts bounds re-prompting of an invalid field. Values below 1 are
// ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithSecretFields marks fields whose input is read with a password prompt.
// Fields whose id contains "password" are secret already.
func WithSecretFields(ids ...string) Option {
	return func(s *Session) {
		for _, id := range ids {
			if id = strings.TrimSpace(id); id != "" {
				s.secret[id] = struct{}{}
			}
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
