// Package prompt drives a form from an interactive terminal. Each writable
// field goes through the same focus, change and blur events a graphical
// presentation layer would dispatch, so validation policies and dependency
// revalidation behave exactly as they would there.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Result is what a session collected.
type Result struct {
	Values map[string]any      `json:"values"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// Session prompts for every writable field of the visible sections.
type Session struct {
	driver      Driver
	maxAttempts int
	secret      map[string]struct{}
	theme       Theme
	logger      *zap.SugaredLogger
}

// New constructs a session with defaults (survey driver, three attempts).
func New(options ...Option) *Session {
	s := &Session{
		driver:      &SurveyDriver{},
		maxAttempts: DefaultMaxAttempts,
		secret:      make(map[string]struct{}),
		theme:       Theme{ErrorPrefix: "Invalid"},
		logger:      zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run walks the form in order. Collapsed sections are skipped and read-only
// fields are printed rather than prompted. The returned result holds the form
// values and the errors of a final full validation.
func (s *Session) Run(ctx context.Context, f *form.Form) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("prompt: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if s.driver == nil {
		return Result{}, ErrNoDriver
	}

	for _, section := range f.Sections() {
		if section.Collapsed() {
			s.logger.Debugw("prompt: skipping collapsed section", "section", section.ID())
			continue
		}
		if title := strings.TrimSpace(section.Title()); title != "" {
			if err := s.driver.Info(ctx, s.theme.SectionPrefix+title); err != nil {
				return Result{}, err
			}
		}
		for _, fd := range section.Fields() {
			if err := s.promptField(ctx, fd); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{Values: f.Values(), Errors: f.Validate()}, nil
}

func (s *Session) promptField(ctx context.Context, fd field.Untyped) error {
	if fd.ReadOnly() {
		return s.driver.Info(ctx, fmt.Sprintf("%s: %s", fd.Name(), display(fd.AnyValue())))
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		fd.HandleEvent(field.EventFocus)
		value, err := s.ask(ctx, fd)
		var parseErr *parseError
		switch {
		case errors.As(err, &parseErr):
		case err != nil:
			return err
		default:
			err = fd.SetAny(value)
		}
		fd.HandleEvent(field.EventBlur)

		if err != nil {
			if infoErr := s.invalid(ctx, fd, err.Error()); infoErr != nil {
				return infoErr
			}
			continue
		}
		errs := s.fieldErrors(fd)
		if len(errs) == 0 {
			return nil
		}
		for _, msg := range validation.Messages(errs) {
			if infoErr := s.invalid(ctx, fd, msg); infoErr != nil {
				return infoErr
			}
		}
	}
	s.logger.Warnw("prompt: attempts exhausted", "field", fd.ID(), "attempts", s.maxAttempts)
	return nil
}

// fieldErrors validates fd unless the blur event just did.
func (s *Session) fieldErrors(fd field.Untyped) []validation.Error {
	if fd.ValidatesWhen() == field.ValidateOnBlur {
		return fd.LastValidationErrors()
	}
	return fd.Validate()
}

func (s *Session) invalid(ctx context.Context, fd field.Untyped, msg string) error {
	return s.driver.Info(ctx, fmt.Sprintf("%s %s: %s", s.theme.ErrorPrefix, fd.Name(), msg))
}

type parseError struct {
	input string
	err   error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", e.input, e.err)
}

// ask prompts according to the field's value type and returns the parsed
// value. Empty input on a non-string field clears it.
func (s *Session) ask(ctx context.Context, fd field.Untyped) (any, error) {
	current := fd.AnyValue()
	switch fd.Zero().(type) {
	case bool:
		def, _ := current.(bool)
		return s.driver.Confirm(ctx, ConfirmConfig{Message: fd.Name(), Default: def})
	case string:
		cfg := InputConfig{Message: fd.Name(), Default: display(current)}
		if s.isSecret(fd.ID()) {
			cfg.Default = ""
			return s.driver.Password(ctx, cfg)
		}
		return s.driver.Input(ctx, cfg)
	}

	raw, err := s.driver.Input(ctx, InputConfig{Message: fd.Name(), Default: display(current)})
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := parseAs(fd.Zero(), raw)
	if err != nil {
		return nil, &parseError{input: raw, err: err}
	}
	return value, nil
}

func parseAs(zero any, raw string) (any, error) {
	switch zero.(type) {
	case int:
		return strconv.Atoi(raw)
	case int64:
		return strconv.ParseInt(raw, 10, 64)
	case float64:
		return strconv.ParseFloat(raw, 64)
	default:
		return nil, fmt.Errorf("unsupported value type %T", zero)
	}
}

func (s *Session) isSecret(id string) bool {
	if _, ok := s.secret[id]; ok {
		return true
	}
	return strings.Contains(strings.ToLower(id), "password")
}

func display(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
