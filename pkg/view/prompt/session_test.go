package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	infoMessages []string
	prompted     []string
	inputPos     int
	passPos      int
	confirmPos   int
	fail         error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.fail != nil {
		return "", s.fail
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.prompted = append(s.prompted, "input:"+cfg.Message)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	s.prompted = append(s.prompted, "password:"+cfg.Message)
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.prompted = append(s.prompted, "confirm:"+cfg.Message)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type signup struct {
	form     *form.Form
	email    *field.Field[string]
	password *field.Field[string]
	age      *field.Field[int]
	terms    *field.Field[bool]
}

func newSignup(t *testing.T) signup {
	t.Helper()
	email := field.New[string]("email", "Email", nil)
	email.AddValidator(validation.Required[string]())
	password := field.New[string]("password", "Password", nil)
	password.AddValidator(validation.MinLength(8))
	upper, err := field.NewCalculated("passwordUpper", "Upper", password, func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.ToUpper(*p)
		return &v
	})
	if err != nil {
		t.Fatalf("NewCalculated: %v", err)
	}
	age := field.New[int]("age", "Age", nil)
	age.AddValidator(validation.GreaterThanOrEqual(18))
	terms := field.Of("terms", "Accept terms", false)

	f := form.New([]*form.Section{
		form.NewSection("account", form.WithTitle("Account"), form.WithFields(email, password, upper)),
		form.NewSection("profile", form.WithFields(age, terms)),
		form.NewSection("extra", form.WithCollapsed(true), form.WithFields(field.Of("nickname", "Nickname", ""))),
	})
	return signup{form: f, email: email, password: password, age: age, terms: terms}
}

func TestSession_CollectsValues(t *testing.T) {
	s := newSignup(t)
	driver := &stubDriver{
		inputs:    []string{"ada@example.com", "36"},
		passwords: []string{"correct horse"},
		confirm:   []bool{true},
	}
	session := New(WithDriver(driver), WithLogger(zaptest.NewLogger(t).Sugar()))

	result, err := session.Run(context.Background(), s.form)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]any{
		"email":         "ada@example.com",
		"password":      "correct horse",
		"passwordUpper": "CORRECT HORSE",
		"age":           36,
		"terms":         true,
		"nickname":      "",
	}
	if diff := cmp.Diff(want, result.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	wantPrompts := []string{"input:Email", "password:Password", "input:Age", "confirm:Accept terms"}
	if diff := cmp.Diff(wantPrompts, driver.prompted); diff != "" {
		t.Fatalf("prompt order (-want +got):\n%s", diff)
	}
	wantInfo := []string{"Account", "Upper: CORRECT HORSE"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages (-want +got):\n%s", diff)
	}
	if s.email.State() != field.Blurred {
		t.Fatalf("email state = %s, want %s", s.email.State(), field.Blurred)
	}
}

func TestSession_RepromptsInvalidField(t *testing.T) {
	s := newSignup(t)
	driver := &stubDriver{
		inputs:    []string{"ada@example.com", "twelve", "12", "20"},
		passwords: []string{"short", "long enough"},
		confirm:   []bool{false},
	}

	result, err := New(WithDriver(driver)).Run(context.Background(), s.form)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, _ := s.password.Value(); got != "long enough" {
		t.Fatalf("password = %q", got)
	}
	if got, _ := s.age.Value(); got != 20 {
		t.Fatalf("age = %d, want 20", got)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	var invalid []string
	for _, msg := range driver.infoMessages {
		if strings.HasPrefix(msg, "Invalid ") {
			invalid = append(invalid, msg)
		}
	}
	want := []string{
		"Invalid Password: Must be at least 8 characters.",
		`Invalid Age: cannot parse "twelve": strconv.Atoi: parsing "twelve": invalid syntax`,
		"Invalid Age: Must be greater than or equal to 18",
	}
	if diff := cmp.Diff(want, invalid); diff != "" {
		t.Fatalf("invalid messages (-want +got):\n%s", diff)
	}
}

func TestSession_BlurPolicyValidatesOncePerAttempt(t *testing.T) {
	s := newSignup(t)
	s.email.SetValidatesWhen(field.ValidateOnBlur)
	validations := 0
	s.email.OnValidate(func([]validation.Error) { validations++ })
	driver := &stubDriver{
		inputs:    []string{"", "ada@example.com", "36"},
		passwords: []string{"long enough"},
		confirm:   []bool{true},
	}

	result, err := New(WithDriver(driver)).Run(context.Background(), s.form)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	// one per blur, one for the final form validation
	if validations != 3 {
		t.Fatalf("email validated %d times, want 3", validations)
	}
	var invalid []string
	for _, msg := range driver.infoMessages {
		if strings.HasPrefix(msg, "Invalid ") {
			invalid = append(invalid, msg)
		}
	}
	if diff := cmp.Diff([]string{"Invalid Email: " + validation.MessageRequired}, invalid); diff != "" {
		t.Fatalf("invalid messages (-want +got):\n%s", diff)
	}
}

func TestSession_GivesUpAfterMaxAttempts(t *testing.T) {
	s := newSignup(t)
	driver := &stubDriver{
		inputs:    []string{"", "", "36"},
		passwords: []string{"long enough"},
		confirm:   []bool{true},
	}

	result, err := New(WithDriver(driver), WithMaxAttempts(2)).Run(context.Background(), s.form)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[string][]string{"email": {validation.MessageRequired}}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_SecretFields(t *testing.T) {
	token := field.New[string]("apiToken", "API token", nil)
	f := form.New([]*form.Section{form.NewSection("auth", form.WithFields(token))})
	driver := &stubDriver{passwords: []string{"s3cr3t"}}

	if _, err := New(WithDriver(driver), WithSecretFields("apiToken")).Run(context.Background(), f); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"password:API token"}, driver.prompted); diff != "" {
		t.Fatalf("prompts (-want +got):\n%s", diff)
	}
}

func TestSession_Aborted(t *testing.T) {
	s := newSignup(t)
	driver := &stubDriver{fail: ErrAborted}

	_, err := New(WithDriver(driver)).Run(context.Background(), s.form)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("error = %v, want ErrAborted", err)
	}
}

func TestSession_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithDriver(&stubDriver{})).Run(ctx, newSignup(t).form)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
