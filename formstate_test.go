package formstate

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/view"
	"github.com/goliatone/go-formstate/pkg/view/html"
	"github.com/goliatone/go-formstate/pkg/view/prompt"
)

func TestNewForm_FromDefinition(t *testing.T) {
	f, err := NewForm(context.Background(), filepath.Join("testdata", "contact.yaml"), "")
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	if err := f.Update(map[string]any{"name": "ada", "email": "ada@example.com"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := map[string]any{"name": "ada", "email": "ada@example.com", "greeting": "ADA"}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestNewForm_FromOpenAPI(t *testing.T) {
	f, err := NewForm(context.Background(), filepath.Join("testdata", "orders.openapi.json"), "createOrder")
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	want := map[string]any{"quantity": 1, "sku": nil}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	want2 := map[string][]string{"sku": {"Is required."}}
	if diff := cmp.Diff(want2, f.Validate()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDocument_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := LoadDocument(ctx, " ", ""); err == nil {
		t.Fatalf("expected an error for an empty path")
	}
	if _, err := LoadDocument(ctx, filepath.Join("testdata", "missing.json"), "createOrder"); err == nil {
		t.Fatalf("expected an error for a missing OpenAPI document")
	}
	_, err := LoadDocument(ctx, filepath.Join("testdata", "orders.openapi.json"), "deleteOrder")
	if !errors.Is(err, definition.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), filepath.Join("testdata", "contact.yaml"), "")
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	for _, want := range []string{`data-section-id="contact"`, `<label for="email">Email</label>`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	provider, err := registry.Get(html.Name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	f, err := NewForm(context.Background(), filepath.Join("testdata", "contact.yaml"), "")
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	views, err := view.Walk(f, provider)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(views) != 1 || len(views[0].Fields) != 3 {
		t.Fatalf("unexpected views: %+v", views)
	}
}

type answers map[string]string

func (a answers) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	return a[cfg.Message], nil
}

func (a answers) Password(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	return a.Input(ctx, cfg)
}

func (a answers) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, nil
}

func (a answers) Info(context.Context, string) error { return nil }

func TestPrompt(t *testing.T) {
	f, err := NewForm(context.Background(), filepath.Join("testdata", "contact.yaml"), "")
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	result, err := Prompt(context.Background(), f, prompt.WithDriver(answers{
		"Name":  "grace",
		"Email": "grace@example.com",
	}))
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	want := Result{Values: map[string]any{"name": "grace", "email": "grace@example.com", "greeting": "GRACE"}}
	if diff := cmp.Diff(want, result, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}
