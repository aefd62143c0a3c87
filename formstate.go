// Package formstate is the top-level entry point: it loads a form definition,
// builds the live form and hands it to a view.
package formstate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/view"
	"github.com/goliatone/go-formstate/pkg/view/html"
	"github.com/goliatone/go-formstate/pkg/view/prompt"
)

// Document aliases definition.Document for callers that only import the root
// package.
type Document = definition.Document

// Result aliases prompt.Result.
type Result = prompt.Result

// LoadDocument reads a definition from path. When operationID is set, path is
// an OpenAPI document and the definition is derived from the request body of
// that operation; otherwise the file extension picks the format.
func LoadDocument(ctx context.Context, path, operationID string) (Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Document{}, errors.New("formstate: definition path is required")
	}
	if strings.TrimSpace(operationID) == "" {
		return definition.LoadFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("formstate: read %s: %w", path, err)
	}
	return definition.FromOpenAPI(ctx, data, operationID)
}

// NewForm loads path and builds the form it describes.
func NewForm(ctx context.Context, path, operationID string, options ...definition.BuildOption) (*form.Form, error) {
	doc, err := LoadDocument(ctx, path, operationID)
	if err != nil {
		return nil, err
	}
	return definition.Build(doc, options...)
}

// GenerateHTML loads and builds a form, then renders it with the HTML view.
// It is the simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, path, operationID string, options ...html.Option) (string, error) {
	f, err := NewForm(ctx, path, operationID)
	if err != nil {
		return "", err
	}
	return html.Render(f, options...)
}

// Prompt runs an interactive terminal session over f.
func Prompt(ctx context.Context, f *form.Form, options ...prompt.Option) (Result, error) {
	return prompt.New(options...).Run(ctx, f)
}

// NewRegistry returns a view registry with the built-in HTML provider
// registered under html.Name.
func NewRegistry(options ...html.Option) (*view.Registry, error) {
	provider, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return view.NewRegistry(provider)
}
