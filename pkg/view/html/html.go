// Package html renders form snapshots as HTML fragments. Templates are pongo2
// templates, user-visible strings pass through a strict bluemonday policy, and
// an optional go-theme configuration adds theme attributes and CSS variables.
package html

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/view"
)

// Name is the provider name used for registry lookups.
const Name = "html"

const (
	formTemplate    = "form.html"
	sectionTemplate = "section.html"
	fieldTemplate   = "field.html"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

// Option configures the provider.
type Option func(*config)

type config struct {
	templates fs.FS
	theme     *theme.RendererConfig
}

// WithTemplates loads templates from fsys before falling back to the
// built-in ones. Any of form.html, section.html and field.html may be
// overridden.
func WithTemplates(fsys fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = fsys
	}
}

// WithTheme adds data-theme, data-variant and a CSS variable style attribute
// to the rendered form.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Fragment is the view.Handle produced by the provider.
type Fragment struct {
	id   string
	HTML string
}

func (f Fragment) ID() string { return f.id }

// Provider renders sections and fields into HTML fragments.
type Provider struct {
	form    *pongo2.Template
	section *pongo2.Template
	field   *pongo2.Template
	theme   *theme.RendererConfig
	policy  *bluemonday.Policy
}

var _ view.Provider = (*Provider)(nil)

// New compiles the templates and returns a ready provider.
func New(opts ...Option) (*Provider, error) {
	cfg := &config{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	builtin, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("html: load default templates: %w", err)
	}
	var loaders []pongo2.TemplateLoader
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	loaders = append(loaders, pongo2.NewFSLoader(builtin))
	set := pongo2.NewSet("formstate", loaders...)

	p := &Provider{
		theme:  cfg.theme,
		policy: bluemonday.StrictPolicy(),
	}
	for name, dst := range map[string]**pongo2.Template{
		formTemplate:    &p.form,
		sectionTemplate: &p.section,
		fieldTemplate:   &p.field,
	} {
		tmpl, err := set.FromFile(name)
		if err != nil {
			return nil, fmt.Errorf("html: load template %q: %w", name, err)
		}
		*dst = tmpl
	}
	return p, nil
}

func (p *Provider) Name() string { return Name }

// SectionView renders the section header.
func (p *Provider) SectionView(section form.SectionSnapshot) (view.Handle, error) {
	out, err := p.section.Execute(pongo2.Context{"section": p.sectionContext(section)})
	if err != nil {
		return nil, fmt.Errorf("html: render section %q: %w", section.ID, err)
	}
	return Fragment{id: section.ID, HTML: strings.TrimSpace(out)}, nil
}

// FieldView renders a labelled input with the field's cached errors.
func (p *Provider) FieldView(section form.SectionSnapshot, fd form.FieldSnapshot) (view.Handle, error) {
	messages := make([]string, 0, len(fd.Errors))
	for _, msg := range fd.Errors {
		messages = append(messages, p.clean(msg))
	}
	ctx := pongo2.Context{
		"section": p.sectionContext(section),
		"field": map[string]any{
			"id":       p.clean(fd.ID),
			"name":     p.clean(fd.Name),
			"value":    p.clean(formatValue(fd.Value)),
			"state":    string(fd.State),
			"readOnly": fd.ReadOnly,
			"errors":   messages,
		},
	}
	out, err := p.field.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("html: render field %q: %w", fd.ID, err)
	}
	return Fragment{id: fd.ID, HTML: strings.TrimSpace(out)}, nil
}

// Render walks f and returns the complete form fragment. Fields of collapsed
// sections are omitted from the output.
func (p *Provider) Render(f *form.Form) (string, error) {
	views, err := view.Walk(f, p)
	if err != nil {
		return "", err
	}
	snap := f.Snapshot()
	sections := make([]map[string]any, 0, len(views))
	for i, sv := range views {
		fields := make([]string, 0, len(sv.Fields))
		for _, h := range sv.Fields {
			fields = append(fields, fragmentHTML(h))
		}
		sections = append(sections, map[string]any{
			"id":        p.clean(snap.Sections[i].ID),
			"collapsed": snap.Sections[i].Collapsed,
			"header":    fragmentHTML(sv.Section),
			"fields":    fields,
		})
	}
	out, err := p.form.Execute(pongo2.Context{
		"sections": sections,
		"theme":    themeContext(p.theme),
	})
	if err != nil {
		return "", fmt.Errorf("html: render form: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Render is a shortcut for New followed by Provider.Render.
func Render(f *form.Form, opts ...Option) (string, error) {
	p, err := New(opts...)
	if err != nil {
		return "", err
	}
	return p.Render(f)
}

func (p *Provider) sectionContext(section form.SectionSnapshot) map[string]any {
	return map[string]any{
		"id":          p.clean(section.ID),
		"title":       p.clean(section.Title),
		"collapsible": section.Collapsible,
		"collapsed":   section.Collapsed,
	}
}

// clean strips markup and escapes the remaining text, so templates print the
// result with the safe filter.
func (p *Provider) clean(raw string) string {
	return p.policy.Sanitize(strings.TrimSpace(raw))
}

func fragmentHTML(h view.Handle) string {
	if f, ok := h.(Fragment); ok {
		return f.HTML
	}
	return ""
}

func formatValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
