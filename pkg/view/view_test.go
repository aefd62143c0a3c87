package view

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
)

type stubHandle string

func (h stubHandle) ID() string { return string(h) }

type stubProvider struct {
	name    string
	visited []string
	rename  string
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) SectionView(section form.SectionSnapshot) (Handle, error) {
	p.visited = append(p.visited, "section:"+section.ID)
	return stubHandle(section.ID), nil
}

func (p *stubProvider) FieldView(section form.SectionSnapshot, fd form.FieldSnapshot) (Handle, error) {
	p.visited = append(p.visited, "field:"+section.ID+"/"+fd.ID)
	if fd.ID == p.rename {
		return stubHandle("other"), nil
	}
	return stubHandle(fd.ID), nil
}

func sampleForm() *form.Form {
	return form.New([]*form.Section{
		form.NewSection("account", form.WithFields(
			field.Of("email", "Email", ""),
			field.Of("password", "Password", ""),
		)),
		form.NewSection("extra", form.WithCollapsed(true), form.WithFields(
			field.Of("nickname", "Nickname", ""),
		)),
	})
}

func TestWalk_VisitsInOrder(t *testing.T) {
	p := &stubProvider{name: "stub"}
	views, err := Walk(sampleForm(), p)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{
		"section:account",
		"field:account/email",
		"field:account/password",
		"section:extra",
		"field:extra/nickname",
	}
	if diff := cmp.Diff(want, p.visited); diff != "" {
		t.Fatalf("visit order (-want +got):\n%s", diff)
	}
	if len(views) != 2 || len(views[0].Fields) != 2 || views[1].Section.ID() != "extra" {
		t.Fatalf("unexpected views: %#v", views)
	}
}

func TestWalk_RejectsMismatchedHandle(t *testing.T) {
	_, err := Walk(sampleForm(), &stubProvider{name: "stub", rename: "password"})
	if !errors.Is(err, ErrHandleID) {
		t.Fatalf("error = %v, want ErrHandleID", err)
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r, err := NewRegistry(&stubProvider{name: "html"}, &stubProvider{name: "prompt"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := r.Register(&stubProvider{name: "html"}); !errors.Is(err, ErrDuplicateProvider) {
		t.Fatalf("duplicate Register error = %v, want ErrDuplicateProvider", err)
	}
	if err := r.Register(&stubProvider{name: " "}); !errors.Is(err, ErrProviderName) {
		t.Fatalf("unnamed Register error = %v, want ErrProviderName", err)
	}
	if err := r.Register(nil); !errors.Is(err, ErrProviderName) {
		t.Fatalf("nil Register error = %v, want ErrProviderName", err)
	}
	if got, err := r.Get("prompt"); err != nil || got.Name() != "prompt" {
		t.Fatalf("Get(prompt) = %v, %v", got, err)
	}
	if diff := cmp.Diff([]string{"html", "prompt"}, r.Names()); diff != "" {
		t.Fatalf("Names() (-want +got):\n%s", diff)
	}
}

func TestRegistry_UnknownProviderSuggestsName(t *testing.T) {
	r, err := NewRegistry(&stubProvider{name: "html"}, &stubProvider{name: "prompt"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	_, err = r.Get("promt")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("error = %v, want ErrUnknownProvider", err)
	}
	var usage *field.UsageError
	if !errors.As(err, &usage) || usage.Suggestion != "prompt" {
		t.Fatalf("suggestion = %+v, want prompt", usage)
	}

	_, err = r.Get("markdown")
	if !errors.As(err, &usage) || usage.Suggestion != "" {
		t.Fatalf("unexpected suggestion for a distant name: %+v", usage)
	}
}

func TestRegistry_WalkByName(t *testing.T) {
	p := &stubProvider{name: "stub"}
	r, err := NewRegistry(p)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	views, err := r.Walk(sampleForm(), "stub")
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(views) != 2 || len(p.visited) != 5 {
		t.Fatalf("views = %d, visited = %v", len(views), p.visited)
	}
	if _, err := r.Walk(sampleForm(), "missing"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("error = %v, want ErrUnknownProvider", err)
	}
}
