package definition

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func loadUsersSpec(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "users.openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestFromOpenAPI_RequestBody(t *testing.T) {
	doc, err := FromOpenAPI(context.Background(), loadUsersSpec(t), "createUser")
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}

	want := Document{Sections: []SectionDef{{
		ID:    "createUser",
		Title: "Create user",
		Fields: []FieldDef{
			{ID: "admin", Name: "admin", Type: TypeBoolean},
			{ID: "age", Name: "age", Type: TypeInteger, Rules: []Rule{
				{Kind: RuleRequired},
				{Kind: RuleMin, Params: map[string]string{"value": "18"}},
				{Kind: RuleMax, Params: map[string]string{"value": "130", "exclusive": "true"}},
			}},
			{ID: "score", Name: "score", Type: TypeNumber, Default: 1.5},
			{ID: "username", Name: "Username", Type: TypeString, Rules: []Rule{
				{Kind: RuleRequired},
				{Kind: RuleMinLength, Params: map[string]string{"value": "3"}},
				{Kind: RuleMaxLength, Params: map[string]string{"value": "20"}},
				{Kind: RulePattern, Params: map[string]string{"pattern": "^[a-z0-9_]+$"}},
			}},
		},
	}}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPI_BuildsForm(t *testing.T) {
	doc, err := FromOpenAPI(context.Background(), loadUsersSpec(t), "createUser")
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}
	f, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := f.Update(map[string]any{"username": "Ada Lovelace", "age": 130}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := map[string][]string{
		"username": {"Has an invalid format."},
		"age":      {"Must be less than 130"},
	}
	if diff := cmp.Diff(want, f.Validate()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	if err := f.Update(map[string]any{"username": "ada_l", "age": 36}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := f.Validate(); len(got) != 0 {
		t.Fatalf("expected a valid form, got %v", got)
	}
	if got := f.Values()["score"]; got != 1.5 {
		t.Fatalf("expected score default 1.5, got %v", got)
	}
}

func TestFromOpenAPI_Errors(t *testing.T) {
	spec := loadUsersSpec(t)

	if _, err := FromOpenAPI(context.Background(), spec, "deleteUser"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}

	noBody := []byte(`openapi: 3.0.3
info: {title: Ping, version: "1"}
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "200": {description: ok}
`)
	if _, err := FromOpenAPI(context.Background(), noBody, "ping"); !errors.Is(err, ErrMissingRequestBody) {
		t.Fatalf("expected ErrMissingRequestBody, got %v", err)
	}

	if _, err := FromOpenAPI(context.Background(), nil, "createUser"); err == nil {
		t.Fatalf("expected an error for an empty document")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FromOpenAPI(ctx, spec, "createUser"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
