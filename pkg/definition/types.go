// Package definition describes forms declaratively and compiles the
// descriptions into live form.Form values. Definitions load from YAML, TOML,
// JSON, or the request body schema of an OpenAPI operation.
package definition

// Field value types.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Rule kinds. Numeric bounds and length limits read Params["value"];
// RuleMin and RuleMax also honour Params["exclusive"] = "true". Pattern rules
// read Params["pattern"], character rules Params["characters"] and cross-field
// rules Params["field"].
const (
	RuleRequired          = "required"
	RuleMin               = "min"
	RuleMax               = "max"
	RuleExclusiveMin      = "exclusiveMin"
	RuleExclusiveMax      = "exclusiveMax"
	RuleMinLength         = "minLength"
	RuleMaxLength         = "maxLength"
	RuleExactLength       = "exactLength"
	RulePattern           = "pattern"
	RuleInvalidCharacters = "invalidCharacters"
	RuleOnlyCharacters    = "onlyCharacters"
	RuleEqualsField       = "equalsField"
	RuleNotContainsField  = "notContainsField"
)

// Derivation kinds for calculated fields.
const (
	DeriveUppercase = "uppercase"
	DeriveLowercase = "lowercase"
	DeriveConcat    = "concat"
	DeriveSum       = "sum"
)

// Document is the root of a form definition.
type Document struct {
	Sections []SectionDef `json:"sections" yaml:"sections" toml:"sections"`
}

// SectionDef describes one section. Collapsible defaults to true.
type SectionDef struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Collapsible *bool      `json:"collapsible,omitempty" yaml:"collapsible,omitempty" toml:"collapsible,omitempty"`
	Collapsed   bool       `json:"collapsed,omitempty" yaml:"collapsed,omitempty" toml:"collapsed,omitempty"`
	Fields      []FieldDef `json:"fields" yaml:"fields" toml:"fields"`
}

// FieldDef describes one field. A field with Derive set is calculated and
// ignores Default.
type FieldDef struct {
	ID            string     `json:"id" yaml:"id" toml:"id"`
	Name          string     `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type          string     `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Default       any        `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	ValidatesWhen string     `json:"validatesWhen,omitempty" yaml:"validatesWhen,omitempty" toml:"validatesWhen,omitempty"`
	Rules         []Rule     `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
	Derive        *DeriveDef `json:"derive,omitempty" yaml:"derive,omitempty" toml:"derive,omitempty"`
}

// Rule is a single validation constraint.
type Rule struct {
	Kind    string            `json:"kind" yaml:"kind" toml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

// DeriveDef computes a field from one or two earlier fields.
type DeriveDef struct {
	Kind      string   `json:"kind" yaml:"kind" toml:"kind"`
	Sources   []string `json:"sources" yaml:"sources" toml:"sources"`
	Separator string   `json:"separator,omitempty" yaml:"separator,omitempty" toml:"separator,omitempty"`
}
