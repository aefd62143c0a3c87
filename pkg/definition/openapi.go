package definition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI turns the request body schema of operationID into a definition
// with a single section. Scalar properties become fields sorted by name;
// required properties and schema bounds become rules. Array and object
// properties are skipped.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if len(data) == 0 {
		return Document{}, errors.New("definition: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return Document{}, fmt.Errorf("definition: load openapi document: %w", err)
	}

	op := findOperation(spec, strings.TrimSpace(operationID))
	if op == nil {
		return Document{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(op.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return Document{}, fmt.Errorf("%w: %q", ErrMissingRequestBody, operationID)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	section := SectionDef{ID: operationID, Title: strings.TrimSpace(op.Summary)}
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fd, ok := fieldFromSchema(name, ref.Value)
		if !ok {
			continue
		}
		if _, ok := required[name]; ok {
			fd.Rules = append([]Rule{{Kind: RuleRequired}}, fd.Rules...)
		}
		section.Fields = append(section.Fields, fd)
	}
	if len(section.Fields) == 0 {
		return Document{}, fmt.Errorf("%w: %q has no scalar properties", ErrMissingRequestBody, operationID)
	}
	return Document{Sections: []SectionDef{section}}, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil || operationID == "" {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, src *openapi3.Schema) (FieldDef, bool) {
	var typ string
	switch firstSchemaType(src.Type) {
	case "", "string":
		typ = TypeString
	case "integer":
		typ = TypeInteger
	case "number":
		typ = TypeNumber
	case "boolean":
		typ = TypeBoolean
	default:
		return FieldDef{}, false
	}

	label := strings.TrimSpace(src.Title)
	if label == "" {
		label = name
	}
	fd := FieldDef{ID: name, Name: label, Type: typ, Default: src.Default}

	if src.Min != nil {
		fd.Rules = append(fd.Rules, boundRule(RuleMin, *src.Min, src.ExclusiveMin))
	}
	if src.Max != nil {
		fd.Rules = append(fd.Rules, boundRule(RuleMax, *src.Max, src.ExclusiveMax))
	}
	if src.MinLength != 0 {
		fd.Rules = append(fd.Rules, Rule{Kind: RuleMinLength, Params: map[string]string{
			"value": strconv.FormatUint(src.MinLength, 10),
		}})
	}
	if src.MaxLength != nil {
		fd.Rules = append(fd.Rules, Rule{Kind: RuleMaxLength, Params: map[string]string{
			"value": strconv.FormatUint(*src.MaxLength, 10),
		}})
	}
	if src.Pattern != "" {
		fd.Rules = append(fd.Rules, Rule{Kind: RulePattern, Params: map[string]string{
			"pattern": src.Pattern,
		}})
	}
	return fd, true
}

func boundRule(kind string, value float64, exclusive bool) Rule {
	params := map[string]string{
		"value": strconv.FormatFloat(value, 'f', -1, 64),
	}
	if exclusive {
		params["exclusive"] = "true"
	}
	return Rule{Kind: kind, Params: params}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
