package definition

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func (b *builder) applyRule(n *node, rule Rule) error {
	kind := strings.TrimSpace(rule.Kind)
	var custom []validation.Error
	if msg := strings.TrimSpace(rule.Message); msg != "" {
		custom = append(custom, validation.NewError(msg))
	}

	switch n.typ {
	case TypeString:
		return b.stringRule(n, kind, rule, custom)
	case TypeInteger:
		return orderedRule(b, n, kind, rule, custom, strconv.Atoi)
	case TypeNumber:
		return orderedRule(b, n, kind, rule, custom, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
	case TypeBoolean:
		target := n.f.(field.Typed[bool])
		switch kind {
		case RuleRequired:
			field.AddValidator(target, validation.Required[bool](custom...))
			return nil
		case RuleEqualsField:
			return equalsField(b, target, rule, custom)
		}
	}
	return fmt.Errorf("%w: %q for %s fields", ErrUnknownRule, kind, n.typ)
}

func (b *builder) stringRule(n *node, kind string, rule Rule, custom []validation.Error) error {
	target := n.f.(field.Typed[string])
	var v validation.Validator[string]
	switch kind {
	case RuleRequired:
		v = validation.Required[string](custom...)
	case RuleMinLength, RuleMaxLength, RuleExactLength:
		size, err := intParam(rule, "value")
		if err != nil {
			return err
		}
		switch kind {
		case RuleMinLength:
			v = validation.MinLength(size, custom...)
		case RuleMaxLength:
			v = validation.MaxLength(size, custom...)
		default:
			v = validation.ExactLength(size, custom...)
		}
	case RulePattern:
		raw, err := param(rule, "pattern")
		if err != nil {
			return err
		}
		re, err := regexp.Compile(raw)
		if err != nil {
			return fmt.Errorf("%w: pattern: %v", ErrInvalidParam, err)
		}
		v = validation.Pattern(re, custom...)
	case RuleInvalidCharacters, RuleOnlyCharacters:
		set, err := param(rule, "characters")
		if err != nil {
			return err
		}
		if kind == RuleInvalidCharacters {
			v = validation.InvalidCharacters(set, custom...)
		} else {
			v = validation.OnlyCharacters(set, custom...)
		}
	case RuleEqualsField:
		return equalsField(b, target, rule, custom)
	case RuleNotContainsField:
		other, name, err := reference[string](b, rule)
		if err != nil {
			return err
		}
		msg := pick(custom, fmt.Sprintf("Must not contain %s.", name))
		return field.ValidateWith(target, other, func(value, o *string) []validation.Error {
			if value == nil || o == nil || strings.TrimSpace(*o) == "" {
				return nil
			}
			if strings.Contains(strings.ToLower(*value), strings.ToLower(*o)) {
				return []validation.Error{msg}
			}
			return nil
		})
	default:
		return fmt.Errorf("%w: %q for string fields", ErrUnknownRule, kind)
	}
	field.AddValidator(target, v)
	return nil
}

func orderedRule[V int | float64](b *builder, n *node, kind string, rule Rule, custom []validation.Error, parse func(string) (V, error)) error {
	target := n.f.(field.Typed[V])
	switch kind {
	case RuleRequired:
		field.AddValidator(target, validation.Required[V](custom...))
		return nil
	case RuleEqualsField:
		return equalsField(b, target, rule, custom)
	case RuleMin, RuleExclusiveMin, RuleMax, RuleExclusiveMax:
	default:
		return fmt.Errorf("%w: %q for %s fields", ErrUnknownRule, kind, n.typ)
	}

	raw, err := param(rule, "value")
	if err != nil {
		return err
	}
	bound, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: value %q: %v", ErrInvalidParam, raw, err)
	}
	exclusive := kind == RuleExclusiveMin || kind == RuleExclusiveMax ||
		strings.EqualFold(strings.TrimSpace(rule.Params["exclusive"]), "true")
	lower := kind == RuleMin || kind == RuleExclusiveMin
	field.AddValidator(target, boundValidator(bound, lower, exclusive, custom))
	return nil
}

func boundValidator[V cmp.Ordered](bound V, lower, exclusive bool, custom []validation.Error) validation.Validator[V] {
	switch {
	case lower && exclusive:
		return validation.GreaterThan(bound, custom...)
	case lower:
		return validation.GreaterThanOrEqual(bound, custom...)
	case exclusive:
		return validation.LessThan(bound, custom...)
	default:
		return validation.LessThanOrEqual(bound, custom...)
	}
}

func equalsField[V comparable](b *builder, target field.Typed[V], rule Rule, custom []validation.Error) error {
	other, name, err := reference[V](b, rule)
	if err != nil {
		return err
	}
	msg := pick(custom, fmt.Sprintf("Must match %s.", name))
	return field.ValidateWith(target, other, func(value, o *V) []validation.Error {
		if value == nil && o == nil {
			return nil
		}
		if value != nil && o != nil && *value == *o {
			return nil
		}
		return []validation.Error{msg}
	})
}

// reference resolves Params["field"] to a field of the same value type and
// returns it with its display name.
func reference[V comparable](b *builder, rule Rule) (field.Typed[V], string, error) {
	id, err := param(rule, "field")
	if err != nil {
		return nil, "", err
	}
	n, ok := b.nodes[strings.TrimSpace(id)]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownReference, id)
	}
	typed, ok := n.f.(field.Typed[V])
	if !ok {
		return nil, "", fmt.Errorf("%w: %q has type %s", ErrInvalidParam, id, n.typ)
	}
	return typed, n.f.Name(), nil
}

func param(rule Rule, key string) (string, error) {
	raw, ok := rule.Params[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: %q is required", ErrInvalidParam, key)
	}
	return raw, nil
}

func intParam(rule Rule, key string) (int, error) {
	raw, err := param(rule, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s %q is not a non-negative integer", ErrInvalidParam, key, raw)
	}
	return n, nil
}

func pick(custom []validation.Error, fallback string) validation.Error {
	if len(custom) > 0 {
		return custom[0]
	}
	return validation.NewError(fallback)
}
