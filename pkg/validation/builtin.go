package validation

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Default messages used when a builtin validator is not given a custom error.
const (
	MessageRequired          = "Is required."
	MessageInvalidCharacter  = "Contains an invalid character."
	MessageInvalidFormat     = "Has an invalid format."
	messageMinLength         = "Must be at least %d characters."
	messageMaxLength         = "Must be no more than %d characters."
	messageExactLength       = "Must be exactly %d characters."
	messageGreaterThan       = "Must be greater than %v"
	messageGreaterThanOrEq   = "Must be greater than or equal to %v"
	messageLessThan          = "Must be less than %v"
	messageLessThanOrEqualTo = "Must be less than or equal to %v"
)

// Required rejects empty values. Strings additionally fail when they are "".
func Required[V any](custom ...Error) Validator[V] {
	err := pick(custom, MessageRequired)
	return Func(err, func(value *V) bool {
		if value == nil {
			return false
		}
		if s, ok := any(*value).(string); ok {
			return s != ""
		}
		return true
	})
}

// MinLength requires at least n runes. Empty values fail.
func MinLength(n int, custom ...Error) Validator[string] {
	err := pick(custom, fmt.Sprintf(messageMinLength, n))
	return Func(err, func(value *string) bool {
		return value != nil && utf8.RuneCountInString(*value) >= n
	})
}

// MaxLength allows at most n runes. Empty values pass.
func MaxLength(n int, custom ...Error) Validator[string] {
	err := pick(custom, fmt.Sprintf(messageMaxLength, n))
	return Func(err, func(value *string) bool {
		return value == nil || utf8.RuneCountInString(*value) <= n
	})
}

// ExactLength requires exactly n runes. Empty values fail.
func ExactLength(n int, custom ...Error) Validator[string] {
	err := pick(custom, fmt.Sprintf(messageExactLength, n))
	return Func(err, func(value *string) bool {
		return value != nil && utf8.RuneCountInString(*value) == n
	})
}

// InvalidCharacters rejects values containing any rune of set. Empty values
// pass.
func InvalidCharacters(set string, custom ...Error) Validator[string] {
	err := pick(custom, MessageInvalidCharacter)
	return Func(err, func(value *string) bool {
		return value == nil || !strings.ContainsAny(*value, set)
	})
}

// OnlyCharacters rejects values containing any rune outside set. Empty values
// pass.
func OnlyCharacters(set string, custom ...Error) Validator[string] {
	err := pick(custom, MessageInvalidCharacter)
	return Func(err, func(value *string) bool {
		if value == nil {
			return true
		}
		for _, r := range *value {
			if !strings.ContainsRune(set, r) {
				return false
			}
		}
		return true
	})
}

// Pattern requires the whole value to match re. Empty values fail.
func Pattern(re *regexp.Regexp, custom ...Error) Validator[string] {
	err := pick(custom, MessageInvalidFormat)
	return Func(err, func(value *string) bool {
		if value == nil || re == nil {
			return false
		}
		loc := re.FindStringIndex(*value)
		return loc != nil && loc[0] == 0 && loc[1] == len(*value)
	})
}

// GreaterThan requires value > bound. Empty values fail.
func GreaterThan[V cmp.Ordered](bound V, custom ...Error) Validator[V] {
	err := pick(custom, fmt.Sprintf(messageGreaterThan, bound))
	return Func(err, func(value *V) bool {
		return value != nil && cmp.Compare(*value, bound) > 0
	})
}

// GreaterThanOrEqual requires value >= bound. Empty values fail.
func GreaterThanOrEqual[V cmp.Ordered](bound V, custom ...Error) Validator[V] {
	err := pick(custom, fmt.Sprintf(messageGreaterThanOrEq, bound))
	return Func(err, func(value *V) bool {
		return value != nil && cmp.Compare(*value, bound) >= 0
	})
}

// LessThan requires value < bound. Empty values fail.
func LessThan[V cmp.Ordered](bound V, custom ...Error) Validator[V] {
	err := pick(custom, fmt.Sprintf(messageLessThan, bound))
	return Func(err, func(value *V) bool {
		return value != nil && cmp.Compare(*value, bound) < 0
	})
}

// LessThanOrEqual requires value <= bound. Empty values fail.
func LessThanOrEqual[V cmp.Ordered](bound V, custom ...Error) Validator[V] {
	err := pick(custom, fmt.Sprintf(messageLessThanOrEqualTo, bound))
	return Func(err, func(value *V) bool {
		return value != nil && cmp.Compare(*value, bound) <= 0
	})
}

func pick(custom []Error, fallback string) Error {
	if len(custom) > 0 && strings.TrimSpace(custom[0].Description) != "" {
		return custom[0]
	}
	return NewError(fallback)
}
