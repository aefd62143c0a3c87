package validation

import (
	"regexp"
	"testing"
)

func TestBuiltins(t *testing.T) {
	cases := []struct {
		name  string
		run   func() []Error
		valid bool
	}{
		{"required nil", func() []Error { return Required[string]().Validate(nil) }, false},
		{"required empty string", func() []Error { return Required[string]().Validate(ptr("")) }, false},
		{"required value", func() []Error { return Required[string]().Validate(ptr("a")) }, true},
		{"required zero int", func() []Error { return Required[int]().Validate(ptr(0)) }, true},
		{"min length nil", func() []Error { return MinLength(2).Validate(nil) }, false},
		{"min length short", func() []Error { return MinLength(2).Validate(ptr("é")) }, false},
		{"min length ok", func() []Error { return MinLength(2).Validate(ptr("éé")) }, true},
		{"max length nil", func() []Error { return MaxLength(2).Validate(nil) }, true},
		{"max length long", func() []Error { return MaxLength(2).Validate(ptr("abc")) }, false},
		{"exact length nil", func() []Error { return ExactLength(3).Validate(nil) }, false},
		{"exact length ok", func() []Error { return ExactLength(3).Validate(ptr("abc")) }, true},
		{"invalid chars nil", func() []Error { return InvalidCharacters(" \t\n").Validate(nil) }, true},
		{"invalid chars hit", func() []Error { return InvalidCharacters(" \t\n").Validate(ptr("a b")) }, false},
		{"only chars ok", func() []Error { return OnlyCharacters("0123456789").Validate(ptr("042")) }, true},
		{"only chars miss", func() []Error { return OnlyCharacters("0123456789").Validate(ptr("04a")) }, false},
		{"pattern nil", func() []Error { return Pattern(regexp.MustCompile(`[a-z]+`)).Validate(nil) }, false},
		{"pattern partial", func() []Error { return Pattern(regexp.MustCompile(`[a-z]+`)).Validate(ptr("abc1")) }, false},
		{"pattern full", func() []Error { return Pattern(regexp.MustCompile(`[a-z]+`)).Validate(ptr("abc")) }, true},
		{"greater than", func() []Error { return GreaterThan(3).Validate(ptr(4)) }, true},
		{"greater than equal bound", func() []Error { return GreaterThan(3).Validate(ptr(3)) }, false},
		{"greater or equal", func() []Error { return GreaterThanOrEqual(3).Validate(ptr(3)) }, true},
		{"less than", func() []Error { return LessThan(1.5).Validate(ptr(1.4)) }, true},
		{"less or equal nil", func() []Error { return LessThanOrEqual(1.5).Validate(nil) }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.run()
			if tc.valid && len(errs) != 0 {
				t.Fatalf("expected valid, got %v", errs)
			}
			if !tc.valid && len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
		})
	}
}

func TestBuiltins_CustomError(t *testing.T) {
	custom := NewError("Pick a longer password")
	errs := MinLength(8, custom).Validate(ptr("short"))
	if len(errs) != 1 || errs[0] != custom {
		t.Fatalf("expected custom error, got %v", errs)
	}

	errs = ExactLength(4).Validate(ptr("abc"))
	if len(errs) != 1 || errs[0].Description != "Must be exactly 4 characters." {
		t.Fatalf("unexpected default message: %v", errs)
	}
}
