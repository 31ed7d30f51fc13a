package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		opts     Options
		expected string
	}{
		{
			name:     "NoGroupingUnderFourDigits",
			raw:      "123",
			expected: "123",
		},
		{
			name:     "GroupsEveryThreeDigits",
			raw:      "1234567",
			expected: "1,234,567",
		},
		{
			name:     "GroupsOnlyIntegerPart",
			raw:      "1234567.8912",
			expected: "1,234,567.8912",
		},
		{
			name:     "TrailingDecimalSeparatorPreserved",
			raw:      "1234.",
			expected: "1,234.",
		},
		{
			name:     "ReformatsAlreadyFormattedValue",
			raw:      "1,234,567",
			expected: "1,234,567",
		},
		{
			name:     "EmptyInput",
			raw:      "",
			expected: "",
		},
		{
			name:     "NonNumericInputDropped",
			raw:      "abc",
			expected: "",
		},
		{
			name:     "MinusDroppedWhenNegativeNotAllowed",
			raw:      "-1234",
			expected: "1,234",
		},
		{
			name:     "MinusKeptWhenNegativeAllowed",
			raw:      "-1234",
			opts:     Options{AllowNegative: true},
			expected: "-1,234",
		},
		{
			name:     "EuropeanSeparators",
			raw:      "1234567,89",
			opts:     Options{ThousandSeparator: ".", DecimalSeparator: ","},
			expected: "1.234.567,89",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.raw, tt.opts))
		})
	}
}

// Formatting an already formatted value must be a fixed point: stripping the
// separators and formatting again yields the same display string.
func TestFormatAmount_RoundTripIdempotent(t *testing.T) {
	opts := Options{}
	inputs := []string{
		"0",
		"999",
		"1000",
		"1234567",
		"1234567.89",
		"1234.",
		"1,234,567",
		"100.5",
	}

	for _, raw := range inputs {
		formatted := FormatAmount(raw, opts)
		again := FormatAmount(RemoveFormatting(formatted, opts), opts)
		assert.Equal(t, formatted, again, "input %q", raw)
	}
}

func TestRemoveFormatting(t *testing.T) {
	assert.Equal(t, "1234567", RemoveFormatting("1,234,567", Options{}))
	assert.Equal(t, "1234.56", RemoveFormatting("1,234.56", Options{}))
	assert.Equal(t, "", RemoveFormatting("", Options{}))
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		name     string
		variant  Variant
		opts     Options
		value    string
		accepted bool
	}{
		{name: "IntegerDigits", variant: VariantInteger, value: "1234", accepted: true},
		{name: "IntegerEmpty", variant: VariantInteger, value: "", accepted: true},
		{name: "IntegerRejectsDecimalPoint", variant: VariantInteger, value: "12.5", accepted: false},
		{name: "IntegerRejectsLetters", variant: VariantInteger, value: "12a", accepted: false},
		{name: "IntegerRejectsMinusByDefault", variant: VariantInteger, value: "-12", accepted: false},
		{name: "IntegerAllowsMinusWhenNegative", variant: VariantInteger, opts: Options{AllowNegative: true}, value: "-12", accepted: true},
		{name: "NumberAllowsOneDecimalPart", variant: VariantNumber, value: "12.5", accepted: true},
		{name: "NumberAllowsTrailingDot", variant: VariantNumber, value: "12.", accepted: true},
		{name: "NumberRejectsSecondDecimalPoint", variant: VariantNumber, value: "1.5.5", accepted: false},
		{name: "NumberRejectsLetters", variant: VariantNumber, value: "1x", accepted: false},
		{name: "FormattedStripsSeparatorsBeforeCheck", variant: VariantFormattedNumber, value: "1,234.56", accepted: true},
		{name: "FormattedRejectsLetters", variant: VariantFormattedNumber, value: "1,2a4", accepted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.accepted, Accepts(tt.variant, tt.opts, tt.value))
		})
	}
}

func TestCaretAfterFormat(t *testing.T) {
	opts := Options{}

	// Caret at the end stays at the end when a separator is inserted.
	assert.Equal(t, 5, CaretAfterFormat("1234", "1,234", 4, opts))

	// Caret after the first digit stays after the first digit.
	assert.Equal(t, 1, CaretAfterFormat("1234", "1,234", 1, opts))

	// Caret counts only significant characters, skipping separators: caret 3
	// in "1,234" sits after two digits, which end at index 2 in "12,345".
	assert.Equal(t, 2, CaretAfterFormat("1,234", "12,345", 3, opts))

	// Out-of-range carets are clamped.
	assert.Equal(t, 5, CaretAfterFormat("1234", "1,234", 10, opts))
	assert.Equal(t, 0, CaretAfterFormat("1234", "1,234", -1, opts))
}
