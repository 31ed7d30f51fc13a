// Package formatter implements the display formatting rules for numeric
// inputs: thousand-separator grouping, keystroke pattern gates per input
// variant, and caret repositioning after a reformat.
package formatter

import (
	"regexp"
	"strings"
)

// Variant mirrors the numeric input flavours the admin forms use.
type Variant string

const (
	VariantInteger         Variant = "integer"
	VariantNumber          Variant = "number"
	VariantFormattedNumber Variant = "formatted-number"
)

// Options controls separators and sign handling.
type Options struct {
	ThousandSeparator string
	DecimalSeparator  string
	AllowNegative     bool
}

func (o Options) withDefaults() Options {
	if o.ThousandSeparator == "" {
		o.ThousandSeparator = ","
	}
	if o.DecimalSeparator == "" {
		o.DecimalSeparator = "."
	}
	return o
}

// FormatAmount renders a raw numeric string with thousand separators inserted
// every three digits from the right of the integer part. A single decimal
// part is preserved as typed. A leading minus is kept only when AllowNegative
// is set. Non-numeric characters are dropped.
func FormatAmount(raw string, opts Options) string {
	opts = opts.withDefaults()

	cleaned := RemoveFormatting(raw, opts)
	if cleaned == "" {
		return ""
	}

	negative := false
	if strings.HasPrefix(cleaned, "-") {
		negative = opts.AllowNegative
		cleaned = cleaned[1:]
	}

	intPart, decPart, hasDecimal := strings.Cut(cleaned, opts.DecimalSeparator)
	intPart = digitsOnly(intPart)
	// A second decimal separator is rejected at the keystroke gate; anything
	// after the first one here is digits only.
	decPart = digitsOnly(decPart)

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString(groupThousands(intPart, opts.ThousandSeparator))
	if hasDecimal {
		b.WriteString(opts.DecimalSeparator)
		b.WriteString(decPart)
	}
	return b.String()
}

// RemoveFormatting strips thousand separators so the value can be re-parsed.
func RemoveFormatting(s string, opts Options) string {
	opts = opts.withDefaults()
	return strings.ReplaceAll(s, opts.ThousandSeparator, "")
}

// InputPattern returns the regexp gate applied on every keystroke for the
// given variant. A value failing the pattern is rejected outright and the
// previous value stands.
func InputPattern(variant Variant, opts Options) *regexp.Regexp {
	opts = opts.withDefaults()

	sign := ""
	if opts.AllowNegative {
		sign = "-?"
	}

	switch variant {
	case VariantInteger:
		return regexp.MustCompile("^" + sign + `\d*$`)
	default:
		// number and formatted-number allow one optional decimal part. The
		// formatted variant is matched against the unformatted value.
		sep := regexp.QuoteMeta(opts.DecimalSeparator)
		return regexp.MustCompile("^" + sign + `\d*(` + sep + `\d*)?$`)
	}
}

// Accepts reports whether a candidate value passes the variant's keystroke
// gate. Formatted variants are checked with separators stripped.
func Accepts(variant Variant, opts Options, value string) bool {
	opts = opts.withDefaults()
	candidate := value
	if variant == VariantFormattedNumber {
		candidate = RemoveFormatting(value, opts)
	}
	return InputPattern(variant, opts).MatchString(candidate)
}

// CaretAfterFormat recomputes the caret position after the displayed value
// changed from prev to next, by preserving the count of significant
// (non-separator) characters left of the caret.
func CaretAfterFormat(prev, next string, caret int, opts Options) int {
	opts = opts.withDefaults()
	if caret < 0 {
		caret = 0
	}
	if caret > len(prev) {
		caret = len(prev)
	}

	significant := 0
	for i := 0; i < caret; i++ {
		if !isSeparatorAt(prev, i, opts.ThousandSeparator) {
			significant++
		}
	}

	seen := 0
	for i := 0; i < len(next); i++ {
		if seen == significant {
			return i
		}
		if !isSeparatorAt(next, i, opts.ThousandSeparator) {
			seen++
		}
	}
	return len(next)
}

func isSeparatorAt(s string, i int, sep string) bool {
	return len(sep) == 1 && s[i] == sep[0]
}

func groupThousands(digits string, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	first := n % 3
	if first > 0 {
		b.WriteString(digits[:first])
	}
	for i := first; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
