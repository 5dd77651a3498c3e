package preview

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyUnit is appended to every formatted amount.
const CurrencyUnit = "원"

// exactDigits is the longest amount, in significant digits, that survives a
// float64 round trip.
const exactDigits = 15

var printer = message.NewPrinter(language.Korean)

// GroupDigits renders raw with ko-KR thousands separators, keeping any
// fraction digits. Input that is not a decimal number is returned trimmed
// and unchanged.
func GroupDigits(raw string) string {
	raw = UnformatAmount(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return printer.Sprintf("%d", n)
	}

	sign, abs := "", raw
	if strings.HasPrefix(abs, "-") {
		sign, abs = "-", abs[1:]
	}
	whole, frac, _ := strings.Cut(abs, ".")
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return raw
	}

	if len(whole)+len(frac) > exactDigits {
		out := sign + groupThousands(whole)
		if frac != "" {
			out += "." + frac
		}
		return out
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(len(frac))))
}

// groupThousands groups a digit string too long for the printer's numeric
// types. ko-KR groups by three with a comma.
func groupThousands(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatAmount is GroupDigits plus the currency unit, or "" for an empty
// amount.
func FormatAmount(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return GroupDigits(raw) + CurrencyUnit
}

// UnformatAmount strips group separators, the currency unit and spaces so
// the value can be sent as raw digits.
func UnformatAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, CurrencyUnit)
	return strings.NewReplacer(",", "", " ", "").Replace(s)
}
