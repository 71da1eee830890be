// Package money centralizes parsing and formatting of toman amount strings.
// Catalog prices and order totals travel through the API as formatted strings
// like "۱۲۳,۴۵۶ تومان"; every component that needs to do arithmetic on them
// goes through Parse and formats the result back with Format.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const currencySuffix = "تومان"

// persianDigits maps ۰..۹ at index 0..9. Arabic-Indic ٠..٩ are accepted on
// input as well since both show up in pasted catalog data.
var persianDigits = []rune("۰۱۲۳۴۵۶۷۸۹")

var arabicDigits = []rune("٠١٢٣٤٥٦٧٨٩")

// Parse extracts the numeric value from a formatted amount string. Persian
// and Arabic-Indic digits are normalized to ASCII, and every non-digit rune
// (separators, the currency word, stray whitespace) is dropped. An empty or
// digit-free string parses as zero.
func Parse(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= persianDigits[0] && r <= persianDigits[9]:
			b.WriteRune('0' + (r - persianDigits[0]))
		case r >= arabicDigits[0] && r <= arabicDigits[9]:
			b.WriteRune('0' + (r - arabicDigits[0]))
		}
	}
	if b.Len() == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format renders an amount as a toman string with Persian digits and
// three-digit grouping, e.g. 123456 -> "۱۲۳,۴۵۶ تومان".
func Format(d decimal.Decimal) string {
	digits := d.Truncate(0).Abs().BigInt().String()

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(persianDigits[r-'0'])
	}
	if d.IsNegative() {
		return fmt.Sprintf("-%s %s", b.String(), currencySuffix)
	}
	return fmt.Sprintf("%s %s", b.String(), currencySuffix)
}

// Sum parses every input string and returns the total.
func Sum(amounts ...string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(Parse(a))
	}
	return total
}
