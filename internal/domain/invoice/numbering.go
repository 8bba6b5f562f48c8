package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Stem builds the generated-number prefix for a company and year, e.g.
// "ACME-2024-". The company prefix is the first four letters uppercased;
// shorter names are right-padded with 'X'.
func Stem(company string, year int) string {
	var b strings.Builder
	for _, r := range company {
		if b.Len() >= 4 {
			break
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	for b.Len() < 4 {
		b.WriteByte('X')
	}
	return fmt.Sprintf("%s-%d-", b.String(), year)
}

// NextNumber returns the next generated invoice number under stem, given the
// existing numbers for the same client and stem. The sequence continues from
// the highest parseable suffix; the first number under a stem is 001.
func NextNumber(stem string, existing []string) string {
	highest := 0
	for _, n := range existing {
		if !strings.HasPrefix(n, stem) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(n, stem))
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return fmt.Sprintf("%s%03d", stem, highest+1)
}
