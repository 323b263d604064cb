// Package numeric builds the catalog of numeric affixes combined with base words.
package numeric

import (
	"fmt"
	"strconv"
)

// Span of years around the reference year, inclusive.
const (
	yearsBefore = 10
	yearsAfter  = 4
)

// idioms are numbers people habitually bolt onto passwords.
var idioms = []int{111, 123, 234, 345, 456, 567, 678, 789, 300, 999, 799, 100, 200}

// Generate returns the numeric affixes for the given reference year: the years
// from year-10 to year+4, the two-digit numbers "00" through "99", and the
// idiomatic numbers. The result is deduplicated and always in that order.
func Generate(year int) []string {
	out := make([]string, 0, yearsBefore+yearsAfter+1+100+len(idioms))
	seen := make(map[string]struct{}, cap(out))
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for y := year - yearsBefore; y <= year+yearsAfter; y++ {
		add(strconv.Itoa(y))
	}
	for i := 0; i < 100; i++ {
		add(fmt.Sprintf("%02d", i))
	}
	for _, n := range idioms {
		add(strconv.Itoa(n))
	}
	return out
}
