package source

import (
	"sort"
	"strings"
	"unicode"
)

// NaturalSort sorts strings so that numeric runs compare as integers:
// "2.txt" sorts before "10.txt".
func NaturalSort(items []string) {
	sort.Slice(items, func(i, j int) bool {
		return NaturalLess(items[i], items[j])
	})
}

// NaturalLess compares two strings with numeric runs compared as
// integers and the rest case-insensitively.
func NaturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		aDigit := isDigit(a[0])
		bDigit := isDigit(b[0])

		if aDigit && bDigit {
			aNum, aRest := splitNumericRun(a)
			bNum, bRest := splitNumericRun(b)
			if aNum != bNum {
				return numericLess(aNum, bNum)
			}
			a, b = aRest, bRest
			continue
		}

		if aDigit != bDigit {
			return aDigit
		}

		ar := unicode.ToLower(rune(a[0]))
		br := unicode.ToLower(rune(b[0]))
		if ar != br {
			return ar < br
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func splitNumericRun(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// numericLess compares digit runs of arbitrary length without
// overflowing: strip leading zeros, then shorter run is smaller.
func numericLess(a, b string) bool {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
