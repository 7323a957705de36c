package model

import (
	"cmp"
	"unicode"
)

// CompareVisitors orders visitors by age ascending, then by name ascending
// ignoring case. It returns 0 for records that tie on both keys, so callers
// that need input order preserved must use a stable sort.
func CompareVisitors(a, b VisitorRecord) int {
	if c := cmp.Compare(a.Age, b.Age); c != 0 {
		return c
	}
	return compareFold(a.Name, b.Name)
}

// compareFold compares rune by rune after case folding each rune to upper then
// lower case, so "anna" and "Anna" compare equal.
func compareFold(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		ca, cb := fold(ra[i]), fold(rb[i])
		if ca != cb {
			return cmp.Compare(ca, cb)
		}
	}
	return cmp.Compare(len(ra), len(rb))
}

func fold(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}
