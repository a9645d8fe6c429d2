package course

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByType  SortKey = "type"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(s)); k {
	case SortByName, SortByPrice, SortByType:
		return k, true
	}
	return "", false
}

// Sorted returns a copy of courses ordered by key. Text keys use Vietnamese
// collation; price is ascending. Ties keep their input order. An unknown key
// returns the copy unsorted.
func Sorted(courses []Course, key SortKey) []Course {
	out := make([]Course, len(courses))
	copy(out, courses)

	switch key {
	case SortByName:
		col := collate.New(language.Vietnamese)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortByType:
		col := collate.New(language.Vietnamese)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Type, out[j].Type) < 0
		})
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	}
	return out
}

// Matches reports whether q occurs, ignoring case, in the name, type or
// description of c.
func Matches(c Course, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Type), q) ||
		strings.Contains(strings.ToLower(c.Description), q)
}
