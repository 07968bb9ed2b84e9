// Package glob matches directory names against the wildcard filters used by
// user and role listings.
package glob

import "strings"

// MatchAll is the filter that matches every name.
const MatchAll = "*"

// Match returns true if name matches pattern, ignoring case.
//
// A '*' in the pattern matches any sequence of characters, including '/'. A
// '?' matches exactly one character. An empty pattern matches everything.
func Match(pattern, name string) bool {
	if pattern == "" || pattern == MatchAll {
		return true
	}

	return match(
		[]rune(strings.ToLower(pattern)),
		[]rune(strings.ToLower(name)),
	)
}

// Filter returns the names that match pattern, preserving their order.
func Filter(pattern string, names []string) []string {
	if pattern == "" || pattern == MatchAll {
		return names
	}

	matched := []string{}
	for _, n := range names {
		if Match(pattern, n) {
			matched = append(matched, n)
		}
	}

	return matched
}

func match(p, s []rune) bool {
	var (
		pi, si       int
		star, starSi = -1, 0
	)

	for si < len(s) {
		switch {
		case pi < len(p) && (p[pi] == '?' || p[pi] == s[si]):
			pi++
			si++
		case pi < len(p) && p[pi] == '*':
			star = pi
			starSi = si
			pi++
		case star != -1:
			pi = star + 1
			starSi++
			si = starSi
		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}

	return pi == len(p)
}
