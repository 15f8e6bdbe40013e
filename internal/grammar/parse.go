// Package grammar implements the command language understood by the bot:
// typed atoms (dates, times, pointers), the command grammar composed from
// them, and pointer resolution against live GitLab data.
//
// Parsers follow one convention: they take the input string and return the
// parsed value, the unconsumed remainder, and whether the parse matched at
// all. Alternations try branches in order and commit to the first match.
package grammar

import (
	"net/url"
	"strings"
	"unicode"
)

// tag matches a case-insensitive literal prefix.
func tag(in, lit string) (string, bool) {
	if len(in) >= len(lit) && strings.EqualFold(in[:len(lit)], lit) {
		return in[len(lit):], true
	}
	return in, false
}

// optTag is like tag but always succeeds.
func optTag(in, lit string) string {
	if rest, ok := tag(in, lit); ok {
		return rest
	}
	return in
}

// parseNumber matches one or more ASCII digits.
func parseNumber(in string) (int, string, bool) {
	i := 0
	for i < len(in) && in[i] >= '0' && in[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, in, false
	}

	n := 0
	for _, c := range in[:i] {
		n = n*10 + int(c-'0')
		if n > 1<<31 {
			return 0, in, false
		}
	}

	return n, in[i:], true
}

func isNameRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_'
}

// parseName matches one or more of alphanumeric, '-' and '_'.
func parseName(in string) (string, string, bool) {
	end := len(in)
	for i, c := range in {
		if !isNameRune(c) {
			end = i
			break
		}
	}
	if end == 0 {
		return "", in, false
	}

	return in[:end], in[end:], true
}

// parseURL greedily takes everything up to a space, ')' or ']' and requires
// the result to be a well-formed absolute URL.
func parseURL(in string) (*url.URL, string, bool) {
	end := len(in)
	for i, c := range in {
		if c == ' ' || c == ')' || c == ']' {
			end = i
			break
		}
	}
	if end == 0 {
		return nil, in, false
	}

	u, err := url.Parse(in[:end])
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, in, false
	}

	return u, in[end:], true
}
