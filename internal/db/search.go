// ABOUTME: Search helpers shared by note and todo listing.
// ABOUTME: Parses the "tag:" prefix and builds escaped LIKE patterns.

package db

import "strings"

const tagSearchPrefix = "tag:"

// likeEscape is the ESCAPE clause every LIKE built from likePattern must use.
const likeEscape = ` ESCAPE '\'`

// TagSearch reports whether search is a tag filter and returns its term.
func TagSearch(search string) (string, bool) {
	if !strings.HasPrefix(search, tagSearchPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(search, tagSearchPrefix)), true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring match with % and _ taken literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
