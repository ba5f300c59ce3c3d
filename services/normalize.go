package services

import "strings"

// NormalizeQuery canonicalizes free-text search input for matching. It must be
// applied identically when storing an alias and when looking one up.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
