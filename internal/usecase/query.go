package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	querySpecialCharsRegex = regexp.MustCompile(`[#%+@!^*()=\[\]{}<>|\\~` + "`" + `]`)
	multipleSpacesRegex    = regexp.MustCompile(`\s+`)
	nonAlphanumericRegex   = regexp.MustCompile(`[^a-z0-9\s]`)
)

// CleanQuery sanitizes a shopping search query. Oracle-suggested queries
// occasionally carry characters that break the upstream query parser.
func CleanQuery(query string) string {
	query = strings.ReplaceAll(query, "&", " and ")
	query = querySpecialCharsRegex.ReplaceAllString(query, " ")
	query = multipleSpacesRegex.ReplaceAllString(query, " ")
	return strings.TrimSpace(query)
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
