package platform

import (
	"regexp"
	"strings"
)

// urlPattern accepts http(s) URLs with a domain, localhost, or an IPv4 host,
// an optional port, and an optional path/query.
var urlPattern = regexp.MustCompile(`(?i)^(?:http|https)://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// IsValidURL reports whether the string looks like a downloadable http(s) URL
func IsValidURL(url string) bool {
	return urlPattern.MatchString(url)
}

// CleanURLList turns multi-line user input into a trimmed, validated,
// deduplicated list of URLs, preserving first-seen order.
func CleanURLList(input string) []string {
	seen := make(map[string]struct{})
	var cleaned []string

	for _, line := range strings.Split(input, "\n") {
		url := strings.TrimSpace(line)
		if url == "" || !IsValidURL(url) {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		cleaned = append(cleaned, url)
	}

	return cleaned
}
