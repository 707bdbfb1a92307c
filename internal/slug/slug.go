// Package slug derives public store-page addresses from business names.
package slug

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

const (
	suffixLen     = 6
	suffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var disallowedRe = regexp.MustCompile(`[^a-z0-9\s-]`)
var whitespaceRe = regexp.MustCompile(`\s+`)

// Assign builds a slug from the business name: sanitized name plus a random
// six-character suffix. A name that sanitizes to nothing yields the bare
// suffix, so the slug is never empty.
func Assign(businessName string) (string, error) {
	suffix, err := randomSuffix()
	if err != nil {
		return "", fmt.Errorf("slug suffix: %w", err)
	}
	base := Sanitize(businessName)
	if base == "" {
		return suffix, nil
	}
	return base + "-" + suffix, nil
}

// Sanitize lowercases the name, strips everything outside [a-z0-9 -],
// collapses whitespace runs to single hyphens, and trims edge hyphens.
func Sanitize(businessName string) string {
	s := strings.ToLower(businessName)
	s = disallowedRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

func randomSuffix() (string, error) {
	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = suffixCharset[int(b)%len(suffixCharset)]
	}
	return string(buf), nil
}
