// Package lecturekey derives stable identifiers from YUTorah lecture URLs.
//
// All lecture URL shapes in use (the lecture listing page, the sidebar data
// endpoint and the legacy lecture.cfm path) carry the same numeric lecture id,
// so every helper here goes through ExtractID and agrees on the identifier.
package lecturekey

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// Namespace prefixes every cache key.
	Namespace = "yutorah"
	// CanonicalBase is the display form of a lecture URL without its slug.
	CanonicalBase = "https://www.yutorah.org/lectures/"
)

// ErrInvalidFormat is returned when a URL matches none of the known lecture shapes.
var ErrInvalidFormat = errors.New("invalid YUTorah URL format")

var lectureIDPattern = regexp.MustCompile(`/(?:lectures|sidebar/lecturedata|lecture\.cfm)/(\d+)`)

// ExtractID returns the first numeric lecture id that follows a known path segment.
func ExtractID(rawURL string) (string, error) {
	match := lectureIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", ErrInvalidFormat
	}
	return match[1], nil
}

// CacheKey builds "<namespace>_<id>_<kind>" for the lecture referenced by rawURL.
func CacheKey(rawURL, kind string) (string, error) {
	id, err := ExtractID(rawURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s_%s", Namespace, id, kind), nil
}

// CanonicalURL rewrites any known lecture URL shape to https://www.yutorah.org/lectures/<id>.
func CanonicalURL(rawURL string) (string, error) {
	id, err := ExtractID(rawURL)
	if err != nil {
		return "", err
	}
	return CanonicalBase + id, nil
}
