// internal/app/system/inputval/validators.go
package inputval

import (
	"net/url"
	"regexp"
	"strings"
)

// emailRe rejects leading/trailing/consecutive dots in either part and
// requires exactly one @. Deliberately permissive about single-label domains
// (user@localhost) for dev and test environments.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(\.[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*$`)

// IsValidEmail reports whether s looks like a plain email address
// (no display-name form).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return emailRe.MatchString(s)
}

// IsValidHTTPURL reports whether s parses as an absolute http or https URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// objectIDRe matches a 24-character hex string.
var objectIDRe = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidObjectID reports whether s is a well-formed Mongo ObjectID hex.
func IsValidObjectID(s string) bool {
	return objectIDRe.MatchString(strings.TrimSpace(s))
}
