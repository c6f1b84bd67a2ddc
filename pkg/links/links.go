// Package links detects link-shaped text and formats hyperlink targets.
//
// Layers may carry an explicit link target, and text runs whose whole text
// looks like a URL or an email address are linked automatically. How the two
// interact is a [Policy] decision.
package links

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	urlPattern = regexp.MustCompile(
		`^(?:[A-Za-z]{3,9}:(?://)?(?:[-;:&=+$,\w]+@)?[A-Za-z0-9.-]+|(?:www\.|[-;:&=+$,\w]+@)[A-Za-z0-9.-]+)` +
			`(?:(?:/[+~%/.\w-]*)?\??[-+=&;%@.\w]*#?\w*)?$`)
	emailPattern = regexp.MustCompile(`^[\w._-]+[+]?[\w._-]+@[\w.-]+\.[a-zA-Z]{2,14}$`)
	schemePattern = regexp.MustCompile(`^[A-Za-z]{3,9}:`)
)

// IsURL reports whether s, ignoring surrounding whitespace, is a URL, a
// www-prefixed domain, or an email address.
func IsURL(s string) bool {
	return urlPattern.MatchString(strings.TrimSpace(s))
}

// IsEmail reports whether s is a plain email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Href formats target for use in an href attribute: email addresses get a
// mailto: prefix, scheme-less domains get http://, everything else is kept.
func Href(target string) string {
	target = strings.TrimSpace(target)
	switch {
	case target == "":
		return ""
	case IsEmail(target):
		return "mailto:" + target
	case schemePattern.MatchString(target):
		return target
	default:
		return "http://" + target
	}
}

// Policy decides whether text runs are auto-linked when their layer already
// carries an explicit link.
type Policy int

const (
	// ExplicitWins disables auto-linking inside layers with an explicit URL.
	ExplicitWins Policy = iota
	// Both auto-links text runs regardless of the layer's URL.
	Both
)

// String returns the policy name used in flags and config files.
func (p Policy) String() string {
	switch p {
	case ExplicitWins:
		return "explicit-wins"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name. The empty string selects ExplicitWins.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "explicit-wins":
		return ExplicitWins, nil
	case "both":
		return Both, nil
	}
	return ExplicitWins, fmt.Errorf("invalid link policy: %s (must be 'explicit-wins' or 'both')", s)
}

// AutoLink reports whether link-shaped text should be linked inside a layer
// whose explicit link target is layerURL.
func (p Policy) AutoLink(layerURL string) bool {
	if p == Both {
		return true
	}
	return strings.TrimSpace(layerURL) == ""
}

// Linkable reports whether text is shaped like a URL or an email address
// and may be linked automatically.
func Linkable(target string) bool {
	return IsURL(target) || IsEmail(target)
}
