package shared

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// nameSanitizer strips all HTML/script markup from free text the owner
// types directly into the engine: arrangement, group, tag, and tag group
// names. These values round-trip into exported gallery pages and shared
// links, so they are the one place a stored XSS payload could otherwise
// enter the engine's write path.
var nameSanitizer = bluemonday.StrictPolicy()

// SanitizeName strips HTML/script tags from a user-supplied name and
// trims surrounding whitespace. Called by the Arrangement, Group, Tag and
// TagGroup constructors and Rename methods, before the emptiness check;
// hierarchy and picture names are not passed through it.
func SanitizeName(name string) string {
	return strings.TrimSpace(nameSanitizer.Sanitize(name))
}
