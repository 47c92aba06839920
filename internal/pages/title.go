package pages

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatTitle derives a display title from a page basename: components separated by
// underscores are capitalized and joined with spaces. The connectors "or" and "and" stay
// lower-case.
//
// Example: "use_state" -> "Use State".
func FormatTitle(basename string) string {
	components := strings.Split(basename, "_")
	for i, component := range components {
		components[i] = titleCase(component)
	}
	return strings.Join(components, " ")
}

func titleCase(component string) string {
	if component == "or" || component == "and" {
		return component
	}

	r, size := utf8.DecodeRuneInString(component)
	if r == utf8.RuneError {
		return component
	}
	return string(unicode.ToUpper(r)) + component[size:]
}

// FormatSlug converts a path component into its slug form.
func FormatSlug(component string) string {
	return strings.ToLower(strings.ReplaceAll(component, " ", "_"))
}

// JoinSlug builds the slug of a page from its ancestor basenames.
func JoinSlug(components []string) string {
	slugs := make([]string, len(components))
	for i, component := range components {
		slugs[i] = FormatSlug(component)
	}
	return strings.Join(slugs, "/")
}
