package pages

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Variables binds names used in ${NAME} templates and conditional hidden flags to values.
type Variables map[string]any

// bindings resolves variable names against explicit bindings and, optionally, the process
// environment. Explicit bindings take precedence.
type bindings struct {
	vars   Variables
	useEnv bool
}

func (b bindings) lookup(name string) (any, bool) {
	value, ok, _ := b.resolve(name)
	return value, ok
}

// resolve is lookup that also reports whether the value came from the environment.
func (b bindings) resolve(name string) (any, bool, bool) {
	if value, ok := b.vars[name]; ok {
		return value, true, false
	}

	if b.useEnv {
		//nolint:forbidigo // Environment-driven mode reads the process environment.
		if value, ok := os.LookupEnv(name); ok {
			return value, true, true
		}
	}

	return nil, false, false
}

// isSet reports whether a conditional hidden flag naming name applies. Explicit bindings
// must be truthy; an environment variable applies as soon as it exists, even when empty.
func (b bindings) isSet(name string) bool {
	value, ok, fromEnv := b.resolve(name)
	if !ok {
		return false
	}
	return fromEnv || truthy(value)
}

// hides reports whether h removes a page.
func (b bindings) hides(h Hidden) bool {
	if h.Always {
		return true
	}
	return h.Variable != "" && b.isSet(h.Variable)
}

// expand substitutes ${NAME} placeholders in template. Unknown names render as a visible
// marker instead of failing.
func (b bindings) expand(template string) string {
	if !strings.Contains(template, "${") {
		return template
	}

	out, err := fasttemplate.ExecuteFuncStringWithErr(template, "${", "}", func(w io.Writer, tag string) (int, error) {
		name := strings.TrimSpace(tag)
		value, ok := b.lookup(name)
		if !ok {
			return io.WriteString(w, undefinedMarker(name))
		}
		return io.WriteString(w, stringify(value))
	})
	if err != nil {
		// Unterminated placeholder; keep the literal text.
		return template
	}

	return out
}

func undefinedMarker(name string) string {
	return "[undefined variable: " + name + "]"
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
