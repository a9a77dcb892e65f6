// Package codegen implements target-source emission for generated
// clients -- client modules, shape declarations, error sums, and endpoint
// resolvers -- using a buffered writer walked depth-first over the model
// to print target-language source.
package codegen

import (
	"strings"
	"sync"
	"unicode"

	"goa.design/goa/v3/codegen"
)

// NameScope wraps goa.design/goa/v3/codegen's collision-avoiding name
// scope to keep a generated package's identifiers globally unique across
// many source shapes.
type NameScope struct {
	scope *codegen.NameScope
	mu    sync.Mutex
	names map[string]string // absolute shape id -> name already handed out
}

func NewNameScope() *NameScope {
	return &NameScope{scope: codegen.NewNameScope()}
}

// PascalType returns a collision-free PascalCase type name for a shape.
// smithyName is the shape's absolute id ("namespace#Name"); only the
// local name past the last '#' becomes the generated identifier, since two
// shapes in different namespaces but the same local name are common in real
// models and should still produce a readable type name. Repeated calls for
// the same smithyName return the same name.
func (ns *NameScope) PascalType(smithyName string) string {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if name, ok := ns.names[smithyName]; ok {
		return name
	}
	if ns.names == nil {
		ns.names = make(map[string]string)
	}
	name := ns.scope.Unique(Pascal(localName(smithyName)))
	ns.names[smithyName] = name
	return name
}

// localName strips a shape id's namespace prefix, if any.
func localName(smithyName string) string {
	if i := strings.LastIndexByte(smithyName, '#'); i >= 0 {
		return smithyName[i+1:]
	}
	return smithyName
}

// Pascal converts a Smithy shape/member name to PascalCase using goa's
// Goify, which already understands common initialisms (Id -> ID, Url ->
// URL, etc) the way the rest of the Go ecosystem expects.
func Pascal(name string) string {
	return codegen.Goify(name, true)
}

// Snake converts a Smithy member or local-variable name to snake_case.
// Idempotent: Snake(Snake(x)) == Snake(x), since a name already in
// snake_case has no case transitions or non-leading uppercase runs to
// re-split.
func Snake(name string) string {
	return toDelimited(name, '_', false)
}

// Camel converts a name to lowerCamelCase.
func Camel(name string) string {
	pascal := Pascal(name)
	if pascal == "" {
		return pascal
	}
	// Lowercase the whole leading initialism ("ID" -> "id", "URLValue" ->
	// "urlValue"), not just its first rune.
	r := []rune(pascal)
	for i := 0; i < len(r) && unicode.IsUpper(r[i]); i++ {
		if i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) {
			break
		}
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// Scream converts a name to SCREAMING_CASE, used for enum variant names.
func Scream(name string) string {
	return strings.ToUpper(toDelimited(name, '_', false))
}

// toDelimited splits name on case transitions, digit/letter boundaries,
// and existing separators ('_', '-', ' ', '.'), then rejoins lowercased
// with sep. Running it twice is a no-op because the second pass finds no
// uppercase runs or adjoining separators left to split on.
func toDelimited(name string, sep byte, upper bool) string {
	var words []string
	var cur strings.Builder
	runes := []rune(name)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				flush()
			} else if i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
			cur.WriteRune(unicode.ToLower(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	out := strings.Join(words, string(sep))
	if upper {
		out = strings.ToUpper(out)
	}
	return out
}

// reservedWords are escaped with a trailing underscore when used as a
// target-language identifier. This set covers Go's own keywords since the
// reference emitter target in this module is Go.
var reservedWords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
	"error": true, "string": true, "int": true, "bool": true,
}

// EscapeReserved appends an underscore to identifiers that collide with a
// target-language reserved word.
func EscapeReserved(identifier string) string {
	if reservedWords[strings.ToLower(identifier)] {
		return identifier + "_"
	}
	return identifier
}
