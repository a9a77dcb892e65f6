package codegen

import (
	"fmt"
	"strings"

	smithy "github.com/smithy-gen/sdkgen"
)

// ErrorsEmitter renders a service's error sum: every declared error kind,
// each carrying source (client/server), numeric code, and retryable flag.
type ErrorsEmitter struct {
	*BaseEmitter
	Model   *smithy.Model
	Symbols *smithy.SymbolsProvider
}

func NewErrorsEmitter(base *BaseEmitter, m *smithy.Model, sym *smithy.SymbolsProvider) *ErrorsEmitter {
	return &ErrorsEmitter{BaseEmitter: base, Model: m, Symbols: sym}
}

func (e *ErrorsEmitter) Emit(serviceName string, errorIds []smithy.ShapeId) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated for service %q. DO NOT EDIT.\n\n", serviceName)
	b.WriteString("type ErrorKind int\n\nconst (\n")
	for _, id := range smithy.SortedShapeIds(errorIds) {
		name := e.Scope.PascalType(e.Model.Name(id))
		fmt.Fprintf(&b, "\tErrorKind%s ErrorKind = iota\n", name)
	}
	b.WriteString(")\n\n")

	errorTrait := smithy.MustShapeIdOf("smithy.api#error")
	httpErrorTrait := smithy.MustShapeIdOf("smithy.api#httpError")
	retryableTrait := smithy.MustShapeIdOf("smithy.api#retryable")

	for _, id := range smithy.SortedShapeIds(errorIds) {
		name := e.Scope.PascalType(e.Model.Name(id))
		source := "client"
		if tv, ok := e.Symbols.GetTrait(id, errorTrait); ok {
			if s, ok := tv.Raw.(string); ok {
				source = s
			}
		}
		code := 400
		if tv, ok := e.Symbols.GetTrait(id, httpErrorTrait); ok {
			if he, ok := tv.Raw.(*smithy.HttpErrorTrait); ok {
				code = he.Code
			}
		}
		retryable := false
		if tv, ok := e.Symbols.GetTrait(id, retryableTrait); ok {
			if _, ok := tv.Raw.(*smithy.RetryableTrait); ok {
				retryable = true
			}
		}
		b.WriteString(Doc(e.Symbols, id, "// "))
		fmt.Fprintf(&b, "type %s struct {\n\tMessage string\n\tSource string // %q\n\tCode int // %d\n\tRetryable bool // %v\n}\n\n",
			name, source, code, retryable)
		fmt.Fprintf(&b, "func (e *%s) Error() string { return e.Message }\n\n", name)
	}
	return b.String(), nil
}
