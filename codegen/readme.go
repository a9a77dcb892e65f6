package codegen

import (
	"fmt"
	"strings"

	smithy "github.com/smithy-gen/sdkgen"
)

// ReadmeEmitter renders out/<service>/README.md from the service's
// documentation trait plus a fixed header/usage/footer template set, kept
// as the three string constants below rather than loaded from disk, since
// no templating engine is otherwise wired into this package.
type ReadmeEmitter struct {
	*BaseEmitter
	Symbols *smithy.SymbolsProvider
}

func NewReadmeEmitter(base *BaseEmitter, sym *smithy.SymbolsProvider) *ReadmeEmitter {
	return &ReadmeEmitter{BaseEmitter: base, Symbols: sym}
}

const readmeHeaderTemplate = "# %s\n\n"
const readmeUsageTemplate = "## Usage\n\n```go\nclient := New%sClient(config, httpClient)\n```\n\n"
const readmeFooterTemplate = "---\nGenerated from a Smithy 2.0 model. Do not edit by hand.\n"

func (e *ReadmeEmitter) Emit(serviceId smithy.ShapeId, serviceName string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, readmeHeaderTemplate, serviceName)
	docTraitId := smithy.MustShapeIdOf("smithy.api#documentation")
	if tv, ok := e.Symbols.GetTrait(serviceId, docTraitId); ok {
		if html, ok := tv.Raw.(string); ok {
			b.WriteString(HtmlToMarkdown(html))
			b.WriteString("\n\n")
		}
	}
	fmt.Fprintf(&b, readmeUsageTemplate, Pascal(serviceName))
	b.WriteString(readmeFooterTemplate)
	return b.String(), nil
}
