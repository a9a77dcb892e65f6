package pipeline

import (
	smithy "github.com/smithy-gen/sdkgen"
)

// HookSet lets an extension pack (AWS-specific code generation being the
// motivating example) override pieces of a service's emission without
// forking the orchestrator. Every field has a working default in
// DefaultHooks; a pack only needs to set the hooks it wants to change.
type HookSet struct {
	// ServiceFilter decides whether a service found in a model directory is
	// emitted at all. The default accepts every service.
	ServiceFilter func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) bool

	// ReadmeWriter replaces the README body. Given the rendered default, it
	// returns what actually gets written.
	ReadmeWriter func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId, rendered string) string

	// ServiceScriptHead and ClientScriptHead prepend extra source to the
	// shapes module and client module respectively, before the generated
	// declarations (e.g. an extension pack's own imports or boilerplate).
	ServiceScriptHead func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) string
	ClientScriptHead  func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) string

	// EndpointScriptHead prepends extra source to the endpoint resolver
	// module, ahead of the lowered rule tree.
	EndpointScriptHead func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) string

	// OperationFunctionBody has the shape of a client-method body override:
	// given a default-generated body, it returns a body. The orchestrator
	// never calls it, so setting it does not change emitted output.
	OperationFunctionBody func(sym *smithy.SymbolsProvider, operationId smithy.ShapeId, generated string) string

	// AuthSchemeExtender has the shape of an auth-scheme list extension:
	// given scheme names from an @auth trait, it returns a scheme list. The
	// orchestrator and protocol.ResolveAuth never call it, so setting it
	// does not change which scheme is used.
	AuthSchemeExtender func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId, schemes []string) []string
}

// DefaultHooks returns the identity behavior for every hook point.
func DefaultHooks() *HookSet {
	return &HookSet{
		ServiceFilter: func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) bool {
			return true
		},
		ReadmeWriter: func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId, rendered string) string {
			return rendered
		},
		ServiceScriptHead: func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) string {
			return ""
		},
		ClientScriptHead: func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) string {
			return ""
		},
		EndpointScriptHead: func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) string {
			return ""
		},
		OperationFunctionBody: func(sym *smithy.SymbolsProvider, operationId smithy.ShapeId, generated string) string {
			return generated
		},
		AuthSchemeExtender: func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId, schemes []string) []string {
			return schemes
		},
	}
}
