package codegen

import (
	"fmt"
	"strings"

	smithy "github.com/smithy-gen/sdkgen"
)

// ClientEmitter renders a service's client module: a struct with config,
// endpoint resolver, and transport fields, plus one method per operation.
type ClientEmitter struct {
	*BaseEmitter
	Model   *smithy.Model
	Symbols *smithy.SymbolsProvider
}

func NewClientEmitter(base *BaseEmitter, m *smithy.Model, sym *smithy.SymbolsProvider) *ClientEmitter {
	return &ClientEmitter{BaseEmitter: base, Model: m, Symbols: sym}
}

func (e *ClientEmitter) Emit(serviceId smithy.ShapeId, operationIds []smithy.ShapeId) (string, error) {
	serviceName := e.Scope.PascalType(e.Model.Name(serviceId))
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated for service %q. DO NOT EDIT.\n\n", serviceName)
	b.WriteString(Doc(e.Symbols, serviceId, "// "))
	fmt.Fprintf(&b, "type %sClient struct {\n\tconfig Config\n\tendpointResolver EndpointResolver\n\thttpClient HttpClient\n}\n\n", serviceName)
	fmt.Fprintf(&b, "func New%sClient(config Config, httpClient HttpClient) *%sClient {\n\treturn &%sClient{config: config, httpClient: httpClient, endpointResolver: config.EndpointResolver}\n}\n\n",
		serviceName, serviceName, serviceName)

	for _, opId := range smithy.SortedShapeIds(operationIds) {
		if err := e.emitOperation(&b, serviceName, opId); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (e *ClientEmitter) emitOperation(b *strings.Builder, serviceName string, opId smithy.ShapeId) error {
	st, ok := e.Model.ShapeType(opId)
	if !ok {
		return fmt.Errorf("unknown operation shape %s", opId)
	}
	op, ok := st.(*smithy.OperationShape)
	if !ok {
		return fmt.Errorf("%s is not an operation shape", opId)
	}
	opName := Pascal(localName(e.Model.Name(opId)))
	inputType, outputType := "struct{}", "struct{}"
	if op.Meta.HasInput {
		inputType = e.Scope.PascalType(e.Model.Name(op.Meta.Input))
	}
	if op.Meta.HasOutput {
		outputType = e.Scope.PascalType(e.Model.Name(op.Meta.Output))
	}
	b.WriteString(Doc(e.Symbols, opId, "// "))
	fmt.Fprintf(b, "func (c *%sClient) %s(ctx context.Context, input *%s) (*%s, error) {\n", serviceName, opName, inputType, outputType)
	fmt.Fprintf(b, "\tvar output %s\n\terr := c.invoke(ctx, %q, input, &output)\n\treturn &output, err\n}\n\n", outputType, opName)
	return nil
}
