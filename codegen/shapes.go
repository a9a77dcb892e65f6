package codegen

import (
	"fmt"
	"strings"

	smithy "github.com/smithy-gen/sdkgen"
)

// ShapesEmitter renders the shapes module for one service: one declaration
// per non-prelude shape reachable from its operations.
type ShapesEmitter struct {
	*BaseEmitter
	Model   *smithy.Model
	Symbols *smithy.SymbolsProvider
}

func NewShapesEmitter(base *BaseEmitter, m *smithy.Model, sym *smithy.SymbolsProvider) *ShapesEmitter {
	return &ShapesEmitter{BaseEmitter: base, Model: m, Symbols: sym}
}

// Emit renders every shape in ids (already filtered to the service's
// reachable set by the pipeline) in sorted order for deterministic diffs.
func (e *ShapesEmitter) Emit(serviceName string, ids []smithy.ShapeId) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated for service %q. DO NOT EDIT.\n\n", serviceName)
	for _, id := range smithy.SortedShapeIds(ids) {
		st, ok := e.Model.ShapeType(id)
		if !ok {
			continue
		}
		if err := e.emitShape(&b, id, st); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (e *ShapesEmitter) emitShape(b *strings.Builder, id smithy.ShapeId, st smithy.ShapeType) error {
	name := e.Scope.PascalType(e.Model.Name(id))
	switch shape := st.(type) {
	case *smithy.StructureShape:
		b.WriteString(Doc(e.Symbols, id, "// "))
		fmt.Fprintf(b, "type %s struct {\n", name)
		members, err := e.Symbols.Members(id)
		if err != nil {
			return err
		}
		for _, memberId := range members {
			if err := e.emitStructField(b, memberId); err != nil {
				return err
			}
		}
		b.WriteString("}\n\n")
	case *smithy.UnionShape:
		b.WriteString(Doc(e.Symbols, id, "// "))
		fmt.Fprintf(b, "type %s interface {\n\tis%s()\n}\n\n", name, name)
		members, err := e.Symbols.Members(id)
		if err != nil {
			return err
		}
		for _, memberId := range members {
			if err := e.emitUnionVariant(b, name, memberId); err != nil {
				return err
			}
		}
	case *smithy.EnumShape:
		e.emitEnum(b, id, name, shape.Members, false)
	case *smithy.IntEnumShape:
		e.emitEnum(b, id, name, shape.Members, true)
	case *smithy.ListShape:
		fmt.Fprintf(b, "type %s = []%s\n\n", name, e.targetTypeName(shape.Member))
	case *smithy.MapShape:
		fmt.Fprintf(b, "type %s = map[%s]%s\n\n", name, e.targetTypeName(shape.Key), e.targetTypeName(shape.Value))
	case *smithy.SimpleShape:
		// prelude-adjacent aliases (a custom string/blob with traits) get a
		// defined type so validation traits have somewhere to hang methods
		if !id.IsPrelude() {
			fmt.Fprintf(b, "type %s %s\n\n", name, simpleGoType(shape.Kind))
		}
	}
	return nil
}

func (e *ShapesEmitter) emitStructField(b *strings.Builder, memberId smithy.ShapeId) error {
	_, memberName, ok := memberId.Member()
	if !ok {
		return fmt.Errorf("member id %s has no member component", memberId)
	}
	requiredTrait := smithy.MustShapeIdOf("smithy.api#required")
	required := e.Symbols.HasTrait(memberId, requiredTrait)
	target := e.Symbols.ResolvedTarget(memberId)
	typeName := e.targetTypeName(target)
	if !required {
		typeName = "*" + typeName
	}
	fieldName := Pascal(memberName)
	b.WriteString(Doc(e.Symbols, memberId, "\t// "))
	fmt.Fprintf(b, "\t%s %s `json:%q`\n", fieldName, typeName, Camel(memberName))
	return nil
}

func (e *ShapesEmitter) emitUnionVariant(b *strings.Builder, unionName string, memberId smithy.ShapeId) error {
	_, memberName, ok := memberId.Member()
	if !ok {
		return fmt.Errorf("member id %s has no member component", memberId)
	}
	variantName := unionName + Pascal(memberName)
	target := e.Symbols.ResolvedTarget(memberId)
	fmt.Fprintf(b, "type %s struct {\n\tValue %s\n}\n\nfunc (*%s) is%s() {}\n\n", variantName, e.targetTypeName(target), variantName, unionName)
	return nil
}

func (e *ShapesEmitter) emitEnum(b *strings.Builder, id smithy.ShapeId, typeName string, members []smithy.ShapeId, isInt bool) {
	underlying := "string"
	if isInt {
		underlying = "int32"
	}
	fmt.Fprintf(b, "type %s %s\n\nconst (\n", typeName, underlying)
	enumValueTrait := smithy.MustShapeIdOf("smithy.api#enumValue")
	for _, memberId := range members {
		_, memberName, ok := memberId.Member()
		if !ok {
			continue
		}
		variant := Scream(memberName)
		value := memberName
		if tv, ok := e.Symbols.GetTrait(memberId, enumValueTrait); ok {
			if ev, ok := tv.Raw.(*smithy.EnumValueTrait); ok && ev.IsString {
				variant = Scream(ev.StringValue)
				value = ev.StringValue
			}
		}
		if isInt {
			fmt.Fprintf(b, "\t%s%s %s = iota\n", typeName, variant, typeName)
		} else {
			fmt.Fprintf(b, "\t%s%s %s = %q\n", typeName, variant, typeName, value)
		}
	}
	fmt.Fprintf(b, ")\n\n// Unknown%s is the fallthrough variant for wire values this version of the client doesn't know about.\ntype Unknown%s struct {\n\tValue string\n}\n\n", typeName, typeName)
}

func simpleGoType(kind string) string {
	switch kind {
	case "blob":
		return "[]byte"
	case "boolean", "primitiveBoolean":
		return "bool"
	case "string":
		return "string"
	case "byte":
		return "int8"
	case "short":
		return "int16"
	case "integer":
		return "int32"
	case "long":
		return "int64"
	case "float":
		return "float32"
	case "double":
		return "float64"
	case "bigInteger":
		return "*big.Int"
	case "bigDecimal":
		return "*big.Float"
	case "timestamp":
		return "time.Time"
	case "document":
		return "interface{}"
	default:
		return "interface{}"
	}
}

// targetTypeName resolves a shape id to the Go type name the emitter would
// use in a field/parameter position: prelude shapes map to built-in Go
// types, everything else to its own PascalCase declaration name.
func (e *ShapesEmitter) targetTypeName(id smithy.ShapeId) string {
	if id.IsPrelude() {
		kind := strings.TrimPrefix(id.String(), "smithy.api#")
		kind = strings.ToLower(kind[:1]) + kind[1:]
		return simpleGoType(kind)
	}
	return e.Scope.PascalType(e.Model.Name(id))
}
