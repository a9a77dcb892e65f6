/*
   Copyright 2021 Lee R. Boynton

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/
package smithy

import (
	"fmt"
)

// Model is the interned, post-parse form of one or more merged AST
// documents: every shape id has been hashed into a ShapeId, every trait
// application has been routed through a TraitRegistry parser, and mixins
// are recorded but not yet flattened (that is SymbolsProvider's job, so
// flattening can stay lazy and memoized).
type Model struct {
	shapes     map[ShapeId]ShapeType
	names      map[ShapeId]string
	traits     map[ShapeId][]TraitValue
	mixins     map[ShapeId][]ShapeId
	serviceId  ShapeId
	hasService bool
}

func newModel() *Model {
	return &Model{
		shapes: make(map[ShapeId]ShapeType),
		names:  make(map[ShapeId]string),
		traits: make(map[ShapeId][]TraitValue),
		mixins: make(map[ShapeId][]ShapeId),
	}
}

func (m *Model) ShapeType(id ShapeId) (ShapeType, bool) {
	t, ok := m.shapes[id]
	return t, ok
}

func (m *Model) Name(id ShapeId) string {
	return m.names[id]
}

func (m *Model) Traits(id ShapeId) []TraitValue {
	return m.traits[id]
}

func (m *Model) Mixins(id ShapeId) []ShapeId {
	return m.mixins[id]
}

func (m *Model) ServiceId() (ShapeId, bool) {
	return m.serviceId, m.hasService
}

// AllShapeIds returns every interned shape id in the model, in no
// particular order; callers that need determinism should sort on
// ShapeId.String().
func (m *Model) AllShapeIds() []ShapeId {
	ids := make([]ShapeId, 0, len(m.shapes))
	for id := range m.shapes {
		ids = append(ids, id)
	}
	return ids
}

func (m *Model) put(id ShapeId, name string, t ShapeType) {
	m.shapes[id] = t
	m.names[id] = name
}

func internRef(ref *ShapeRef) (ShapeId, bool, error) {
	if ref == nil {
		return 0, false, nil
	}
	id, err := ShapeIdOf(ref.Target)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func internRefList(refs []*ShapeRef) ([]ShapeId, error) {
	out := make([]ShapeId, 0, len(refs))
	for _, r := range refs {
		id, ok, err := internRef(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// BuildModel interns one assembled AST into a Model, dispatching every
// trait application through registry and routing non-fatal problems into
// issues. Errors are returned directly for malformed shape ids, malformed
// trait payloads and structurally incomplete shapes (a list/set without a
// member, a map without a key or value), since those indicate a broken
// model rather than a convention the registry just doesn't happen to know
// about; a non-fatal problem becomes an error too when issues' policy
// aborts on it.
func BuildModel(ast *AST, registry *TraitRegistry, issues *IssuesBag) (*Model, error) {
	if registry == nil {
		registry = NewTraitRegistry()
	}
	if issues == nil {
		issues = NewIssuesBag(IssuePolicyCollect)
	}
	m := newModel()
	if ast.Shapes == nil {
		return m, nil
	}
	for _, name := range ast.Shapes.Keys() {
		shape := ast.Shapes.Get(name)
		id, err := ShapeIdOf(name)
		if err != nil {
			return nil, fmt.Errorf("building model: %w", err)
		}
		if err := m.addTraits(registry, id, shape.Traits); err != nil {
			return nil, err
		}
		st, err := m.buildShapeType(registry, name, id, shape, issues)
		if err != nil {
			return nil, err
		}
		Debug(fmt.Sprintf("interned shape %s (%s)", name, st.TypeName()))
		m.put(id, name, st)
		if len(shape.Mixins) > 0 {
			mixinIds, err := internRefList(shape.Mixins)
			if err != nil {
				return nil, err
			}
			m.mixins[id] = mixinIds
		}
		if _, isService := st.(*ServiceShape); isService {
			if m.hasService {
				if err := issues.RaiseGlobal("model declares more than one service shape; keeping first: %s", m.names[m.serviceId]); err != nil {
					return nil, err
				}
			} else {
				m.serviceId = id
				m.hasService = true
			}
		}
	}
	return m, nil
}

func (m *Model) addTraits(registry *TraitRegistry, id ShapeId, traits interface {
	Keys() []string
	Get(string) interface{}
}) error {
	if traits == nil {
		return nil
	}
	for _, traitName := range traits.Keys() {
		traitId, err := ShapeIdOf(traitName)
		if err != nil {
			return fmt.Errorf("shape %s: %w", id, err)
		}
		raw, err := registry.Parse(traitName, traits.Get(traitName))
		if err != nil {
			return fmt.Errorf("shape %s: trait %s: %w", id, traitName, err)
		}
		m.traits[id] = append(m.traits[id], TraitValue{Id: traitId, Raw: raw})
	}
	return nil
}

func (m *Model) buildShapeType(registry *TraitRegistry, name string, id ShapeId, shape *Shape, issues *IssuesBag) (ShapeType, error) {
	switch shape.Type {
	case "list", "set":
		if shape.Member == nil {
			return nil, fmt.Errorf("shape %s: list/set missing member", name)
		}
		memberId, err := m.addMember(registry, name, "member", shape.Member)
		if err != nil {
			return nil, err
		}
		return &ListShape{Member: memberId}, nil
	case "map":
		if shape.Key == nil || shape.Value == nil {
			return nil, fmt.Errorf("shape %s: map missing key or value", name)
		}
		keyId, err := m.addMember(registry, name, "key", shape.Key)
		if err != nil {
			return nil, err
		}
		valId, err := m.addMember(registry, name, "value", shape.Value)
		if err != nil {
			return nil, err
		}
		return &MapShape{Key: keyId, Value: valId}, nil
	case "structure":
		members, mixins, err := m.buildMembers(registry, name, shape)
		if err != nil {
			return nil, err
		}
		return &StructureShape{Members: members, Mixins: mixins}, nil
	case "union":
		members, mixins, err := m.buildMembers(registry, name, shape)
		if err != nil {
			return nil, err
		}
		return &UnionShape{Members: members, Mixins: mixins}, nil
	case "enum":
		members, _, err := m.buildMembers(registry, name, shape)
		if err != nil {
			return nil, err
		}
		return &EnumShape{Members: members}, nil
	case "intEnum":
		members, _, err := m.buildMembers(registry, name, shape)
		if err != nil {
			return nil, err
		}
		return &IntEnumShape{Members: members}, nil
	case "service":
		ops, err := internRefList(shape.Operations)
		if err != nil {
			return nil, err
		}
		ress, err := internRefList(shape.Resources)
		if err != nil {
			return nil, err
		}
		errs, err := internRefList(shape.Errors)
		if err != nil {
			return nil, err
		}
		return &ServiceShape{Meta: ServiceMeta{
			Version: shape.Version, Operations: ops, Resources: ress,
			Errors: errs, Rename: shape.Rename,
		}}, nil
	case "resource":
		ids := make(map[string]ShapeId, len(shape.Identifiers))
		for k, ref := range shape.Identifiers {
			rid, ok, err := internRef(ref)
			if err != nil {
				return nil, err
			}
			if ok {
				ids[k] = rid
			}
		}
		meta := ResourceMeta{Identifiers: ids}
		var err error
		if meta.Create, meta.HasCreate, err = internRef(shape.Create); err != nil {
			return nil, err
		}
		if meta.Put, meta.HasPut, err = internRef(shape.Put); err != nil {
			return nil, err
		}
		if meta.Read, meta.HasRead, err = internRef(shape.Read); err != nil {
			return nil, err
		}
		if meta.Update, meta.HasUpdate, err = internRef(shape.Update); err != nil {
			return nil, err
		}
		if meta.Delete, meta.HasDelete, err = internRef(shape.Delete); err != nil {
			return nil, err
		}
		if meta.List, meta.HasList, err = internRef(shape.List); err != nil {
			return nil, err
		}
		if meta.CollectionOperations, err = internRefList(shape.CollectionOperations); err != nil {
			return nil, err
		}
		if meta.Operations, err = internRefList(shape.Operations); err != nil {
			return nil, err
		}
		if meta.Resources, err = internRefList(shape.Resources); err != nil {
			return nil, err
		}
		return &ResourceShape{Meta: meta}, nil
	case "operation":
		meta := OperationMeta{}
		var err error
		if meta.Input, meta.HasInput, err = internRef(shape.Input); err != nil {
			return nil, err
		}
		if meta.Output, meta.HasOutput, err = internRef(shape.Output); err != nil {
			return nil, err
		}
		if meta.Errors, err = internRefList(shape.Errors); err != nil {
			return nil, err
		}
		return &OperationShape{Meta: meta}, nil
	default:
		if simpleShapeKinds[shape.Type] {
			return newSimple(shape.Type), nil
		}
		if err := issues.RaiseGlobal("shape %s: unrecognized shape type %q, treating as document", name, shape.Type); err != nil {
			return nil, err
		}
		return newSimple("document"), nil
	}
}

// buildMembers interns each member of a structure/union/enum/intEnum shape,
// giving it its own ShapeId of the form "parent$member" and recording its
// traits, then returns the member ids in declaration order.
func (m *Model) buildMembers(registry *TraitRegistry, parentName string, shape *Shape) ([]ShapeId, []ShapeId, error) {
	var members []ShapeId
	if shape.Members != nil {
		for _, memberName := range shape.Members.Keys() {
			member := shape.Members.Get(memberName)
			id, err := m.addMember(registry, parentName, memberName, member)
			if err != nil {
				return nil, nil, err
			}
			members = append(members, id)
		}
	}
	mixins, err := internRefList(shape.Mixins)
	if err != nil {
		return nil, nil, err
	}
	return members, mixins, nil
}

func (m *Model) addMember(registry *TraitRegistry, parentName, memberName string, member *Member) (ShapeId, error) {
	memberAbs := ComposeMember(parentName, memberName)
	id, err := ShapeIdOf(memberAbs)
	if err != nil {
		return 0, err
	}
	targetId, err := ShapeIdOf(member.Target)
	if err != nil {
		return 0, err
	}
	if err := m.addTraits(registry, id, member.Traits); err != nil {
		return 0, err
	}
	m.put(id, memberAbs, &TargetShape{Target: targetId})
	return id, nil
}
