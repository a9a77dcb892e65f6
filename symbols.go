package smithy

import (
	"fmt"
	"sort"
	"sync"
)

// SymbolsProvider is the read-only query surface code generation runs
// against: it wraps a Model with mixin flattening (memoized, cycle-checked)
// and a handful of convenience lookups (operations of a service, errors of
// an operation) so that downstream packages never have to walk traits or
// mixins by hand. Construction is cheap; flattening happens lazily the
// first time a shape's members are asked for and is cached after that,
// since most generator runs only ever touch a fraction of a large model's
// shapes.
type SymbolsProvider struct {
	model *Model

	mu                   sync.Mutex
	flatMembers          map[ShapeId][]ShapeId
	flattening           map[ShapeId]bool // cycle guard, in progress
	flatTraits           map[ShapeId][]TraitValue
	shadowedMemberTraits map[ShapeId][]TraitValue
}

func NewSymbolsProvider(m *Model) *SymbolsProvider {
	return &SymbolsProvider{
		model:                m,
		flatMembers:          make(map[ShapeId][]ShapeId),
		flattening:           make(map[ShapeId]bool),
		flatTraits:           make(map[ShapeId][]TraitValue),
		shadowedMemberTraits: make(map[ShapeId][]TraitValue),
	}
}

func (s *SymbolsProvider) GetShape(id ShapeId) (ShapeType, bool) {
	return s.model.ShapeType(id)
}

func (s *SymbolsProvider) GetName(id ShapeId) string {
	return s.model.Name(id)
}

func (s *SymbolsProvider) ServiceId() (ShapeId, bool) {
	return s.model.ServiceId()
}

// HasTrait reports whether id (directly, or via a flattened mixin) carries
// traitId.
func (s *SymbolsProvider) HasTrait(id ShapeId, traitId ShapeId) bool {
	_, ok := s.GetTrait(id, traitId)
	return ok
}

// GetTrait returns the first trait application matching traitId, checking
// the shape's own traits first, then its flattened mixins, then -- for a
// member that redeclares a name its shape also inherits from a mixin -- the
// traits of the mixin member it shadowed. A mixin never overrides a trait
// the including shape (or member) declares itself; it only fills in traits
// the child never mentions.
func (s *SymbolsProvider) GetTrait(id ShapeId, traitId ShapeId) (TraitValue, bool) {
	for _, tv := range s.model.Traits(id) {
		if tv.Id == traitId {
			return tv, true
		}
	}
	for _, tv := range s.flattenedTraits(id, map[ShapeId]bool{}) {
		if tv.Id == traitId {
			return tv, true
		}
	}
	s.mu.Lock()
	shadowed := s.shadowedMemberTraits[id]
	s.mu.Unlock()
	for _, tv := range shadowed {
		if tv.Id == traitId {
			return tv, true
		}
	}
	return TraitValue{}, false
}

// flattenedTraits walks id's mixin chain depth-first, letting a shape
// closer to id win over one further away (child-wins merge). visiting
// guards against a mixin cycle, which is a model-bug the generator treats
// as "ignore the cycle edge" rather than a fatal error -- the Smithy spec
// itself forbids mixin cycles at validation time, upstream of this package.
func (s *SymbolsProvider) flattenedTraits(id ShapeId, visiting map[ShapeId]bool) []TraitValue {
	s.mu.Lock()
	if cached, ok := s.flatTraits[id]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	if visiting[id] {
		return nil
	}
	visiting[id] = true

	seen := map[ShapeId]bool{}
	var out []TraitValue
	for _, tv := range s.model.Traits(id) {
		if !seen[tv.Id] {
			seen[tv.Id] = true
			out = append(out, tv)
		}
	}
	for _, mixinId := range s.model.Mixins(id) {
		for _, tv := range s.flattenedTraits(mixinId, visiting) {
			if !seen[tv.Id] {
				seen[tv.Id] = true
				out = append(out, tv)
			}
		}
	}

	s.mu.Lock()
	s.flatTraits[id] = out
	s.mu.Unlock()
	return out
}

// Members returns id's own members plus, for a structure/union shape with
// mixins, every member inherited transitively from its mixins that it does
// not itself redeclare. Member order is: the shape's own members first, in
// declaration order, followed by inherited members in mixin-declaration
// order.
func (s *SymbolsProvider) Members(id ShapeId) ([]ShapeId, error) {
	s.mu.Lock()
	if cached, ok := s.flatMembers[id]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	if s.flattening[id] {
		s.mu.Unlock()
		return nil, fmt.Errorf("mixin cycle detected flattening members of %s", id)
	}
	s.flattening[id] = true
	s.mu.Unlock()

	own, mixins, err := s.ownMembersAndMixins(id)
	if err != nil {
		return nil, err
	}
	byMemberName := make(map[string]bool, len(own))
	ownIdByName := make(map[string]ShapeId, len(own))
	for _, mid := range own {
		_, name, ok := mid.Member()
		if ok {
			byMemberName[name] = true
			ownIdByName[name] = mid
		}
	}
	out := append([]ShapeId(nil), own...)
	for _, mixinId := range mixins {
		inherited, err := s.Members(mixinId)
		if err != nil {
			return nil, err
		}
		for _, mid := range inherited {
			_, name, ok := mid.Member()
			if ok && byMemberName[name] {
				// The child (or an earlier mixin) already declares this
				// member name, so mid is shadowed -- per child-wins-over-
				// mixin, its target is dropped, but its traits still merge
				// in underneath whatever the winning member already has.
				s.recordShadowedMemberTraits(ownIdByName[name], mid)
				continue
			}
			if ok {
				byMemberName[name] = true
				ownIdByName[name] = mid
			}
			out = append(out, mid)
		}
	}

	s.mu.Lock()
	delete(s.flattening, id)
	s.flatMembers[id] = out
	s.mu.Unlock()
	return out, nil
}

// recordShadowedMemberTraits merges shadowedId's own traits underneath
// winnerId's, skipping any trait winnerId (or an already-recorded shadow of
// it) already carries, so the first (closest) declaration always wins.
func (s *SymbolsProvider) recordShadowedMemberTraits(winnerId ShapeId, shadowedId ShapeId) {
	shadowedTraits := s.model.Traits(shadowedId)
	if len(shadowedTraits) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.shadowedMemberTraits[winnerId]
	seen := make(map[ShapeId]bool, len(existing))
	for _, tv := range existing {
		seen[tv.Id] = true
	}
	for _, tv := range s.model.Traits(winnerId) {
		seen[tv.Id] = true
	}
	for _, tv := range shadowedTraits {
		if !seen[tv.Id] {
			seen[tv.Id] = true
			existing = append(existing, tv)
		}
	}
	s.shadowedMemberTraits[winnerId] = existing
}

func (s *SymbolsProvider) ownMembersAndMixins(id ShapeId) ([]ShapeId, []ShapeId, error) {
	st, ok := s.model.ShapeType(id)
	if !ok {
		return nil, nil, fmt.Errorf("unknown shape %s", id)
	}
	switch t := st.(type) {
	case *StructureShape:
		return t.Members, t.Mixins, nil
	case *UnionShape:
		return t.Members, t.Mixins, nil
	case *EnumShape:
		return t.Members, nil, nil
	case *IntEnumShape:
		return t.Members, nil, nil
	default:
		return nil, nil, nil
	}
}

// ResolvedTarget follows a member shape id to the shape it targets. If id
// is not a member (has no '$' component) it is returned unchanged.
func (s *SymbolsProvider) ResolvedTarget(id ShapeId) ShapeId {
	if st, ok := s.model.ShapeType(id); ok {
		if ts, ok := st.(*TargetShape); ok {
			return ts.Target
		}
	}
	return id
}

// OperationsOf returns every operation id reachable from a service's own
// operation list and its resources' operation lists, recursively.
func (s *SymbolsProvider) OperationsOf(serviceId ShapeId) ([]ShapeId, error) {
	st, ok := s.model.ShapeType(serviceId)
	if !ok {
		return nil, fmt.Errorf("unknown shape %s", serviceId)
	}
	svc, ok := st.(*ServiceShape)
	if !ok {
		return nil, fmt.Errorf("%s is not a service shape", serviceId)
	}
	var out []ShapeId
	out = append(out, svc.Meta.Operations...)
	for _, resId := range svc.Meta.Resources {
		ops, err := s.operationsOfResource(resId)
		if err != nil {
			return nil, err
		}
		out = append(out, ops...)
	}
	return out, nil
}

func (s *SymbolsProvider) operationsOfResource(resId ShapeId) ([]ShapeId, error) {
	st, ok := s.model.ShapeType(resId)
	if !ok {
		return nil, fmt.Errorf("unknown shape %s", resId)
	}
	res, ok := st.(*ResourceShape)
	if !ok {
		return nil, fmt.Errorf("%s is not a resource shape", resId)
	}
	var out []ShapeId
	lifecycle := []struct {
		has bool
		id  ShapeId
	}{
		{res.Meta.HasCreate, res.Meta.Create}, {res.Meta.HasPut, res.Meta.Put},
		{res.Meta.HasRead, res.Meta.Read}, {res.Meta.HasUpdate, res.Meta.Update},
		{res.Meta.HasDelete, res.Meta.Delete}, {res.Meta.HasList, res.Meta.List},
	}
	for _, lc := range lifecycle {
		if lc.has {
			out = append(out, lc.id)
		}
	}
	out = append(out, res.Meta.CollectionOperations...)
	out = append(out, res.Meta.Operations...)
	for _, childId := range res.Meta.Resources {
		childOps, err := s.operationsOfResource(childId)
		if err != nil {
			return nil, err
		}
		out = append(out, childOps...)
	}
	return out, nil
}

// ErrorsOf returns the error shape ids attributed to an operation, combined
// with any service-wide errors passed in serviceErrors (callers typically
// pass the owning service's ServiceMeta.Errors).
func (s *SymbolsProvider) ErrorsOf(operationId ShapeId, serviceErrors []ShapeId) ([]ShapeId, error) {
	st, ok := s.model.ShapeType(operationId)
	if !ok {
		return nil, fmt.Errorf("unknown shape %s", operationId)
	}
	op, ok := st.(*OperationShape)
	if !ok {
		return nil, fmt.Errorf("%s is not an operation shape", operationId)
	}
	seen := make(map[ShapeId]bool)
	var out []ShapeId
	for _, e := range op.Meta.Errors {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	for _, e := range serviceErrors {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out, nil
}

// SortedShapeIds returns ids sorted by their string form, for deterministic
// emission order.
func SortedShapeIds(ids []ShapeId) []ShapeId {
	out := append([]ShapeId(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
