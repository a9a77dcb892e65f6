package smithy

import (
	"fmt"
	"strings"
	"sync"
)

// ShapeId is an interned handle for a Smithy absolute shape identifier
// ("namespace#Name" or "namespace#Name$member"). Identity is by hash: two
// equal strings always produce the same ShapeId, and two different strings
// are assumed never to collide. A 32-bit hash is large enough that a model
// of any real-world size (tens of thousands of shapes) has a collision
// probability far below the threshold where it would ever fire by chance,
// so a genuine collision is treated as a model-bug error rather than
// guarded against structurally.
type ShapeId uint32

// fnv1a32 hashes the interned identifier string. FNV-1a is used instead of
// a third-party hash because it is a one-line, allocation-free, stdlib-only
// algorithm with good avalanche behavior on short ASCII keys -- nothing in
// the retrieved pack brings in a hashing library for this purpose, and
// reaching for one here would be pure ceremony.
func fnv1a32(s string) uint32 {
	const offset = 2166136261
	const prime = 16777619
	h := uint32(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

var internMu sync.RWMutex
var internTable = map[ShapeId]string{}

// ErrShapeIdCollision is returned (and, for the prelude's own fixed ids,
// would indicate a generator bug) when two distinct identifier strings hash
// to the same ShapeId.
type ErrShapeIdCollision struct {
	Id       ShapeId
	Existing string
	New      string
}

func (e *ErrShapeIdCollision) Error() string {
	return fmt.Sprintf("shape id collision at hash %d: %q vs %q", uint32(e.Id), e.Existing, e.New)
}

// ShapeIdOf interns an absolute shape identifier string and returns its
// ShapeId. Prelude shapes resolve to their fixed, well-known ids so that
// ShapeIdOf("smithy.api#String") == ShapeIdString regardless of hashing.
func ShapeIdOf(absolute string) (ShapeId, error) {
	if id, ok := preludeIds[absolute]; ok {
		return id, nil
	}
	id := ShapeId(fnv1a32(absolute))
	internMu.Lock()
	defer internMu.Unlock()
	if existing, ok := internTable[id]; ok {
		if existing != absolute {
			return id, &ErrShapeIdCollision{Id: id, Existing: existing, New: absolute}
		}
		return id, nil
	}
	internTable[id] = absolute
	return id, nil
}

// MustShapeIdOf is ShapeIdOf with a panic on error, for use with literal,
// known-good identifiers (tests, prelude bootstrapping).
func MustShapeIdOf(absolute string) ShapeId {
	id, err := ShapeIdOf(absolute)
	if err != nil {
		panic(err)
	}
	return id
}

// ComposeMember builds a member shape id from a parent absolute id and a
// member name, joined with "$".
func ComposeMember(parent string, member string) string {
	return parent + "$" + member
}

// ShapeIdCompose is the member-id analogue of ShapeIdOf.
func ShapeIdCompose(parent string, member string) (ShapeId, error) {
	return ShapeIdOf(ComposeMember(parent, member))
}

// String returns the original identifier string if known to this process's
// intern table (prelude ids always resolve), else a hex placeholder.
func (id ShapeId) String() string {
	if s, ok := preludeNames[id]; ok {
		return s
	}
	internMu.RLock()
	defer internMu.RUnlock()
	if s, ok := internTable[id]; ok {
		return s
	}
	return fmt.Sprintf("ShapeId(%#08x)", uint32(id))
}

// Namespace returns the "namespace" portion of a shape id (before '#').
func (id ShapeId) Namespace() string {
	s := id.String()
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

// Member splits an id of the form "ns#Name$member" into its parent id and
// member name. ok is false if the id has no member component.
func (id ShapeId) Member() (parent ShapeId, member string, ok bool) {
	s := id.String()
	i := strings.IndexByte(s, '$')
	if i < 0 {
		return id, "", false
	}
	parentStr := s[:i]
	member = s[i+1:]
	pid, err := ShapeIdOf(parentStr)
	if err != nil {
		return id, "", false
	}
	return pid, member, true
}

func (id ShapeId) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

func (id *ShapeId) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	got, err := ShapeIdOf(s)
	if err != nil {
		return err
	}
	*id = got
	return nil
}

// Well-known Smithy prelude ids. These are fixed, out-of-band identifiers
// so that core algorithms (protocol binding, code emission) can switch on
// them without depending on process-wide interning order.
const preludeBase = 0xFFFF0000

const (
	ShapeIdUnit ShapeId = preludeBase + iota
	ShapeIdBlob
	ShapeIdBoolean
	ShapeIdString
	ShapeIdByte
	ShapeIdShort
	ShapeIdInteger
	ShapeIdLong
	ShapeIdFloat
	ShapeIdDouble
	ShapeIdBigInteger
	ShapeIdBigDecimal
	ShapeIdTimestamp
	ShapeIdDocument
	ShapeIdPrimitiveBoolean
)

var preludeIds = map[string]ShapeId{
	"smithy.api#Unit":             ShapeIdUnit,
	"smithy.api#Blob":             ShapeIdBlob,
	"smithy.api#Boolean":          ShapeIdBoolean,
	"smithy.api#String":           ShapeIdString,
	"smithy.api#Byte":             ShapeIdByte,
	"smithy.api#Short":            ShapeIdShort,
	"smithy.api#Integer":          ShapeIdInteger,
	"smithy.api#Long":             ShapeIdLong,
	"smithy.api#Float":            ShapeIdFloat,
	"smithy.api#Double":           ShapeIdDouble,
	"smithy.api#BigInteger":       ShapeIdBigInteger,
	"smithy.api#BigDecimal":       ShapeIdBigDecimal,
	"smithy.api#Timestamp":        ShapeIdTimestamp,
	"smithy.api#Document":         ShapeIdDocument,
	"smithy.api#PrimitiveBoolean": ShapeIdPrimitiveBoolean,
}

var preludeNames = func() map[ShapeId]string {
	m := make(map[ShapeId]string, len(preludeIds))
	for s, id := range preludeIds {
		m[id] = s
	}
	return m
}()

// IsPrelude reports whether id names a fixed smithy.api prelude shape.
func (id ShapeId) IsPrelude() bool {
	_, ok := preludeNames[id]
	return ok
}
