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

// Package smithy implements the model-ingestion and symbol-resolution core
// of a Smithy 2.0 code generator: a JSON AST reader, shape/trait/mixin
// tables, and a post-parse symbols provider. Subpackages build on top of
// this: rules (endpoint rule sets), protocol (wire binding), codegen
// (target-source emission), sigv4 (request signing), and pipeline
// (per-model task orchestration).
package smithy

import (
	"fmt"
	"os"
	"strings"

	"github.com/smithy-gen/sdkgen/data"
)

const UnspecifiedNamespace = "example"
const UnspecifiedVersion = "0.0"

// AST is the raw, order-preserving JSON representation of one Smithy model
// document, exactly as read off disk. It has not yet been interned into
// ShapeIds or had its traits dispatched to the trait registry -- that is
// the job of BuildModel.
type AST struct {
	Smithy   string       `json:"smithy"`
	Metadata *data.Object `json:"metadata,omitempty"`
	Shapes   *Shapes      `json:"shapes,omitempty"`
}

func (ast *AST) AssemblyVersion() int {
	if strings.HasPrefix(ast.Smithy, "1") {
		return 1
	}
	return 2
}

// Shapes is a map from absolute shape id string to *Shape that preserves
// the order of its keys, unlike a plain Go map. Source order is needed
// downstream to break emission-order ties deterministically.
type Shapes struct {
	keys     []string
	bindings map[string]*Shape
}

func NewShapes() *Shapes {
	return &Shapes{bindings: make(map[string]*Shape)}
}

func (s *Shapes) UnmarshalJSON(raw []byte) error {
	keys, err := data.JsonKeysInOrder(raw)
	if err != nil {
		return err
	}
	shapes := NewShapes()
	shapes.keys = keys
	if err := jsonUnmarshal(raw, &shapes.bindings); err != nil {
		return err
	}
	*s = *shapes
	return nil
}

func (s Shapes) MarshalJSON() ([]byte, error) {
	return marshalOrdered(s.keys, func(k string) interface{} { return s.bindings[k] })
}

func (s *Shapes) Put(key string, val *Shape) {
	if _, ok := s.bindings[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.bindings[key] = val
}

func (s *Shapes) Get(key string) *Shape {
	if s == nil {
		return nil
	}
	return s.bindings[key]
}

func (s *Shapes) Keys() []string {
	if s == nil {
		return nil
	}
	return s.keys
}

func (s *Shapes) Length() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Members is a map from member name to *Member preserving declaration
// order, used by structure/union shapes.
type Members struct {
	keys     []string
	bindings map[string]*Member
}

func NewMembers() *Members {
	return &Members{bindings: make(map[string]*Member)}
}

func (m *Members) UnmarshalJSON(raw []byte) error {
	keys, err := data.JsonKeysInOrder(raw)
	if err != nil {
		return err
	}
	members := NewMembers()
	members.keys = keys
	if err := jsonUnmarshal(raw, &members.bindings); err != nil {
		return err
	}
	*m = *members
	return nil
}

func (m Members) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.keys, func(k string) interface{} { return m.bindings[k] })
}

func (m *Members) Put(key string, val *Member) {
	if _, ok := m.bindings[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.bindings[key] = val
}

func (m *Members) Get(key string) *Member {
	if m == nil {
		return nil
	}
	return m.bindings[key]
}

func (m *Members) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

func (m *Members) Length() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Shape is the JSON-AST form of a single shape declaration, prior to
// ShapeId interning or mixin flattening.
type Shape struct {
	Type   string       `json:"type"`
	Traits *data.Object `json:"traits,omitempty"`

	Member *Member `json:"member,omitempty"` // list

	Key   *Member `json:"key,omitempty"` // map
	Value *Member `json:"value,omitempty"`

	Members *Members    `json:"members,omitempty"` // structure, union
	Mixins  []*ShapeRef `json:"mixins,omitempty"`

	Identifiers          map[string]*ShapeRef `json:"identifiers,omitempty"` // resource
	Create               *ShapeRef            `json:"create,omitempty"`
	Put                  *ShapeRef             `json:"put,omitempty"`
	Read                 *ShapeRef             `json:"read,omitempty"`
	Update               *ShapeRef             `json:"update,omitempty"`
	Delete               *ShapeRef             `json:"delete,omitempty"`
	List                 *ShapeRef             `json:"list,omitempty"`
	CollectionOperations []*ShapeRef           `json:"collectionOperations,omitempty"`

	Operations []*ShapeRef `json:"operations,omitempty"` // resource, service
	Resources  []*ShapeRef `json:"resources,omitempty"`

	Input  *ShapeRef   `json:"input,omitempty"` // operation
	Output *ShapeRef   `json:"output,omitempty"`
	Errors []*ShapeRef `json:"errors,omitempty"`

	Version string            `json:"version,omitempty"` // service
	Rename  map[string]string `json:"rename,omitempty"`
}

type ShapeRef struct {
	Target string `json:"target"`
}

type Member struct {
	Target string       `json:"target"`
	Traits *data.Object `json:"traits,omitempty"`
}

func shapeIdNamespace(id string) string {
	lst := strings.SplitN(id, "#", 2)
	return lst[0]
}

func (ast *AST) PutShape(id string, shape *Shape) {
	if ast.Shapes == nil {
		ast.Shapes = NewShapes()
	}
	ast.Shapes.Put(id, shape)
}

func (ast *AST) GetShape(id string) *Shape {
	if ast.Shapes == nil {
		return nil
	}
	return ast.Shapes.Get(id)
}

func (ast *AST) Namespaces() []string {
	m := make(map[string]int)
	if ast.Shapes != nil {
		for _, id := range ast.Shapes.Keys() {
			m[shapeIdNamespace(id)]++
		}
	}
	nss := make([]string, 0, len(m))
	for k := range m {
		nss = append(nss, k)
	}
	return nss
}

func (ast *AST) ShapeNames() []string {
	if ast.Shapes == nil {
		return nil
	}
	return append([]string(nil), ast.Shapes.Keys()...)
}

// RequiresDocumentType reports whether any shape reachable from the model
// depends on smithy.api#Document, used by generators that only want to pull
// in a Document runtime type when actually needed.
func (ast *AST) RequiresDocumentType() bool {
	included := make(map[string]bool)
	for _, k := range ast.Shapes.Keys() {
		ast.noteDependencies(included, k)
	}
	return included["smithy.api#Document"]
}

func (ast *AST) noteDependenciesFromRef(included map[string]bool, ref *ShapeRef) {
	if ref != nil {
		ast.noteDependencies(included, ref.Target)
	}
}

func (ast *AST) noteDependencies(included map[string]bool, name string) {
	if name == "smithy.api#Document" {
		included[name] = true
		return
	}
	if name == "" || strings.HasPrefix(name, "smithy.api#") {
		return
	}
	if included[name] {
		return
	}
	included[name] = true
	shape := ast.GetShape(name)
	if shape == nil {
		return
	}
	if shape.Traits != nil {
		for _, tk := range shape.Traits.Keys() {
			ast.noteDependencies(included, tk)
		}
	}
	switch shape.Type {
	case "operation":
		ast.noteDependenciesFromRef(included, shape.Input)
		ast.noteDependenciesFromRef(included, shape.Output)
		for _, e := range shape.Errors {
			ast.noteDependenciesFromRef(included, e)
		}
	case "resource":
		for _, v := range shape.Identifiers {
			ast.noteDependenciesFromRef(included, v)
		}
		for _, o := range shape.Operations {
			ast.noteDependenciesFromRef(included, o)
		}
		for _, r := range shape.Resources {
			ast.noteDependenciesFromRef(included, r)
		}
		ast.noteDependenciesFromRef(included, shape.Create)
		ast.noteDependenciesFromRef(included, shape.Put)
		ast.noteDependenciesFromRef(included, shape.Read)
		ast.noteDependenciesFromRef(included, shape.Update)
		ast.noteDependenciesFromRef(included, shape.Delete)
		ast.noteDependenciesFromRef(included, shape.List)
		for _, o := range shape.CollectionOperations {
			ast.noteDependenciesFromRef(included, o)
		}
	case "structure", "union":
		for _, n := range shape.Members.Keys() {
			m := shape.Members.Get(n)
			ast.noteDependencies(included, m.Target)
		}
	case "list", "set":
		ast.noteDependencies(included, shape.Member.Target)
	case "map":
		ast.noteDependencies(included, shape.Key.Target)
		ast.noteDependencies(included, shape.Value.Target)
	}
}

func LoadAST(path string) (*AST, error) {
	var ast *AST
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read smithy model file: %w", err)
	}
	if err := jsonUnmarshal(raw, &ast); err != nil {
		return nil, fmt.Errorf("cannot parse smithy model file %s: %w", path, err)
	}
	if ast.Smithy == "" {
		return nil, fmt.Errorf("cannot parse smithy model file %s: missing \"smithy\" version key", path)
	}
	if !strings.HasPrefix(ast.Smithy, "2") && !strings.HasPrefix(ast.Smithy, "1") {
		return nil, fmt.Errorf("unsupported smithy version %q in %s", ast.Smithy, path)
	}
	return ast, nil
}

func (ast *AST) Merge(src *AST) error {
	if ast.Smithy == "" {
		ast.Smithy = src.Smithy
	} else if ast.Smithy != src.Smithy {
		if strings.HasPrefix(ast.Smithy, "1") && strings.HasPrefix(src.Smithy, "2") {
			ast.Smithy = src.Smithy
		} else {
			fmt.Fprintf(os.Stderr, "//WARNING: smithy version mismatch: %s and %s\n", ast.Smithy, src.Smithy)
		}
	}
	if src.Metadata != nil {
		if ast.Metadata == nil {
			ast.Metadata = src.Metadata
		} else {
			for _, k := range src.Metadata.Keys() {
				v := src.Metadata.Get(k)
				if prev := ast.Metadata.Get(k); prev != nil {
					if err := ast.mergeConflict(k, prev, v); err != nil {
						return err
					}
				}
				ast.Metadata.Put(k, v)
			}
		}
	}
	if src.Shapes != nil {
		for _, k := range src.Shapes.Keys() {
			if tmp := ast.GetShape(k); tmp != nil {
				return fmt.Errorf("duplicate shape in assembly: %s", k)
			}
			ast.PutShape(k, src.GetShape(k))
		}
	}
	return nil
}

func (ast *AST) mergeConflict(k string, v1 interface{}, v2 interface{}) error {
	if data.Equivalent(v1, v2) {
		return nil
	}
	return fmt.Errorf("conflict when merging metadata in models: %s", k)
}

// Filter prunes the model down to shapes tagged with one of tags, plus
// everything those shapes transitively depend on.
func (ast *AST) Filter(tags []string) {
	var root []string
	for _, k := range ast.Shapes.Keys() {
		shape := ast.Shapes.Get(k)
		for _, t := range shape.Traits.GetStringArray("smithy.api#tags") {
			if containsString(tags, t) {
				root = append(root, k)
			}
		}
	}
	included := make(map[string]bool)
	for _, k := range root {
		ast.noteDependencies(included, k)
	}
	filtered := NewShapes()
	for name := range included {
		if !strings.HasPrefix(name, "smithy.api#") {
			filtered.Put(name, ast.GetShape(name))
		}
	}
	ast.Shapes = filtered
}

func containsString(ary []string, val string) bool {
	for _, s := range ary {
		if s == val {
			return true
		}
	}
	return false
}
