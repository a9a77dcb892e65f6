package smithy

import (
	"fmt"

	"github.com/smithy-gen/sdkgen/data"
)

// TraitValue is a single parsed trait application: the interned id of the
// trait shape, and its payload decoded into a Go-native shape by the
// registry's parser for that trait. Most traits carry a small structured
// payload (smithy.api#http, smithy.api#length) rather than opaque JSON, so
// downstream packages (rules, protocol, codegen) can type-assert Raw instead
// of re-parsing a *data.Object every time they ask for a trait.
type TraitValue struct {
	Id  ShapeId
	Raw interface{}
}

// TraitParser decodes one trait's raw JSON-AST payload (nil for marker
// traits, a *data.Object for structured traits, or a scalar) into whatever
// representation the rest of the generator wants to consume.
type TraitParser func(payload interface{}) (interface{}, error)

// TraitRegistry is a pluggable, trait-shape-id-keyed table of TraitParsers.
// Traits with no registered parser fall back to passthrough: their raw JSON
// value is kept as-is, so an unrecognized or custom trait never blocks
// model loading.
type TraitRegistry struct {
	parsers map[string]TraitParser
}

func NewTraitRegistry() *TraitRegistry {
	r := &TraitRegistry{parsers: make(map[string]TraitParser)}
	r.registerBuiltins()
	return r
}

func (r *TraitRegistry) Register(traitId string, parser TraitParser) {
	r.parsers[traitId] = parser
}

func (r *TraitRegistry) Parse(traitId string, payload interface{}) (interface{}, error) {
	if p, ok := r.parsers[traitId]; ok {
		return p(payload)
	}
	return payload, nil
}

// HttpTrait is the decoded form of smithy.api#http.
type HttpTrait struct {
	Method string
	Uri    string
	Code   int
}

// HttpErrorTrait is the decoded form of smithy.api#httpError.
type HttpErrorTrait struct {
	Code int
}

// LengthTrait is the decoded form of smithy.api#length.
type LengthTrait struct {
	Min, Max     int64
	HasMin, HasMax bool
}

// RangeTrait is the decoded form of smithy.api#range, constraining a
// numeric shape's legal value. Bounds are kept at arbitrary precision
// since a bigDecimal member's range can exceed what a float64 represents
// exactly.
type RangeTrait struct {
	Min, Max       *data.Decimal
	HasMin, HasMax bool
}

// EnumValueTrait is the decoded form of smithy.api#enumValue, used on enum
// and intEnum members.
type EnumValueTrait struct {
	StringValue string
	IntValue    int
	IsString    bool
}

// RetryableTrait is the decoded form of smithy.api#retryable.
type RetryableTrait struct {
	Throttling bool
}

// EndpointRuleSetTrait wraps the raw ruleset document for lazy parsing by
// the rules package, which owns the endpoint rules IR.
type EndpointRuleSetTrait struct {
	Document *data.Object
}

// EndpointTestsTrait wraps the raw endpoint test-case document.
type EndpointTestsTrait struct {
	Document *data.Object
}

// AuthTrait lists the shape ids of the auth schemes applicable to an
// operation or service, in priority order.
type AuthTrait struct {
	Schemes []string
}

// SigV4Trait is the decoded form of aws.auth#sigv4.
type SigV4Trait struct {
	Name string
}

// ServiceTraitInfo is the decoded form of aws.api#service.
type ServiceTraitInfo struct {
	SdkId         string
	ArnNamespace  string
	EndpointPrefix string
}

// asObject accepts both the *data.Object this module constructs directly
// (tests, programmatic traits) and the plain map[string]interface{} that
// goccy/go-json produces for a nested object one level below a *data.Object
// field, since Go's json package only calls UnmarshalJSON on the
// struct-tagged field itself, not on every value nested inside it.
func asObject(payload interface{}) (*data.Object, bool) {
	switch v := payload.(type) {
	case *data.Object:
		return v, true
	case map[string]interface{}:
		return data.ObjectFromMap(v), true
	default:
		return nil, false
	}
}

func (r *TraitRegistry) registerBuiltins() {
	marker := func(payload interface{}) (interface{}, error) { return true, nil }
	r.Register("smithy.api#required", marker)
	r.Register("smithy.api#readonly", marker)
	r.Register("smithy.api#idempotent", marker)
	r.Register("smithy.api#sparse", marker)
	r.Register("smithy.api#uniqueItems", marker)
	r.Register("smithy.api#sensitive", marker)
	r.Register("smithy.api#error", func(payload interface{}) (interface{}, error) {
		s, _ := payload.(string)
		return s, nil // "client" or "server"
	})
	r.Register("smithy.api#documentation", func(payload interface{}) (interface{}, error) {
		s, _ := payload.(string)
		return s, nil
	})
	r.Register("smithy.api#http", func(payload interface{}) (interface{}, error) {
		o, ok := asObject(payload)
		if !ok {
			return nil, fmt.Errorf("smithy.api#http: expected object payload")
		}
		return &HttpTrait{
			Method: o.GetString("method"),
			Uri:    o.GetString("uri"),
			Code:   int(o.GetInt("code")),
		}, nil
	})
	r.Register("smithy.api#httpError", func(payload interface{}) (interface{}, error) {
		switch v := payload.(type) {
		case float64:
			return &HttpErrorTrait{Code: int(v)}, nil
		case int:
			return &HttpErrorTrait{Code: v}, nil
		default:
			return nil, fmt.Errorf("smithy.api#httpError: expected numeric payload")
		}
	})
	r.Register("smithy.api#length", func(payload interface{}) (interface{}, error) {
		o, ok := asObject(payload)
		if !ok {
			return nil, fmt.Errorf("smithy.api#length: expected object payload")
		}
		lt := &LengthTrait{}
		if o.Has("min") {
			lt.Min = int64(o.GetInt("min"))
			lt.HasMin = true
		}
		if o.Has("max") {
			lt.Max = int64(o.GetInt("max"))
			lt.HasMax = true
		}
		return lt, nil
	})
	r.Register("smithy.api#range", func(payload interface{}) (interface{}, error) {
		o, ok := asObject(payload)
		if !ok {
			return nil, fmt.Errorf("smithy.api#range: expected object payload")
		}
		rt := &RangeTrait{}
		if o.Has("min") {
			rt.Min = o.GetDecimal("min")
			rt.HasMin = true
		}
		if o.Has("max") {
			rt.Max = o.GetDecimal("max")
			rt.HasMax = true
		}
		return rt, nil
	})
	r.Register("smithy.api#enumValue", func(payload interface{}) (interface{}, error) {
		switch v := payload.(type) {
		case string:
			return &EnumValueTrait{StringValue: v, IsString: true}, nil
		case float64:
			return &EnumValueTrait{IntValue: int(v)}, nil
		default:
			return nil, fmt.Errorf("smithy.api#enumValue: unexpected payload type")
		}
	})
	r.Register("smithy.api#retryable", func(payload interface{}) (interface{}, error) {
		o, ok := asObject(payload)
		if !ok {
			return &RetryableTrait{}, nil
		}
		return &RetryableTrait{Throttling: o.GetBool("throttling")}, nil
	})
	r.Register("smithy.api#mixin", marker)
	r.Register("smithy.api#trait", marker)
	r.Register("smithy.api#httpLabel", marker)
	r.Register("smithy.api#httpPayload", marker)
	stringPayload := func(payload interface{}) (interface{}, error) {
		s, _ := payload.(string)
		return s, nil
	}
	r.Register("smithy.api#httpQuery", stringPayload)
	r.Register("smithy.api#httpHeader", stringPayload)
	r.Register("smithy.api#httpPrefixHeaders", stringPayload)
	r.Register("smithy.rules#endpointRuleSet", func(payload interface{}) (interface{}, error) {
		o, ok := asObject(payload)
		if !ok {
			return nil, fmt.Errorf("smithy.rules#endpointRuleSet: expected object payload")
		}
		return &EndpointRuleSetTrait{Document: o}, nil
	})
	r.Register("smithy.rules#endpointTests", func(payload interface{}) (interface{}, error) {
		o, ok := asObject(payload)
		if !ok {
			return nil, fmt.Errorf("smithy.rules#endpointTests: expected object payload")
		}
		return &EndpointTestsTrait{Document: o}, nil
	})
	r.Register("smithy.api#auth", func(payload interface{}) (interface{}, error) {
		items, ok := payload.([]interface{})
		if !ok {
			return nil, fmt.Errorf("smithy.api#auth: expected array payload")
		}
		at := &AuthTrait{}
		for _, it := range items {
			if s, ok := it.(string); ok {
				at.Schemes = append(at.Schemes, s)
			}
		}
		return at, nil
	})
	r.Register("aws.auth#sigv4", func(payload interface{}) (interface{}, error) {
		o, ok := asObject(payload)
		if !ok {
			return nil, fmt.Errorf("aws.auth#sigv4: expected object payload")
		}
		return &SigV4Trait{Name: o.GetString("name")}, nil
	})
	r.Register("aws.api#service", func(payload interface{}) (interface{}, error) {
		o, ok := asObject(payload)
		if !ok {
			return nil, fmt.Errorf("aws.api#service: expected object payload")
		}
		return &ServiceTraitInfo{
			SdkId:          o.GetString("sdkId"),
			ArnNamespace:   o.GetString("arnNamespace"),
			EndpointPrefix: o.GetString("endpointPrefix"),
		}, nil
	})
}
