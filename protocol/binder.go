// Package protocol maps an operation shape to wire request/response
// construction. restJson1 and awsJson1_0 are fully elaborated; restXml,
// awsQuery, and ec2Query are sketched, since their wire formats need
// fidelity this generator does not attempt to guess from partial
// reference material.
package protocol

import (
	"fmt"
	"strings"

	smithy "github.com/smithy-gen/sdkgen"
)

// ProtocolId names one of the aws.protocols# Smithy protocol traits.
type ProtocolId string

const (
	RestJson1  ProtocolId = "aws.protocols#restJson1"
	AwsJson10  ProtocolId = "aws.protocols#awsJson1_0"
	AwsJson11  ProtocolId = "aws.protocols#awsJson1_1"
	RestXml    ProtocolId = "aws.protocols#restXml"
	AwsQuery   ProtocolId = "aws.protocols#awsQuery"
	Ec2Query   ProtocolId = "aws.protocols#ec2Query"
)

// ErrProtocolNotElaborated is returned by BindRequest and BindResponse for a protocol this
// implementation only sketches: restXml, awsQuery, ec2Query need
// wire-format fidelity this module does not attempt to guess from partial
// reference material.
type ErrProtocolNotElaborated struct {
	Protocol ProtocolId
}

func (e *ErrProtocolNotElaborated) Error() string {
	return fmt.Sprintf("protocol %s is sketched but not fully elaborated in this generator", e.Protocol)
}

// RequestBinding describes how an operation's input shape maps onto an
// HTTP request for its protocol.
type RequestBinding struct {
	Method        string
	UriTemplate   string
	LabelMembers  []smithy.ShapeId // members bound via @httpLabel
	QueryMembers  []smithy.ShapeId // members bound via @httpQuery
	HeaderMembers []smithy.ShapeId // members bound via @httpHeader
	PrefixHeaderMembers []smithy.ShapeId // members bound via @httpPrefixHeaders
	PayloadMember smithy.ShapeId
	HasPayload    bool
	BodyFormat    string // "json", "xml", "form-urlencoded", "none"
}

// ResponseBinding describes how to parse an operation's output/errors.
type ResponseBinding struct {
	SuccessStatus int
	BodyFormat    string
}

// Binder resolves wire bindings for operations belonging to one service,
// dispatching by the service's resolved protocol trait.
type Binder struct {
	Model   *smithy.Model
	Symbols *smithy.SymbolsProvider
}

func NewBinder(m *smithy.Model, sym *smithy.SymbolsProvider) *Binder {
	return &Binder{Model: m, Symbols: sym}
}

// ResolveProtocol picks the first protocol trait the binder recognizes off
// a service shape, checked in fixed priority order.
func (b *Binder) ResolveProtocol(serviceId smithy.ShapeId) (ProtocolId, error) {
	candidates := []ProtocolId{RestJson1, AwsJson10, AwsJson11, RestXml, AwsQuery, Ec2Query}
	for _, c := range candidates {
		traitId, err := smithy.ShapeIdOf(string(c))
		if err != nil {
			return "", err
		}
		if b.Symbols.HasTrait(serviceId, traitId) {
			return c, nil
		}
	}
	return "", fmt.Errorf("service %s declares no recognized protocol trait", serviceId)
}

// BindRequest builds a RequestBinding for one operation under proto.
func (b *Binder) BindRequest(proto ProtocolId, operationId smithy.ShapeId) (*RequestBinding, error) {
	switch proto {
	case RestJson1:
		return b.bindRestRequest(operationId, "json")
	case RestXml:
		return nil, &ErrProtocolNotElaborated{Protocol: proto}
	case AwsJson10, AwsJson11:
		return b.bindRpcRequest(operationId, "json")
	case AwsQuery, Ec2Query:
		return nil, &ErrProtocolNotElaborated{Protocol: proto}
	default:
		return nil, fmt.Errorf("unknown protocol %s", proto)
	}
}

// bindRpcRequest handles the awsJson1_0/awsJson1_1 RPC-style protocols:
// every operation is a POST to "/" with the whole input serialized as the
// JSON body and the target named in an X-Amz-Target header, so there are
// no per-member wire bindings to resolve.
func (b *Binder) bindRpcRequest(operationId smithy.ShapeId, bodyFormat string) (*RequestBinding, error) {
	return &RequestBinding{
		Method:      "POST",
		UriTemplate: "/",
		BodyFormat:  bodyFormat,
	}, nil
}

func (b *Binder) bindRestRequest(operationId smithy.ShapeId, bodyFormat string) (*RequestBinding, error) {
	st, ok := b.Model.ShapeType(operationId)
	if !ok {
		return nil, fmt.Errorf("unknown operation %s", operationId)
	}
	op, ok := st.(*smithy.OperationShape)
	if !ok {
		return nil, fmt.Errorf("%s is not an operation", operationId)
	}
	binding := &RequestBinding{Method: "POST", UriTemplate: "/", BodyFormat: bodyFormat}
	httpTraitId, err := smithy.ShapeIdOf("smithy.api#http")
	if err != nil {
		return nil, err
	}
	if tv, ok := b.Symbols.GetTrait(operationId, httpTraitId); ok {
		if h, ok := tv.Raw.(*smithy.HttpTrait); ok {
			binding.Method = h.Method
			binding.UriTemplate = h.Uri
		}
	}
	if !op.Meta.HasInput {
		binding.BodyFormat = "none"
		return binding, nil
	}
	labelTraitId, _ := smithy.ShapeIdOf("smithy.api#httpLabel")
	queryTraitId, _ := smithy.ShapeIdOf("smithy.api#httpQuery")
	headerTraitId, _ := smithy.ShapeIdOf("smithy.api#httpHeader")
	prefixHeadersTraitId, _ := smithy.ShapeIdOf("smithy.api#httpPrefixHeaders")
	payloadTraitId, _ := smithy.ShapeIdOf("smithy.api#httpPayload")

	members, err := b.Symbols.Members(op.Meta.Input)
	if err != nil {
		return nil, err
	}
	for _, memberId := range members {
		switch {
		case b.Symbols.HasTrait(memberId, labelTraitId):
			binding.LabelMembers = append(binding.LabelMembers, memberId)
		case b.Symbols.HasTrait(memberId, queryTraitId):
			binding.QueryMembers = append(binding.QueryMembers, memberId)
		case b.Symbols.HasTrait(memberId, headerTraitId):
			binding.HeaderMembers = append(binding.HeaderMembers, memberId)
		case b.Symbols.HasTrait(memberId, prefixHeadersTraitId):
			binding.PrefixHeaderMembers = append(binding.PrefixHeaderMembers, memberId)
		case b.Symbols.HasTrait(memberId, payloadTraitId):
			binding.PayloadMember = memberId
			binding.HasPayload = true
		}
	}
	return binding, nil
}

// BindResponse builds a ResponseBinding for one operation under proto.
func (b *Binder) BindResponse(proto ProtocolId, operationId smithy.ShapeId) (*ResponseBinding, error) {
	switch proto {
	case RestJson1:
		return &ResponseBinding{SuccessStatus: 200, BodyFormat: "json"}, nil
	case AwsJson10, AwsJson11:
		return &ResponseBinding{SuccessStatus: 200, BodyFormat: "json"}, nil
	case RestXml, AwsQuery, Ec2Query:
		return nil, &ErrProtocolNotElaborated{Protocol: proto}
	default:
		return nil, fmt.Errorf("unknown protocol %s", proto)
	}
}

// MatchError resolves an error response to one of an operation's declared
// errors by its wire discriminator (the "__type" body field or the
// X-Amzn-Errortype header, depending on protocol), which may be either the
// error's absolute name or its local name, falling back to the @httpError
// code when no declared error matches the discriminator.
func (b *Binder) MatchError(declaredErrors []smithy.ShapeId, discriminator string, httpStatus int) (smithy.ShapeId, bool) {
	for _, errId := range declaredErrors {
		name := b.Model.Name(errId)
		local := name
		if i := strings.LastIndexByte(name, '#'); i >= 0 {
			local = name[i+1:]
		}
		if discriminator != "" && (name == discriminator || local == discriminator) {
			return errId, true
		}
	}
	httpErrorTraitId, _ := smithy.ShapeIdOf("smithy.api#httpError")
	for _, errId := range declaredErrors {
		if tv, ok := b.Symbols.GetTrait(errId, httpErrorTraitId); ok {
			if he, ok := tv.Raw.(*smithy.HttpErrorTrait); ok && he.Code == httpStatus {
				return errId, true
			}
		}
	}
	return 0, false
}
