package protocol

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	smithyhttp "github.com/aws/smithy-go/transport/http"

	smithy "github.com/smithy-gen/sdkgen"
)

// BuildRequest turns a RequestBinding plus a concrete endpoint and encoded
// member values into a smithy-go transport/http request, which carries the
// stdlib *http.Request a real HttpClient round-trips.
func BuildRequest(ctx context.Context, endpoint string, binding *RequestBinding, labelValues, queryValues, headerValues map[string]string, body io.Reader) (*smithyhttp.Request, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(substituteLabels(binding.UriTemplate, labelValues), "/")

	q := u.Query()
	for k, v := range queryValues {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, binding.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, v := range headerValues {
		req.Header.Set(k, v)
	}

	return &smithyhttp.Request{Request: req}, nil
}

func substituteLabels(template string, values map[string]string) string {
	out := template
	for k, v := range values {
		out = strings.ReplaceAll(out, "{"+k+"}", url.PathEscape(v))
	}
	return out
}

// DeclaredErrorDiscriminator extracts the wire error-type discriminator from
// a response's X-Amzn-Errortype header, stripped of any ":"-suffix and
// namespace prefix. It does not read the body, so a "__type" body field is
// not inspected; without the header the result is "".
func DeclaredErrorDiscriminator(resp *http.Response) string {
	if v := resp.Header.Get("X-Amzn-Errortype"); v != "" {
		if idx := strings.IndexByte(v, ':'); idx >= 0 {
			v = v[:idx]
		}
		if idx := strings.LastIndexByte(v, '#'); idx >= 0 {
			v = v[idx+1:]
		}
		return v
	}
	return ""
}

// ResolveAuth picks the signer to apply for an operation given the service's
// @auth trait and the operation's own possibly-narrower @auth trait,
// returning the chosen scheme's ShapeId.
func ResolveAuth(sym *smithy.SymbolsProvider, serviceId, operationId smithy.ShapeId) (smithy.ShapeId, bool) {
	authTraitId := smithy.MustShapeIdOf("smithy.api#auth")
	sigv4TraitId := smithy.MustShapeIdOf("aws.auth#sigv4")

	if tv, ok := sym.GetTrait(operationId, authTraitId); ok {
		if at, ok := tv.Raw.(*smithy.AuthTrait); ok && len(at.Schemes) > 0 {
			return schemeShapeId(at.Schemes[0])
		}
	}
	if tv, ok := sym.GetTrait(serviceId, authTraitId); ok {
		if at, ok := tv.Raw.(*smithy.AuthTrait); ok && len(at.Schemes) > 0 {
			return schemeShapeId(at.Schemes[0])
		}
	}
	if sym.HasTrait(serviceId, sigv4TraitId) {
		return sigv4TraitId, true
	}
	return smithy.ShapeId(0), false
}

func schemeShapeId(name string) (smithy.ShapeId, bool) {
	id, err := smithy.ShapeIdOf(name)
	if err != nil {
		return smithy.ShapeId(0), false
	}
	return id, true
}
