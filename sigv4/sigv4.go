// Package sigv4 implements the AWS Signature Version 4 request-signing
// algorithm: canonical request construction, string-to-sign assembly, and
// the four-step HMAC key derivation chain. This is the one piece of the
// generator's output that is runtime, not generated, code -- every emitted
// client imports this package and calls Sign from its transport layer.
package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// EmptyPayloadHash is the hex-lowercase SHA-256 digest of the empty string,
// precomputed since it appears on every signed request with no body.
const EmptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// Target names the service and region a request is being signed for.
type Target struct {
	Region  string
	Service string
}

// CanonicalRequest holds the components needed to build the canonical
// request string. Headers and Query are pre-split into name/value pairs
// so callers don't have to pre-sort; BuildCanonicalRequest does that.
type CanonicalRequest struct {
	Method      string
	Path        string
	Query       map[string]string
	Headers     map[string]string // lowercased header name -> raw value
	PayloadHash string            // hex-lowercase SHA-256; use EmptyPayloadHash if no body
}

func hexSha256(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// uriEncode percent-encodes s leaving only the unreserved set
// A-Za-z0-9-._~ untouched, matching SigV4's encoding rules rather than
// net/url's query-escape rules (which diverge on space and a few others).
func uriEncode(s string, encodeSlash bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		case c == '/' && !encodeSlash:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// CanonicalPath percent-encodes a URI path per the canonical-URI rules,
// segment by segment so existing '/' separators are preserved.
func CanonicalPath(path string) string {
	if path == "" {
		return "/"
	}
	return uriEncode(path, false)
}

// CanonicalQuery sorts query parameters by key and percent-encodes both key
// and value, joining with '&' as "k=v" pairs.
func CanonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, uriEncode(k, true)+"="+uriEncode(params[k], true))
	}
	return strings.Join(parts, "&")
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// CanonicalHeaders returns the canonical headers block and the
// semicolon-joined signed-headers list, headers sorted by lowercased name.
func CanonicalHeaders(headers map[string]string) (block string, signed string) {
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, strings.ToLower(k))
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte(':')
		b.WriteString(collapseWhitespace(headers[n]))
		b.WriteByte('\n')
	}
	return b.String(), strings.Join(names, ";")
}

// BuildCanonicalRequest assembles the newline-joined canonical request
// string.
func BuildCanonicalRequest(req CanonicalRequest) string {
	headerBlock, signedHeaders := CanonicalHeaders(req.Headers)
	payloadHash := req.PayloadHash
	if payloadHash == "" {
		payloadHash = EmptyPayloadHash
	}
	return strings.Join([]string{
		req.Method,
		CanonicalPath(req.Path),
		CanonicalQuery(req.Query),
		headerBlock,
		signedHeaders,
		payloadHash,
	}, "\n")
}

// StringToSign builds "AWS4-HMAC-SHA256\n<timestamp>\n<scope>\n<hash>" for a
// request made at the given ISO8601-basic timestamp (e.g. "20130708T220855Z").
func StringToSign(timestamp, dateStamp string, target Target, canonicalRequest string) string {
	scope := fmt.Sprintf("%s/%s/%s/aws4_request", dateStamp, target.Region, target.Service)
	return strings.Join([]string{
		"AWS4-HMAC-SHA256",
		timestamp,
		scope,
		hexSha256([]byte(canonicalRequest)),
	}, "\n")
}

func hmacSha256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// DeriveSigningKey computes HMAC(HMAC(HMAC(HMAC("AWS4"+secret, date),
// region), service), "aws4_request"), the SigV4 key-derivation chain.
func DeriveSigningKey(secretAccessKey, dateStamp string, target Target) []byte {
	kDate := hmacSha256([]byte("AWS4"+secretAccessKey), []byte(dateStamp))
	kRegion := hmacSha256(kDate, []byte(target.Region))
	kService := hmacSha256(kRegion, []byte(target.Service))
	return hmacSha256(kService, []byte("aws4_request"))
}

// Sign computes the hex-lowercase request signature for the given
// timestamp ("20060102T150405Z" format), target, secret key, and canonical
// request. Sign takes the dateStamp ("20060102") from the first 8
// characters of timestamp; DeriveSigningKey and StringToSign take it as a
// separate argument, so callers that sign many requests in the same day can
// derive the key once.
func Sign(timestamp string, target Target, secretAccessKey string, canonicalRequest string) string {
	dateStamp := timestamp
	if len(dateStamp) >= 8 {
		dateStamp = dateStamp[:8]
	}
	signingKey := DeriveSigningKey(secretAccessKey, dateStamp, target)
	sts := StringToSign(timestamp, dateStamp, target, canonicalRequest)
	sig := hmacSha256(signingKey, []byte(sts))
	return hex.EncodeToString(sig)
}

// AuthorizationHeader assembles the "Authorization" header value for a
// signed request, per the SigV4 spec's standard header format.
func AuthorizationHeader(accessKeyID, dateStamp string, target Target, signedHeaders, signature string) string {
	return fmt.Sprintf(
		"AWS4-HMAC-SHA256 Credential=%s/%s/%s/%s/aws4_request, SignedHeaders=%s, Signature=%s",
		accessKeyID, dateStamp, target.Region, target.Service, signedHeaders, signature,
	)
}

// EscapeQueryValue is exposed for callers building Query maps from
// already-decoded values that might contain reserved characters; it uses
// Go's url.QueryEscape as a convenience front-end to CanonicalQuery's own
// encoding, which remains the canonical SigV4-compliant one.
func EscapeQueryValue(v string) string {
	return url.QueryEscape(v)
}
