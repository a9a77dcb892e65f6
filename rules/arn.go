// Package rules implements the endpoint-rules intermediate representation:
// a small tree-shaped expression language parsed out of a service's
// smithy.rules#endpointRuleSet trait, plus both an interpreter that
// evaluates a RuleSet directly (nothing in this package runs the cases of a
// service's endpointTests trait) and a lowerer that the code emitter drives to
// produce a target-language resolve(config) function. Interpreter and
// lowerer share the same AST so the two paths can never silently diverge.
package rules

import (
	"fmt"
	"strings"
)

// Arn is the decoded form of an AWS ARN: "arn:partition:service:region:accountId:resourceId".
// ResourceId is split on every '/' or ':' into its path segments, since
// aws.parseArn's consumers (the rules evaluator, S3's bucket-ARN handling)
// always want the resource type and its components separately.
type Arn struct {
	Partition  string
	Service    string
	Region     string
	AccountId  string
	ResourceId []string
}

// ErrInvalidArn is returned by ParseArn for any string that isn't a
// well-formed ARN, matching the rules engine's aws.parseArn builtin, which
// returns an optional/null result rather than propagating a typed error
// into emitted code.
type ErrInvalidArn struct {
	Input string
}

func (e *ErrInvalidArn) Error() string {
	return fmt.Sprintf("invalid arn: %q", e.Input)
}

// ParseArn implements the aws.parseArn rules-engine builtin. An ARN has
// the form "arn:partition:service:region:account-id:resource-id",
// where resource-id may itself contain ':' or '/' separators that are kept
// as ResourceId path segments.
func ParseArn(s string) (*Arn, error) {
	const prefix = "arn:"
	if !strings.HasPrefix(s, prefix) {
		return nil, &ErrInvalidArn{Input: s}
	}
	rest := s[len(prefix):]
	parts := strings.SplitN(rest, ":", 5)
	if len(parts) != 5 {
		return nil, &ErrInvalidArn{Input: s}
	}
	partition, service, region, accountId, resource := parts[0], parts[1], parts[2], parts[3], parts[4]
	if partition == "" || service == "" || resource == "" {
		return nil, &ErrInvalidArn{Input: s}
	}
	resourceId := splitResourceId(resource)
	return &Arn{
		Partition:  partition,
		Service:    service,
		Region:     region,
		AccountId:  accountId,
		ResourceId: resourceId,
	}, nil
}

func splitResourceId(resource string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(resource); i++ {
		if resource[i] == '/' || resource[i] == ':' {
			segs = append(segs, resource[start:i])
			start = i + 1
		}
	}
	segs = append(segs, resource[start:])
	return segs
}

func (a *Arn) String() string {
	return fmt.Sprintf("arn:%s:%s:%s:%s:%s", a.Partition, a.Service, a.Region, a.AccountId, strings.Join(a.ResourceId, "/"))
}
