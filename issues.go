package smithy

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// IssuePolicy controls what happens when a class-3 (deferred, non-fatal)
// issue is raised against an IssuesBag: Abort turns every raised issue back
// into an immediate error, Collect defers it for later aggregation.
type IssuePolicy int

const (
	IssuePolicyCollect IssuePolicy = iota
	IssuePolicyAbort
)

// Issue is one deferred problem found while building a model: a shape id it
// is attributed to (if any) and a message. Model loading keeps going after
// an Issue is raised; only the final aggregated error, if any, stops the
// pipeline.
type Issue struct {
	ShapeId ShapeId
	HasId   bool
	Message string
}

func (i Issue) Error() string {
	if i.HasId {
		return fmt.Sprintf("%s: %s", i.ShapeId, i.Message)
	}
	return i.Message
}

// IssuesBag accumulates Issues raised across a model build, safe for
// concurrent use by the pipeline package's fork-joined emitters. It
// aggregates via hashicorp/go-multierror rather than hand-rolling an
// error-list type.
type IssuesBag struct {
	mu     sync.Mutex
	policy IssuePolicy
	errs   *multierror.Error
}

func NewIssuesBag(policy IssuePolicy) *IssuesBag {
	return &IssuesBag{policy: policy}
}

// Raise records an issue. Under IssuePolicyAbort it returns the issue
// immediately as an error so the caller can unwind; under
// IssuePolicyCollect it always returns nil and the issue surfaces later via
// Err.
func (b *IssuesBag) Raise(id ShapeId, hasId bool, format string, args ...interface{}) error {
	issue := Issue{ShapeId: id, HasId: hasId, Message: fmt.Sprintf(format, args...)}
	b.mu.Lock()
	b.errs = multierror.Append(b.errs, issue)
	b.mu.Unlock()
	if b.policy == IssuePolicyAbort {
		return issue
	}
	return nil
}

// RaiseGlobal records an issue with no associated shape.
func (b *IssuesBag) RaiseGlobal(format string, args ...interface{}) error {
	return b.Raise(0, false, format, args...)
}

// Policy reports the IssuePolicy this bag was constructed with.
func (b *IssuesBag) Policy() IssuePolicy {
	return b.policy
}

func (b *IssuesBag) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errs == nil || len(b.errs.Errors) == 0
}

func (b *IssuesBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.errs == nil {
		return 0
	}
	return len(b.errs.Errors)
}

// Err returns the aggregated multierror, or nil if no issues were raised.
func (b *IssuesBag) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.errs == nil || len(b.errs.Errors) == 0 {
		return nil
	}
	return b.errs.ErrorOrNil()
}
