package store

// errors.go classifies failures from the document store into the kinds the
// rest of the application acts on:
//
//   - Unavailable: the store could not be reached at all. On sign-in the
//     user retries; on a protected operation the session is forced out.
//   - Unauthorized: the store refused the credentials.
//   - NotFound: the referenced document does not exist (delete of a missing
//     id, or an identity with no record).
//   - Internal: the store accepted the connection but rejected the
//     operation, or anything else unexpected.
//
// Driver errors are matched case-insensitively against known patterns.
// The first matching pattern wins, so more specific patterns come first.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind is the coarse failure category of a store operation.
type Kind int

const (
	KindInternal Kind = iota
	KindUnavailable
	KindUnauthorized
	KindNotFound
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error wraps a store failure with its classified kind and the operation
// that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNoIdentity is returned when an operation runs without a signed-in
// identity to authenticate as.
var ErrNoIdentity = errors.New("no signed-in identity")

// ErrNotFound is returned when a delete matched no document.
var ErrNotFound = errors.New("document not found")

// authPatterns match credential rejections surfaced by the driver.
var authPatterns = []string{
	"authentication failed",
	"auth error",
	"not authorized",
	"unauthorized",
	"sasl conversation",
}

// unavailablePatterns match connectivity failures surfaced by the driver.
var unavailablePatterns = []string{
	"server selection error",
	"server selection timeout",
	"no reachable servers",
	"connection refused",
	"connection reset",
	"context deadline exceeded",
	"i/o timeout",
	"no such host",
}

// Classify wraps err in an *Error with the kind derived from the
// underlying failure. A nil err returns nil.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	kind := KindInternal
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		kind = KindNotFound
	case errors.Is(err, ErrNoIdentity):
		kind = KindUnauthorized
	case matchesAny(err, authPatterns):
		kind = KindUnauthorized
	case errors.Is(err, context.DeadlineExceeded), matchesAny(err, unavailablePatterns):
		kind = KindUnavailable
	}

	return &Error{Kind: kind, Op: op, Err: err}
}

// matchesAny reports whether the error text contains any of the patterns,
// case-insensitively.
func matchesAny(err error, patterns []string) bool {
	msg := strings.ToLower(err.Error())
	for _, p := range patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// KindOf extracts the classified kind from err, or KindInternal when err
// was never classified.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
