package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil stays nil", nil, KindInternal},
		{"auth failed", errors.New("connection() error occurred during connection handshake: auth error: sasl conversation error: unable to authenticate using mechanism \"SCRAM-SHA-256\": (AuthenticationFailed) Authentication failed."), KindUnauthorized},
		{"not authorized", errors.New("(Unauthorized) not authorized on Cylinder_Inventory to execute command"), KindUnauthorized},
		{"no identity", ErrNoIdentity, KindUnauthorized},
		{"server selection", errors.New("server selection error: context deadline exceeded, current topology: { Type: Unknown }"), KindUnavailable},
		{"connection refused", errors.New("dial tcp 127.0.0.1:27017: connect: connection refused"), KindUnavailable},
		{"deadline", context.DeadlineExceeded, KindUnavailable},
		{"no documents", mongo.ErrNoDocuments, KindNotFound},
		{"not found sentinel", ErrNotFound, KindNotFound},
		{"anything else", errors.New("write exception: write errors: [document too large]"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("op", tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("Classify(nil) = %v, want nil", got)
				}
				return
			}
			if KindOf(got) != tt.want {
				t.Errorf("KindOf(Classify(%v)) = %s, want %s", tt.err, KindOf(got), tt.want)
			}
		})
	}
}

func TestClassify_AuthInsideSelectionError(t *testing.T) {
	// Bad credentials often surface wrapped in a server selection error;
	// the credential rejection must win over the connectivity match.
	err := errors.New("server selection error: auth error: sasl conversation error: unable to authenticate")
	if got := KindOf(Classify("ping", err)); got != KindUnauthorized {
		t.Errorf("KindOf = %s, want %s", got, KindUnauthorized)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := Classify("insert", fmt.Errorf("wrapping: %w", inner))
	if !errors.Is(err, inner) {
		t.Error("errors.Is failed to reach the wrapped error")
	}

	var se *Error
	if !errors.As(err, &se) {
		t.Fatal("errors.As(*Error) = false")
	}
	if se.Op != "insert" {
		t.Errorf("Op = %q, want %q", se.Op, "insert")
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain) = %s, want %s", got, KindInternal)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnavailable, "unavailable"},
		{KindUnauthorized, "unauthorized"},
		{KindNotFound, "not_found"},
		{KindInternal, "internal"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestStaticCredentials(t *testing.T) {
	if _, ok := (StaticCredentials{Username: "bmt", Password: "s3cret"}).Credentials(); !ok {
		t.Error("complete credentials reported not ok")
	}
	if _, ok := (StaticCredentials{Username: "bmt"}).Credentials(); ok {
		t.Error("missing password reported ok")
	}
	if _, ok := (StaticCredentials{}).Credentials(); ok {
		t.Error("empty credentials reported ok")
	}
}
