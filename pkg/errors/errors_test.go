package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeStorageCapacity, http.StatusInsufficientStorage},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal metadata, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := Wrap(CodeStorageCapacity, cause, "persist menu")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to satisfy errors.Is")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeStorageCapacity {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for plain error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestChain(t *testing.T) {
	inner := stdErrors.New("root")
	outer := Wrap(CodeDependency, inner, "call geocoder")
	chain := Chain(outer)
	if len(chain) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(chain), chain)
	}
	if chain[1] != "root" {
		t.Fatalf("expected root cause last, got %q", chain[1])
	}
}
