package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := map[Code]int{
		CodeValidation:        http.StatusBadRequest,
		CodeUnknownProduct:    http.StatusBadRequest,
		CodeInsufficientStock: http.StatusBadRequest,
		CodeEmptyOrder:        http.StatusBadRequest,
		CodeNotFound:          http.StatusNotFound,
		CodeConflict:          http.StatusConflict,
		CodeStateConflict:     http.StatusUnprocessableEntity,
		CodeRateLimit:         http.StatusTooManyRequests,
		CodeInternal:          http.StatusInternalServerError,
		CodeDependency:        http.StatusServiceUnavailable,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("%s: expected status %d, got %d", code, status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("NO_SUCH_CODE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("disk full")
	err := Wrap(CodeInternal, cause, "saving order")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeInternal {
		t.Fatalf("expected internal code, got %s", err.Code())
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	t.Parallel()

	inner := New(CodeInsufficientStock, "insufficient stock for Gaming Rig Titan").
		WithDetails(map[string]any{"product_id": int64(5)})
	wrapped := fmt.Errorf("committing order: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error through the chain")
	}
	if typed.Code() != CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %s", typed.Code())
	}
	if typed.Details() == nil {
		t.Fatal("expected details to survive wrapping")
	}

	if As(fmt.Errorf("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestDumpFlattensChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, fmt.Errorf("root cause"), "outer")
	dump := Dump(err)

	if dump.Code != CodeInternal {
		t.Fatalf("expected code in dump, got %q", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
}
