package provider

import (
	"context"
	"errors"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	err := error(&Error{Provider: "bedrock", Err: context.DeadlineExceeded})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped deadline error")
	}
	if err.Error() != "bedrock: context deadline exceeded" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	var pe *Error
	if !errors.As(err, &pe) || pe.Provider != "bedrock" {
		t.Fatalf("expected *Error")
	}
}
