package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	plain := New(KindValidation, "bad input")
	if got := plain.Error(); got != "bad input" {
		t.Errorf("Error() = %q, want %q", got, "bad input")
	}

	wrapped := Wrap(stderrors.New("socket closed"), KindExternal, "fetch failed")
	if got := wrapped.Error(); got != "fetch failed: socket closed" {
		t.Errorf("Error() = %q, want cause appended", got)
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if Wrap(nil, KindExternal, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, KindExternal, "ignored %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	wrapped := Wrap(cause, KindInternal, "outer")

	if !stderrors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := Newf(KindRateLimited, "limit hit after %d calls", 60)

	if !stderrors.Is(err, New(KindRateLimited, "")) {
		t.Error("errors.Is should match same-kind sentinel")
	}
	if stderrors.Is(err, New(KindValidation, "")) {
		t.Error("errors.Is should not match a different kind")
	}
}

func TestKindHelpers(t *testing.T) {
	err := New(KindLLMResponse, "no json").WithRaw("garbled output")

	if GetKind(err) != KindLLMResponse {
		t.Errorf("GetKind() = %v, want KindLLMResponse", GetKind(err))
	}
	if !IsKind(err, KindLLMResponse) {
		t.Error("IsKind() should match")
	}
	if GetRaw(err) != "garbled output" {
		t.Errorf("GetRaw() = %q", GetRaw(err))
	}

	foreign := stderrors.New("plain")
	if GetKind(foreign) != KindInternal {
		t.Error("foreign errors default to KindInternal")
	}
	if GetRaw(foreign) != "" {
		t.Error("foreign errors carry no raw payload")
	}
}

func TestDetailedString(t *testing.T) {
	err := Wrap(stderrors.New("boom"), KindExternal, "fetch failed").WithRaw("raw body")
	got := err.DetailedString()

	for _, want := range []string{"[EXTERNAL]", "fetch failed", "Caused by: boom", "raw body"} {
		if !strings.Contains(got, want) {
			t.Errorf("DetailedString() missing %q in:\n%s", want, got)
		}
	}
}
