package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIs(t *testing.T) {
	notFound := NewError(http.StatusNotFound, "profile not found")

	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{name: "same sentinel", err: notFound, target: notFound, expected: true},
		{name: "rebuilt sentinel", err: NewError(http.StatusNotFound, "profile not found"), target: notFound, expected: true},
		{name: "wrapped", err: fmt.Errorf("get: %w", notFound), target: notFound, expected: true},
		{name: "other status", err: NewError(http.StatusGone, "profile not found"), target: notFound, expected: false},
		{name: "plain error", err: errors.New("profile not found"), target: notFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.expected {
				t.Errorf("errors.Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	code, ok := StatusOf(fmt.Errorf("export: %w", NewError(http.StatusServiceUnavailable, "down")))
	if !ok || code != http.StatusServiceUnavailable {
		t.Errorf("StatusOf() = %d, %v", code, ok)
	}
	if _, ok := StatusOf(errors.New("plain")); ok {
		t.Error("StatusOf() found a status on a plain error")
	}
}
