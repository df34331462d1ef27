package listener

import (
	"io"
	"log/slog"
	"testing"
)

type countingInvalidator struct{ clears int }

func (c *countingInvalidator) Clear() { c.clears++ }

func TestHandlePayload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		payload string
	}{
		{"valid event", `{"run_id":"2b1c7c3e-8c1e-4f7a-9d55-0c7f0f3c1a10","succeeded":27}`},
		{"malformed", `not json`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &countingInvalidator{}
			handlePayload(tt.payload, inv, logger)
			if inv.clears != 1 {
				t.Errorf("clears = %d, want 1", inv.clears)
			}
		})
	}
}
