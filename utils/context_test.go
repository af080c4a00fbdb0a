package utils

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errStorage = errors.New("failed to store file")

func TestIsContextCanceled(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"direct context.Canceled", context.Canceled, true},
		{"wrapped context.Canceled", fmt.Errorf("wrapped: %w", context.Canceled), true},
		{"sentinel joined with cause", fmt.Errorf("%w: %w", errStorage, context.Canceled), true},
		{"string contains context canceled", errors.New("Put \"http://dav/photos/x\": context canceled"), true},
		{"other error", errors.New("some other error"), false},
		{"deadline exceeded", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsContextCanceled(tt.err))
		})
	}
}

func TestIsClientDisconnect(t *testing.T) {
	assert.True(t, IsClientDisconnect(context.Canceled))
	assert.True(t, IsClientDisconnect(fmt.Errorf("write: %w", syscall.EPIPE)))
	assert.True(t, IsClientDisconnect(fmt.Errorf("write: %w", syscall.ECONNRESET)))
	assert.False(t, IsClientDisconnect(errors.New("other error")))
}
