package natsutil

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func TestIsConnectivityError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no responders", nats.ErrNoResponders, true},
		{"wrapped no servers", fmt.Errorf("request: %w", nats.ErrNoServers), true},
		{"closed", nats.ErrConnectionClosed, true},
		{"no stream response", jetstream.ErrNoStreamResponse, true},
		{"dial refused", errors.New("dial tcp 127.0.0.1:4222: connect: connection refused"), true},
		{"timeout", nats.ErrTimeout, false},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsConnectivityError(tt.err))
		})
	}
}

func TestIsTimeout(t *testing.T) {
	require.False(t, IsTimeout(nil))
	require.True(t, IsTimeout(context.DeadlineExceeded))
	require.True(t, IsTimeout(fmt.Errorf("solve: %w", nats.ErrTimeout)))
	require.True(t, IsTimeout(errors.New("read tcp: i/o timeout")))
	require.False(t, IsTimeout(context.Canceled))
	require.False(t, IsTimeout(nats.ErrNoResponders))
}
