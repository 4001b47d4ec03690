// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ReturnsUsableLogger(t *testing.T) {
	log := NewLogger("test-role")
	require.NotNil(t, log)

	// must not panic
	log.Debug().Msg("debug message")
	log.Info().Str("key", "value").Msg("info message")
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)

	assert.NotPanics(t, func() {
		log.Error().Msg("should go nowhere")
	})
}

func TestGetChildLogger_Independent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}

func TestFromContext_NoAttachedLogger(t *testing.T) {
	log := FromContext(context.Background())

	// zerolog falls back to its global logger, never nil
	require.NotNil(t, log)
}

func TestFromContext_RoundTrip(t *testing.T) {
	base := Nop()
	ctx := base.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)
	assert.NotPanics(t, func() { got.Info().Msg("ok") })
}
