package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitkeeper/go-fit-keeper/internal/config"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/service"
)

func TestNewHandlers_CreatesHTTPHandler(t *testing.T) {
	cfg := &config.StructuredConfig{
		App:    config.App{TokenSignKey: "key", TokenIssuer: "issuer", TokenDuration: time.Hour},
		Server: config.Server{HTTPAddress: "localhost:8080"},
	}

	handlers, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, handlers.HTTP)
}

func TestNewHandlers_NoListenAddress(t *testing.T) {
	cfg := &config.StructuredConfig{}

	handlers, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, handlers)
}
