// Package http implements the HTTP transport layer of the sync backend.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"github.com/fitkeeper/go-fit-keeper/internal/config"
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
