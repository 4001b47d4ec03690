package service

import (
	"github.com/fitkeeper/go-fit-keeper/internal/logger"
	"github.com/fitkeeper/go-fit-keeper/internal/store"
)

// Services groups the server-side business services.
type Services struct {
	DocumentService DocumentService
}

func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	return &Services{
		DocumentService: NewDocumentService(storages.DocumentRepository, logger),
	}
}
