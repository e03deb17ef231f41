package services

import (
	"dashdrop/internal/driver-service/core/ports/driven"
	"dashdrop/internal/mylogger"
)

type Service struct {
	DriverService       *DriverService
	VerificationService *VerificationService
}

func New(repositories driven.IDriverRepository, files driven.IFileStore, log mylogger.Logger) *Service {
	return &Service{
		DriverService:       NewDriverService(repositories, log),
		VerificationService: NewVerificationService(repositories, files, log),
	}
}
