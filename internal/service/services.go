package service

import (
	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/events"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/models"
)

type Services struct {
	AuthService      AuthService
	ProfileService   ProfileService
	ListService      ListService
	EntryService     EntryService
	MigrationService MigrationService
	SharingService   SharingService
	FileService      FileService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, publisher events.Publisher, cfg config.StructuredConfig, build models.AppInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	fileService := NewFileService(storages.ObjectStore, logger)
	migrationService := NewMigrationService(storages.MigrationJobRepository, storages.EntryRepository, publisher, cfg.Workers, logger)
	listService := NewListValidationService().Wrap(
		NewListService(storages.ListRepository, migrationService, fileService, publisher, logger),
	)

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, storages.ProfileRepository, cfg.App, logger),
		ProfileService:   NewProfileService(storages.ProfileRepository, fileService, publisher, logger),
		ListService:      listService,
		EntryService:     NewEntryService(storages.EntryRepository, storages.ListRepository, publisher, logger),
		MigrationService: migrationService,
		SharingService:   NewSharingService(storages, publisher, logger),
		FileService:      fileService,
		AppInfoService:   appInfoService,
	}, nil
}
