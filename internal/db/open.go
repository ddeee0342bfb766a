package db

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/storage"
	"github.com/terraincognita07/ruralhealth/internal/storage/memory"
	"gorm.io/gorm"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver      string
	Path        string
	DatabaseURL string
	Logger      *logrus.Logger
}

// Open returns the store selected by options.Driver. The memory driver needs
// no other option.
func Open(options Options) (*storage.Store, error) {
	switch strings.ToLower(strings.TrimSpace(options.Driver)) {
	case "", DriverMemory:
		return memory.NewStore(), nil
	case DriverSQLite:
		database, err := OpenSQLite(options.Path, options.Logger)
		if err != nil {
			return nil, err
		}
		return NewStore(database), nil
	case DriverPostgres:
		database, err := OpenPostgres(options.DatabaseURL, options.Logger)
		if err != nil {
			return nil, err
		}
		return NewStore(database), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", options.Driver)
	}
}

// NewStore wraps an already migrated database. Closing the store closes the
// underlying connection pool.
func NewStore(database *gorm.DB) *storage.Store {
	return storage.NewStore(
		NewUserTable(database),
		NewOwnedTable[models.Appointment, *models.Appointment](database),
		NewOwnedTable[models.Symptom, *models.Symptom](database),
		NewTable[models.Contact, *models.Contact](database),
		func() error {
			sqlDB, err := database.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	)
}
