// Package storage defines the record tables every backend provides. The
// memory engine and the gorm-backed engine in internal/db both satisfy it.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/ruralhealth/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")
)

// Record is the pointer side of a storable entity.
type Record[T any] interface {
	*T
	RecordID() uint
	AssignID(id uint)
	StampCreated(at time.Time)
}

// OwnedRecord is a Record that belongs to a user.
type OwnedRecord[T any] interface {
	Record[T]
	OwnerID() uint
}

// Table is the uniform contract for one entity collection. Create assigns
// the next id and the creation timestamp; List returns records in insertion
// order.
type Table[T any] interface {
	Create(ctx context.Context, record *T) error
	Get(ctx context.Context, id uint) (T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// MutableTable updates a stored record in place. The patch func receives the
// current copy and must not change its id.
type MutableTable[T any] interface {
	Table[T]
	Update(ctx context.Context, id uint, patch func(*T)) (T, error)
}

type OwnedTable[T any] interface {
	MutableTable[T]
	ListByOwner(ctx context.Context, userID uint) ([]T, error)
}

type UserTable interface {
	MutableTable[models.User]
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type Store struct {
	Users        UserTable
	Appointments OwnedTable[models.Appointment]
	Symptoms     OwnedTable[models.Symptom]
	Contacts     Table[models.Contact]

	closer func() error
}

func NewStore(
	users UserTable,
	appointments OwnedTable[models.Appointment],
	symptoms OwnedTable[models.Symptom],
	contacts Table[models.Contact],
	closer func() error,
) *Store {
	return &Store{
		Users:        users,
		Appointments: appointments,
		Symptoms:     symptoms,
		Contacts:     contacts,
		closer:       closer,
	}
}

func (store *Store) Close() error {
	if store == nil || store.closer == nil {
		return nil
	}
	return store.closer()
}
