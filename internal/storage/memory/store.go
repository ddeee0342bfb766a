package memory

import (
	"context"

	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/storage"
)

type OwnedTable[T any, P storage.OwnedRecord[T]] struct {
	*Table[T, P]
}

func NewOwnedTable[T any, P storage.OwnedRecord[T]]() *OwnedTable[T, P] {
	return &OwnedTable[T, P]{Table: NewTable[T, P]()}
}

func (table *OwnedTable[T, P]) ListByOwner(ctx context.Context, userID uint) ([]T, error) {
	return table.Filter(ctx, func(row T) bool {
		return P(&row).OwnerID() == userID
	})
}

type UserTable struct {
	*Table[models.User, *models.User]
}

// NewUserTable enforces unique usernames and emails the same way the SQL
// schema does.
func NewUserTable() *UserTable {
	table := NewTable[models.User, *models.User]()
	table.conflicts = func(stored, candidate models.User) bool {
		return stored.Username == candidate.Username || stored.Email == candidate.Email
	}
	return &UserTable{Table: table}
}

func (table *UserTable) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return table.First(ctx, func(user models.User) bool {
		return user.Username == username
	})
}

func (table *UserTable) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return table.First(ctx, func(user models.User) bool {
		return user.Email == email
	})
}

// NewStore returns an empty in-memory store.
func NewStore() *storage.Store {
	return storage.NewStore(
		NewUserTable(),
		NewOwnedTable[models.Appointment, *models.Appointment](),
		NewOwnedTable[models.Symptom, *models.Symptom](),
		NewTable[models.Contact, *models.Contact](),
		nil,
	)
}
