package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/storage"
	"gorm.io/gorm"
)

// Table is the gorm-backed storage.Table. Ids come from the database, so
// they follow the AUTOINCREMENT/BIGSERIAL rules of the schema.
type Table[T any, P storage.Record[T]] struct {
	database *gorm.DB
	now      func() time.Time
}

func NewTable[T any, P storage.Record[T]](database *gorm.DB) *Table[T, P] {
	return &Table[T, P]{database: database, now: time.Now}
}

func (table *Table[T, P]) Create(ctx context.Context, record *T) error {
	P(record).AssignID(0)
	P(record).StampCreated(table.now().UTC())
	return translateError(table.database.WithContext(ctx).Create(record).Error)
}

func (table *Table[T, P]) Get(ctx context.Context, id uint) (T, error) {
	var row T
	if err := table.database.WithContext(ctx).First(&row, id).Error; err != nil {
		var zero T
		return zero, translateError(err)
	}
	return row, nil
}

func (table *Table[T, P]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := table.database.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (table *Table[T, P]) Update(ctx context.Context, id uint, patch func(*T)) (T, error) {
	var row T
	err := table.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		patch(&row)
		P(&row).AssignID(id)
		return tx.Save(&row).Error
	})
	if err != nil {
		var zero T
		return zero, translateError(err)
	}
	return row, nil
}

func (table *Table[T, P]) Delete(ctx context.Context, id uint) (bool, error) {
	result := table.database.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type OwnedTable[T any, P storage.OwnedRecord[T]] struct {
	*Table[T, P]
}

func NewOwnedTable[T any, P storage.OwnedRecord[T]](database *gorm.DB) *OwnedTable[T, P] {
	return &OwnedTable[T, P]{Table: NewTable[T, P](database)}
}

func (table *OwnedTable[T, P]) ListByOwner(ctx context.Context, userID uint) ([]T, error) {
	rows := make([]T, 0)
	if err := table.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type UserTable struct {
	*Table[models.User, *models.User]
}

func NewUserTable(database *gorm.DB) *UserTable {
	return &UserTable{Table: NewTable[models.User, *models.User](database)}
}

func (table *UserTable) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return table.findBy(ctx, "username = ?", username)
}

func (table *UserTable) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return table.findBy(ctx, "email = ?", email)
}

func (table *UserTable) findBy(ctx context.Context, condition string, value string) (models.User, error) {
	var user models.User
	if err := table.database.WithContext(ctx).Where(condition, value).First(&user).Error; err != nil {
		return models.User{}, translateError(err)
	}
	return user, nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return storage.ErrConflict
	default:
		return err
	}
}

// isUniqueViolation covers drivers that do not implement gorm's error
// translator.
func isUniqueViolation(err error) bool {
	message := err.Error()
	return strings.Contains(message, "UNIQUE constraint failed") ||
		strings.Contains(message, "SQLSTATE 23505")
}
