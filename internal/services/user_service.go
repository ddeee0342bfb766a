package services

import (
	"context"
	"fmt"

	"github.com/terraincognita07/ruralhealth/internal/models"
)

type UserRepository interface {
	Get(ctx context.Context, id uint) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func (service *UserService) List(ctx context.Context) ([]models.User, error) {
	return service.users.List(ctx)
}

func (service *UserService) Get(ctx context.Context, userID uint) (models.User, error) {
	return service.users.Get(ctx, userID)
}

// Delete removes the user row only. Appointments and symptoms that reference
// the user stay in place. With protectAdmins set, admin accounts are refused.
func (service *UserService) Delete(ctx context.Context, userID uint, protectAdmins bool) error {
	if protectAdmins {
		user, err := service.users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if user.IsAdmin {
			return ErrAdminDeleteDenied
		}
	}

	deleted, err := service.users.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
