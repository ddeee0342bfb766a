package services

import (
	"context"
	"fmt"

	"github.com/terraincognita07/ruralhealth/internal/models"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type ContactService struct {
	contacts ContactRepository
}

func NewContactService(contacts ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (service *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return service.contacts.List(ctx)
}

func (service *ContactService) Create(ctx context.Context, input models.ContactCreate) (models.Contact, error) {
	contact := models.NewContact(input)
	if err := service.contacts.Create(ctx, &contact); err != nil {
		return models.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (service *ContactService) Delete(ctx context.Context, id uint) error {
	deleted, err := service.contacts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
