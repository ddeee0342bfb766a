package services

import (
	"context"
	"fmt"

	"github.com/terraincognita07/ruralhealth/internal/models"
)

type OwnedRecordRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	Get(ctx context.Context, id uint) (T, error)
	List(ctx context.Context) ([]T, error)
	ListByOwner(ctx context.Context, userID uint) ([]T, error)
	Update(ctx context.Context, id uint, patch func(*T)) (T, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// recordService carries the list/create/delete rules shared by appointments
// and symptoms.
type recordService[T any] struct {
	records OwnedRecordRepository[T]
	label   string
}

// List returns every record, or only the records owned by *userID when it is
// set.
func (service recordService[T]) List(ctx context.Context, userID *uint) ([]T, error) {
	if userID != nil {
		return service.records.ListByOwner(ctx, *userID)
	}
	return service.records.List(ctx)
}

func (service recordService[T]) Get(ctx context.Context, id uint) (T, error) {
	return service.records.Get(ctx, id)
}

func (service recordService[T]) create(ctx context.Context, record T) (T, error) {
	if err := service.records.Create(ctx, &record); err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", service.label, err)
	}
	return record, nil
}

func (service recordService[T]) Delete(ctx context.Context, id uint) error {
	deleted, err := service.records.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", service.label, err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

type AppointmentService struct {
	recordService[models.Appointment]
}

func NewAppointmentService(appointments OwnedRecordRepository[models.Appointment]) *AppointmentService {
	return &AppointmentService{recordService[models.Appointment]{records: appointments, label: "appointment"}}
}

// Create stores a validated appointment with status "scheduled".
func (service *AppointmentService) Create(ctx context.Context, input models.AppointmentCreate) (models.Appointment, error) {
	return service.create(ctx, models.NewAppointment(input))
}

func (service *AppointmentService) Update(ctx context.Context, id uint, patch models.AppointmentPatch) (models.Appointment, error) {
	return service.records.Update(ctx, id, patch.Apply)
}

type SymptomService struct {
	recordService[models.Symptom]
}

func NewSymptomService(symptoms OwnedRecordRepository[models.Symptom]) *SymptomService {
	return &SymptomService{recordService[models.Symptom]{records: symptoms, label: "symptom"}}
}

func (service *SymptomService) Create(ctx context.Context, input models.SymptomCreate) (models.Symptom, error) {
	return service.create(ctx, models.NewSymptom(input))
}

func (service *SymptomService) Update(ctx context.Context, id uint, patch models.SymptomPatch) (models.Symptom, error) {
	return service.records.Update(ctx, id, patch.Apply)
}
