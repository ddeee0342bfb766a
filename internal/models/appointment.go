package models

import "time"

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

type Appointment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Date      string    `json:"date" gorm:"not null"`
	Time      string    `json:"time" gorm:"not null"`
	Provider  string    `json:"provider" gorm:"not null"`
	Type      string    `json:"type" gorm:"not null"`
	Reason    string    `json:"reason" gorm:"not null"`
	Status    string    `json:"status" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

type AppointmentCreate struct {
	UserID   uint   `json:"userId" form:"userId" validate:"required"`
	Date     string `json:"date" form:"date" validate:"required,max=32"`
	Time     string `json:"time" form:"time" validate:"required,max=32"`
	Provider string `json:"provider" form:"provider" validate:"required,max=120"`
	Type     string `json:"type" form:"type" validate:"required,max=60"`
	Reason   string `json:"reason" form:"reason" validate:"required,max=500"`
}

type AppointmentPatch struct {
	Date     *string
	Time     *string
	Provider *string
	Type     *string
	Reason   *string
	Status   *string
}

func NewAppointment(input AppointmentCreate) Appointment {
	return Appointment{
		UserID:   input.UserID,
		Date:     input.Date,
		Time:     input.Time,
		Provider: input.Provider,
		Type:     input.Type,
		Reason:   input.Reason,
		Status:   AppointmentStatusScheduled,
	}
}

func (appointment *Appointment) RecordID() uint {
	return appointment.ID
}

func (appointment *Appointment) AssignID(id uint) {
	appointment.ID = id
}

func (appointment *Appointment) StampCreated(at time.Time) {
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = at
	}
}

func (appointment Appointment) OwnerID() uint {
	return appointment.UserID
}

func (patch AppointmentPatch) Apply(appointment *Appointment) {
	assignString(&appointment.Date, patch.Date)
	assignString(&appointment.Time, patch.Time)
	assignString(&appointment.Provider, patch.Provider)
	assignString(&appointment.Type, patch.Type)
	assignString(&appointment.Reason, patch.Reason)
	assignString(&appointment.Status, patch.Status)
}
