package models

import "time"

type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Subject   string    `json:"subject" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

type ContactCreate struct {
	Name    string `json:"name" form:"name" validate:"required,max=120"`
	Email   string `json:"email" form:"email" validate:"required,email,max=120"`
	Subject string `json:"subject" form:"subject" validate:"required,max=200"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

func NewContact(input ContactCreate) Contact {
	return Contact{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
}

func (contact *Contact) RecordID() uint {
	return contact.ID
}

func (contact *Contact) AssignID(id uint) {
	contact.ID = id
}

func (contact *Contact) StampCreated(at time.Time) {
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = at
	}
}
