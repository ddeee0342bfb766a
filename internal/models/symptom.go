package models

import "time"

type Severity int

const (
	SeverityMild     Severity = 1
	SeverityModerate Severity = 2
	SeveritySevere   Severity = 3
)

func (severity Severity) Valid() bool {
	return severity >= SeverityMild && severity <= SeveritySevere
}

func (severity Severity) String() string {
	switch severity {
	case SeverityMild:
		return "Mild"
	case SeverityModerate:
		return "Moderate"
	case SeveritySevere:
		return "Severe"
	default:
		return "Unknown"
	}
}

type Symptom struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	DateTime    string    `json:"dateTime" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Severity    Severity  `json:"severity" gorm:"not null"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
}

type SymptomCreate struct {
	UserID      uint     `json:"userId" form:"userId" validate:"required"`
	DateTime    string   `json:"dateTime" form:"dateTime" validate:"required,max=40"`
	Category    string   `json:"category" form:"category" validate:"required,max=60"`
	Description string   `json:"description" form:"description" validate:"required,max=1000"`
	Severity    Severity `json:"severity" form:"severity" validate:"severity"`
	Notes       *string  `json:"notes" form:"notes" validate:"omitempty,max=2000"`
}

type SymptomPatch struct {
	DateTime    *string
	Category    *string
	Description *string
	Severity    *Severity
	Notes       *string
}

func NewSymptom(input SymptomCreate) Symptom {
	return Symptom{
		UserID:      input.UserID,
		DateTime:    input.DateTime,
		Category:    input.Category,
		Description: input.Description,
		Severity:    input.Severity,
		Notes:       input.Notes,
	}
}

func (symptom *Symptom) RecordID() uint {
	return symptom.ID
}

func (symptom *Symptom) AssignID(id uint) {
	symptom.ID = id
}

func (symptom *Symptom) StampCreated(at time.Time) {
	if symptom.CreatedAt.IsZero() {
		symptom.CreatedAt = at
	}
}

func (symptom Symptom) OwnerID() uint {
	return symptom.UserID
}

func (patch SymptomPatch) Apply(symptom *Symptom) {
	assignString(&symptom.DateTime, patch.DateTime)
	assignString(&symptom.Category, patch.Category)
	assignString(&symptom.Description, patch.Description)
	if patch.Severity != nil {
		symptom.Severity = *patch.Severity
	}
	if patch.Notes != nil {
		notes := *patch.Notes
		symptom.Notes = &notes
	}
}
