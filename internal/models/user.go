package models

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"firstName" gorm:"not null"`
	LastName     string    `json:"lastName" gorm:"not null"`
	Gender       string    `json:"gender" gorm:"not null"`
	DateOfBirth  string    `json:"dateOfBirth" gorm:"not null"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null"`
}

// UserProfile is the client-facing view of a User. It never carries
// credentials.
type UserProfile struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Gender      string    `json:"gender"`
	DateOfBirth string    `json:"dateOfBirth"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserCreate struct {
	Username    string `json:"username" form:"username" validate:"required,max=80"`
	Email       string `json:"email" form:"email" validate:"required,email,max=120"`
	Password    string `json:"password" form:"password" validate:"required,max=72"`
	FirstName   string `json:"firstName" form:"firstName" validate:"required,max=50"`
	LastName    string `json:"lastName" form:"lastName" validate:"required,max=50"`
	Gender      string `json:"gender" form:"gender" validate:"required,max=20"`
	DateOfBirth string `json:"dateOfBirth" form:"dateOfBirth" validate:"required,max=10"`
}

type Credentials struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserPatch holds the fields an update may touch; nil fields are left alone.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	Gender       *string
	DateOfBirth  *string
}

func (user *User) RecordID() uint {
	return user.ID
}

func (user *User) AssignID(id uint) {
	user.ID = id
}

func (user *User) StampCreated(at time.Time) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = at
	}
}

func (user User) Profile() UserProfile {
	return UserProfile{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Gender:      user.Gender,
		DateOfBirth: user.DateOfBirth,
		IsAdmin:     user.IsAdmin,
		CreatedAt:   user.CreatedAt,
	}
}

func (patch UserPatch) Apply(user *User) {
	assignString(&user.Username, patch.Username)
	assignString(&user.Email, patch.Email)
	assignString(&user.PasswordHash, patch.PasswordHash)
	assignString(&user.FirstName, patch.FirstName)
	assignString(&user.LastName, patch.LastName)
	assignString(&user.Gender, patch.Gender)
	assignString(&user.DateOfBirth, patch.DateOfBirth)
}

func assignString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}
