package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const maxPasswordBytes = 72

type AuthUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id uint) (models.User, error)
	Update(ctx context.Context, id uint, patch func(*models.User)) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// AdminSeed describes the operator account created on first start.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

type AuthService struct {
	users AuthUserRepository
	cost  int
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// Register stores a new non-admin user. Username is checked before email so
// a payload clashing on both reports the username.
func (service *AuthService) Register(ctx context.Context, input models.UserCreate) (models.User, error) {
	if err := service.ensureAvailable(ctx, input.Username, input.Email); err != nil {
		return models.User{}, err
	}

	hash, err := service.hashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		DateOfBirth:  input.DateOfBirth,
		IsAdmin:      false,
	}
	if err := service.users.Create(ctx, &user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			if availableErr := service.ensureAvailable(ctx, input.Username, input.Email); availableErr != nil {
				return models.User{}, availableErr
			}
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *AuthService) Login(ctx context.Context, username string, password string) (models.User, error) {
	user, err := service.users.FindByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	return service.users.Get(ctx, userID)
}

// EnsureAdmin creates the operator account unless a user with the seed's
// username already exists. The returned flag reports whether a row was
// created.
func (service *AuthService) EnsureAdmin(ctx context.Context, seed AdminSeed) (models.User, bool, error) {
	username := strings.TrimSpace(seed.Username)
	if username == "" {
		return models.User{}, false, errors.New("admin username is required")
	}

	existing, err := service.users.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, false, fmt.Errorf("load admin: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(seed.Email))
	holder, err := service.users.FindByEmail(ctx, email)
	if err == nil {
		return models.User{}, false, fmt.Errorf("admin email %s is already used by %q: %w", email, holder.Username, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, false, fmt.Errorf("load admin email: %w", err)
	}

	hash, err := service.hashPassword(seed.Password)
	if err != nil {
		return models.User{}, false, err
	}

	admin := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Gender:       "Other",
		DateOfBirth:  "1990-01-01",
		IsAdmin:      true,
	}
	if err := service.users.Create(ctx, &admin); err != nil {
		return models.User{}, false, fmt.Errorf("create admin: %w", err)
	}
	return admin, true, nil
}

func (service *AuthService) ResetPassword(ctx context.Context, username string, password string) (models.User, error) {
	user, err := service.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return models.User{}, err
	}

	hash, err := service.hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return service.users.Update(ctx, user.ID, func(stored *models.User) {
		models.UserPatch{PasswordHash: &hash}.Apply(stored)
	})
}

func (service *AuthService) ensureAvailable(ctx context.Context, username string, email string) error {
	if _, err := service.users.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	if _, err := service.users.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

func (service *AuthService) hashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
