package api

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/ruralhealth/internal/services"
	"github.com/terraincognita07/ruralhealth/internal/storage"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour

	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

type Options struct {
	SecretKey   string
	TokenTTL    time.Duration
	EnforceAuth bool
	Logger      *logrus.Logger
}

type Handler struct {
	auth         *services.AuthService
	users        *services.UserService
	appointments *services.AppointmentService
	symptoms     *services.SymptomService
	contacts     *services.ContactService

	secretKey    []byte
	tokenTTL     time.Duration
	enforceAuth  bool
	loginLimiter *attemptLimiter
	logger       *logrus.Logger
	now          func() time.Time
}

// NewHandler wires the services over store. The store is owned by the
// caller and must outlive the handler.
func NewHandler(store *storage.Store, options Options) (*Handler, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}

	tokenTTL := options.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultAuthTokenTTL
	}
	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Handler{
		auth:         services.NewAuthService(store.Users),
		users:        services.NewUserService(store.Users),
		appointments: services.NewAppointmentService(store.Appointments),
		symptoms:     services.NewSymptomService(store.Symptoms),
		contacts:     services.NewContactService(store.Contacts),
		secretKey:    []byte(options.SecretKey),
		tokenTTL:     tokenTTL,
		enforceAuth:  options.EnforceAuth,
		loginLimiter: newAttemptLimiter(),
		logger:       logger,
		now:          time.Now,
	}, nil
}

// Auth exposes the account service so the process can seed the operator
// account before serving.
func (handler *Handler) Auth() *services.AuthService {
	return handler.auth
}
