package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/ruralhealth/internal/config"
	"github.com/terraincognita07/ruralhealth/internal/db"
	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/services"
)

func seedSQLiteUser(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		StorageDriver: config.DriverSQLite,
		DBPath:        filepath.Join(t.TempDir(), "reset.db"),
	}
	store, err := db.Open(db.Options{Driver: cfg.StorageDriver, Path: cfg.DBPath})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	_, err = services.NewAuthService(store.Users).Register(context.Background(), models.UserCreate{
		Username:    "alice",
		Email:       "a@x.com",
		Password:    "p",
		FirstName:   "A",
		LastName:    "B",
		Gender:      "F",
		DateOfBirth: "2000-01-01",
	})
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	return cfg
}

func loginAgainst(t *testing.T, cfg *config.Config, username string, password string) error {
	t.Helper()

	store, err := db.Open(db.Options{Driver: cfg.StorageDriver, Path: cfg.DBPath})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()

	_, err = services.NewAuthService(store.Users).Login(context.Background(), username, password)
	return err
}

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()

	original := readPassword
	t.Cleanup(func() { readPassword = original })

	readPassword = func(*os.File) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func TestResetPasswordPrintsTemporaryPassword(t *testing.T) {
	cfg := seedSQLiteUser(t)

	var stdout bytes.Buffer
	err := RunResetPasswordCommand(context.Background(), cfg, ResetPasswordOptions{Username: "alice", Stdout: &stdout})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}

	var temporary string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if value, found := strings.CutPrefix(line, "Temporary password: "); found {
			temporary = value
		}
	}
	if len(temporary) != temporaryPasswordLength {
		t.Fatalf("expected a %d character temporary password in %q", temporaryPasswordLength, stdout.String())
	}

	if err := loginAgainst(t, cfg, "alice", "p"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
	if err := loginAgainst(t, cfg, "alice", temporary); err != nil {
		t.Fatalf("expected temporary password to work, got %v", err)
	}
}

func TestResetPasswordWithPromptedPassword(t *testing.T) {
	cfg := seedSQLiteUser(t)
	stubPasswords(t, "clinic2024", "clinic2024")

	var stdout bytes.Buffer
	err := RunResetPasswordCommand(context.Background(), cfg, ResetPasswordOptions{Username: "alice", Prompt: true, Stdout: &stdout})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if strings.Contains(stdout.String(), "Temporary password") {
		t.Fatalf("expected no temporary password for prompted reset, got %q", stdout.String())
	}
	if err := loginAgainst(t, cfg, "alice", "clinic2024"); err != nil {
		t.Fatalf("expected prompted password to work, got %v", err)
	}
}

func TestResetPasswordPromptRejections(t *testing.T) {
	cfg := seedSQLiteUser(t)

	stubPasswords(t, "short1")
	err := RunResetPasswordCommand(context.Background(), cfg, ResetPasswordOptions{Username: "alice", Prompt: true, Stdout: &bytes.Buffer{}})
	if !errors.Is(err, services.ErrWeakPassword) {
		t.Fatalf("expected weak password error, got %v", err)
	}

	stubPasswords(t, "clinic2024", "clinic2025")
	err = RunResetPasswordCommand(context.Background(), cfg, ResetPasswordOptions{Username: "alice", Prompt: true, Stdout: &bytes.Buffer{}})
	if !errors.Is(err, errPasswordMismatch) {
		t.Fatalf("expected mismatch error, got %v", err)
	}

	if err := loginAgainst(t, cfg, "alice", "p"); err != nil {
		t.Fatalf("expected original password to survive rejected resets, got %v", err)
	}
}

func TestResetPasswordValidatesInput(t *testing.T) {
	cfg := seedSQLiteUser(t)

	if err := RunResetPasswordCommand(context.Background(), cfg, ResetPasswordOptions{Username: "  ", Stdout: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for empty username")
	}

	err := RunResetPasswordCommand(context.Background(), cfg, ResetPasswordOptions{Username: "ghost", Stdout: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}

	memoryCfg := &config.Config{StorageDriver: config.DriverMemory}
	if err := RunResetPasswordCommand(context.Background(), memoryCfg, ResetPasswordOptions{Username: "alice", Stdout: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected memory driver to be refused")
	}
}
