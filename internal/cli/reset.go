package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/ruralhealth/internal/config"
	"github.com/terraincognita07/ruralhealth/internal/db"
	"github.com/terraincognita07/ruralhealth/internal/security"
	"github.com/terraincognita07/ruralhealth/internal/services"
)

const temporaryPasswordLength = 12

var errPasswordMismatch = errors.New("passwords do not match")

// readPassword is swapped out in tests.
var readPassword = readPasswordNoEcho

type ResetPasswordOptions struct {
	Username string
	// Prompt asks for the new password on the terminal instead of
	// generating a temporary one.
	Prompt bool
	Stdin  *os.File
	Stdout io.Writer
	Logger *logrus.Logger
}

// RunResetPasswordCommand replaces the password of an existing account in
// the configured database. The memory driver is refused since its data dies
// with the process.
func RunResetPasswordCommand(ctx context.Context, cfg *config.Config, options ResetPasswordOptions) error {
	username := strings.TrimSpace(options.Username)
	if username == "" {
		return errors.New("username is required")
	}
	if cfg.StorageDriver == config.DriverMemory {
		return errors.New("reset-password needs STORAGE_DRIVER=sqlite or postgres")
	}

	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	password, generated, err := choosePassword(options.Prompt, options.Stdin, stdout)
	if err != nil {
		return err
	}

	store, err := db.Open(db.Options{
		Driver:      cfg.StorageDriver,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
		Logger:      options.Logger,
	})
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer store.Close()

	if _, err := services.NewAuthService(store.Users).ResetPassword(ctx, username, password); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("user %s not found", username)
		}
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintf(stdout, "Password reset for %s\n", username)
	if generated {
		fmt.Fprintf(stdout, "Temporary password: %s\n", password)
	}
	return nil
}

func choosePassword(prompt bool, stdin *os.File, stdout io.Writer) (string, bool, error) {
	if !prompt {
		password, err := security.TemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", err)
		}
		return password, true, nil
	}

	if stdin == nil {
		stdin = os.Stdin
	}

	fmt.Fprint(stdout, "New password: ")
	first, err := readPassword(stdin)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	if err := services.CheckResetPassword(string(first)); err != nil {
		return "", false, err
	}

	fmt.Fprint(stdout, "Repeat password: ")
	second, err := readPassword(stdin)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", false, errPasswordMismatch
	}
	return string(first), false, nil
}
