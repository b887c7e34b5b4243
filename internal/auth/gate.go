// Package auth implements the four character password that guards the
// stored data.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/Veraticus/payday/internal/service"
	"github.com/Veraticus/payday/internal/storage"
)

// PasswordLength is the exact number of characters a password must have.
const PasswordLength = 4

// Gate errors.
var (
	ErrPasswordLength    = fmt.Errorf("password must be exactly %d characters", PasswordLength)
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrNoPassword        = errors.New("no password set")
	ErrPasswordExists    = errors.New("password already set")
)

// User-facing messages emitted by the gate.
const (
	MsgPasswordSet     = "Password set successfully"
	MsgPasswordChanged = "Password changed successfully"
	MsgWelcomeBack     = "Welcome back"
)

// Gate checks and stores the application password.
type Gate struct {
	store    service.KeyValueStore
	notifier service.Notifier
	logger   *slog.Logger
}

// NewGate creates a gate over store. notifier may be nil.
func NewGate(store service.KeyValueStore, notifier service.Notifier, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{store: store, notifier: notifier, logger: logger}
}

// IsSet reports whether a password has been stored.
func (g *Gate) IsSet(ctx context.Context) (bool, error) {
	_, found, err := g.stored(ctx)
	return found, err
}

// Unlock checks entered against the stored password. On first use, when no
// password exists, entered becomes the password.
func (g *Gate) Unlock(ctx context.Context, entered string) error {
	if err := validate(entered); err != nil {
		return err
	}

	stored, found, err := g.stored(ctx)
	if err != nil {
		return err
	}

	if !found {
		if err := g.save(ctx, entered); err != nil {
			return err
		}
		g.logger.Info("Password created")
		g.notify(service.LevelSuccess, MsgPasswordSet)
		return nil
	}

	if !matches(stored, entered) {
		g.logger.Debug("Rejected password")
		g.notify(service.LevelError, ErrIncorrectPassword.Error())
		return ErrIncorrectPassword
	}

	g.notify(service.LevelSuccess, MsgWelcomeBack)
	return nil
}

// SetPassword stores a new password when none exists yet.
func (g *Gate) SetPassword(ctx context.Context, password string) error {
	if err := validate(password); err != nil {
		return err
	}
	found, err := g.IsSet(ctx)
	if err != nil {
		return err
	}
	if found {
		return ErrPasswordExists
	}
	if err := g.save(ctx, password); err != nil {
		return err
	}
	g.notify(service.LevelSuccess, MsgPasswordSet)
	return nil
}

// ChangePassword replaces the stored password after verifying current.
func (g *Gate) ChangePassword(ctx context.Context, current, next string) error {
	stored, found, err := g.stored(ctx)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoPassword
	}
	if !matches(stored, current) {
		g.notify(service.LevelError, ErrIncorrectPassword.Error())
		return ErrIncorrectPassword
	}
	if err := validate(next); err != nil {
		return err
	}

	if err := g.save(ctx, next); err != nil {
		return err
	}
	g.logger.Info("Password changed")
	g.notify(service.LevelSuccess, MsgPasswordChanged)
	return nil
}

func (g *Gate) stored(ctx context.Context) (string, bool, error) {
	var password string
	found, err := storage.LoadJSON(ctx, g.store, storage.KeyAppPassword, &password)
	if err != nil {
		return "", false, fmt.Errorf("failed to load password: %w", err)
	}
	return password, found && password != "", nil
}

func (g *Gate) save(ctx context.Context, password string) error {
	if err := storage.SaveJSON(ctx, g.store, storage.KeyAppPassword, password); err != nil {
		return fmt.Errorf("failed to save password: %w", err)
	}
	return nil
}

func (g *Gate) notify(level service.Level, message string) {
	if g.notifier != nil {
		g.notifier.Notify(level, message)
	}
}

func validate(password string) error {
	if utf8.RuneCountInString(password) != PasswordLength {
		return ErrPasswordLength
	}
	return nil
}

func matches(stored, entered string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(entered)) == 1
}
