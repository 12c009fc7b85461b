package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	KeyringService = "game-portal"

	// EnvSMTPPassword takes precedence over the keyring.
	EnvSMTPPassword = "GAME_PORTAL_SMTP_PASSWORD"
)

var ErrNoPassword = errors.New("smtp password not configured")

// Secrets resolves SMTP credentials from the environment or the OS keyring.
type Secrets struct {
	service string
	getenv  func(string) string
}

func NewSecrets() *Secrets {
	return &Secrets{service: KeyringService, getenv: os.Getenv}
}

// Password returns the SMTP password stored for username.
func (s *Secrets) Password(username string) (string, error) {
	if p := s.getenv(EnvSMTPPassword); p != "" {
		return p, nil
	}
	if username == "" {
		return "", ErrNoPassword
	}

	p, err := keyring.Get(s.service, username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", username, ErrNoPassword)
		}
		return "", fmt.Errorf("keyring lookup: %w", err)
	}
	return p, nil
}

// SetPassword stores password for username in the OS keyring.
func (s *Secrets) SetPassword(username, password string) error {
	if username == "" {
		return errors.New("username must not be empty")
	}
	return keyring.Set(s.service, username, password)
}
