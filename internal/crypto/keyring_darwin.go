//go:build darwin

package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

type darwinKeyring struct{}

func newPlatformKeyring() Keyring {
	return &darwinKeyring{}
}

// GetToken retrieves the session refresh token from macOS Keychain
func (k *darwinKeyring) GetToken() (string, error) {
	token, err := keyring.Get(ServiceName, TokenName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("session token not found in keychain: %w", err)
		}
		return "", fmt.Errorf("failed to retrieve token from keychain: %w", err)
	}

	if token == "" {
		return "", errors.New("session token is empty")
	}

	return token, nil
}

// SetToken stores the session refresh token in macOS Keychain
func (k *darwinKeyring) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	err := keyring.Set(ServiceName, TokenName, token)
	if err != nil {
		return fmt.Errorf("failed to store token in keychain: %w", err)
	}

	return nil
}

// DeleteToken removes the session refresh token from macOS Keychain
func (k *darwinKeyring) DeleteToken() error {
	err := keyring.Delete(ServiceName, TokenName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("session token not found in keychain: %w", err)
		}
		return fmt.Errorf("failed to delete token from keychain: %w", err)
	}

	return nil
}

// IsAvailable checks if the macOS Keychain is accessible
func (k *darwinKeyring) IsAvailable() bool {
	// Test keychain availability by attempting a dummy operation
	testToken := "__gstbill_availability_test__"
	err := keyring.Set(ServiceName, testToken, "test")
	if err != nil {
		return false
	}

	_ = keyring.Delete(ServiceName, testToken)
	return true
}
