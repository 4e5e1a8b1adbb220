//go:build !darwin

package crypto

import (
	"errors"
	"os"
	"path/filepath"
)

// fallbackKeyring keeps the session token in a mode-0600 file under the
// config directory on platforms without a native keychain.
type fallbackKeyring struct{}

func newPlatformKeyring() Keyring {
	return &fallbackKeyring{}
}

func sessionFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "gstbill", "session")
}

// GetToken reads the session refresh token from the session file
func (k *fallbackKeyring) GetToken() (string, error) {
	data, err := os.ReadFile(sessionFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("no stored session: run 'gstbill login' first")
		}
		return "", err
	}

	token := string(data)
	if token == "" {
		return "", errors.New("session token is empty")
	}

	return token, nil
}

// SetToken writes the session refresh token to the session file
func (k *fallbackKeyring) SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	path := sessionFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(token), 0600)
}

// DeleteToken removes the session file
func (k *fallbackKeyring) DeleteToken() error {
	err := os.Remove(sessionFilePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsAvailable checks whether the session file directory is writable
func (k *fallbackKeyring) IsAvailable() bool {
	path := sessionFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false
	}
	return true
}
